package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farmer-registry/core/config"
	"farmer-registry/core/jobs"
	"farmer-registry/core/loader"
	"farmer-registry/core/logger"
	"farmer-registry/core/metrics"
	"farmer-registry/core/middleware/auth"
	"farmer-registry/core/middleware/rayid"
	"farmer-registry/core/storage"
	"farmer-registry/feature/farmer"
	"farmer-registry/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "farmer-registry/docs/swagger"
)

// @title Farmer Registry API
// @version 1.0
// @description National farmer registry with offline batch synchronisation.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the farmer registry server",
	Long:  `Starts the HTTP server, the sync worker pool and all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if !cfg.Server.IsValidEnvironment() {
			logg.Warn("Unknown environment", zap.String("environment", cfg.Server.Environment))
		}

		// 3. Metrics
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := metrics.New(reg)

		// 4. Database, encryption and the reconciliation engine
		r, err := openRegistry(ctx, cfg, m, logg)
		if err != nil {
			logg.Fatal("Failed to open registry", zap.Error(err))
		}
		logg.Info("Connected to registry database", zap.String("driver", cfg.Database.Driver))

		// 5. Job store and worker pool
		var jobStore jobs.Store[sync.Outcome]
		switch cfg.Sync.JobBackend {
		case sync.BackendRedis:
			rdb, err := jobs.NewRedisClient(ctx, cfg.Redis)
			if err != nil {
				logg.Fatal("Failed to connect to redis", zap.Error(err))
			}
			defer rdb.Close()
			jobStore = jobs.NewRedisStore[sync.Outcome](rdb, "farmer-registry:sync:", cfg.Sync.JobTTL())
		default:
			jobStore = jobs.NewMemoryStore[sync.Outcome](cfg.Sync.JobTTL())
		}
		queue := jobs.NewQueue[sync.Outcome](jobStore, jobs.Options{Workers: cfg.Sync.Workers, QueueSize: cfg.Sync.QueueSize}, logg)

		// 6. Report archive (Optional)
		var archive *sync.Archive
		if cfg.Sync.ArchiveReports {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
				logg.Fatal("Failed to prepare report bucket", zap.Error(err))
			}
			archive = sync.NewArchive(client, cfg.Storage.Bucket, cfg.Sync.ReportPrefix, logg)
		}
		svc := sync.NewService(queue, r.engine, archive, m, logg)

		// 7. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// 8. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(sync.NewFeature(svc, cfg.Sync.MaxBatch))
		mgr.Register(farmer.NewFeature(r.store, r.crypt, logg))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Use(auth.New(auth.Config{
			ApiKey:    cfg.Auth.ApiKey,
			JWTSecret: cfg.Auth.JWTSecret,
			Skip:      []string{"/health", "/metrics", "/swagger"},
		}))

		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown: stop taking requests, then drain queued batches
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()

		drainCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := queue.Close(drainCtx); err != nil {
			logg.Warn("Sync jobs still running at shutdown", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
