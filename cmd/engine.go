package cmd

import (
	"context"
	"fmt"

	"farmer-registry/core/clock"
	"farmer-registry/core/config"
	"farmer-registry/core/database"
	"farmer-registry/core/fieldcrypt"
	"farmer-registry/core/metrics"
	"farmer-registry/feature/farmer/store"
	"farmer-registry/feature/farmer/validate"
	"farmer-registry/feature/sync/reconcile"

	"go.uber.org/zap"
)

// registry bundles the collaborators shared by the server and the CLI commands.
type registry struct {
	store  *store.GormStore
	crypt  *fieldcrypt.Encryptor
	engine *reconcile.Reconciler
}

func openRegistry(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logg *zap.Logger) (*registry, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	st := store.New(db)
	if err := st.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate farmers table: %w", err)
	}

	crypt, err := fieldcrypt.New(cfg.Crypto.Secret)
	if err != nil {
		return nil, err
	}

	clk := clock.Real{}
	v := validate.New(validate.ZambiaRules(), clk)
	engine := reconcile.New(v, crypt, st, clk, m, logg, reconcile.Options{
		RecordConcurrency: cfg.Sync.RecordConcurrency,
	})

	return &registry{store: st, crypt: crypt, engine: engine}, nil
}
