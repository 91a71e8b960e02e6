package cmd

import (
	"context"
	"fmt"

	"farmer-registry/core/config"
	"farmer-registry/core/database"
	"farmer-registry/core/logger"
	"farmer-registry/feature/farmer/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateSchema bool

// schemaCmd checks the farmers table against the model.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the farmers table schema",
	Long: `Compares the columns of the farmers table with the registry model.
With --migrate, missing columns and indexes are created.`,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().BoolVar(&migrateSchema, "migrate", false, "Create missing columns and indexes")
	RootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	st := store.New(db)

	if migrateSchema {
		if err := st.Migrate(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logg.Info("Farmers table migrated")
	}

	missing, err := st.MissingColumns()
	if err != nil {
		return fmt.Errorf("failed to inspect farmers table: %w", err)
	}
	if len(missing) > 0 {
		logg.Warn("Farmers table is missing columns", zap.Strings("missing", missing))
		return fmt.Errorf("%d columns missing, run with --migrate", len(missing))
	}

	logg.Info("Farmers table matches the model")
	return nil
}
