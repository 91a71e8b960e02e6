package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"farmer-registry/core/clock"
	"farmer-registry/core/config"
	"farmer-registry/core/logger"
	"farmer-registry/core/metrics"
	"farmer-registry/feature/farmer/models"
	"farmer-registry/feature/farmer/validate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importActor  string
	importDryRun bool
)

// syncCmd groups offline sync operations.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Offline batch synchronisation",
}

// syncImportCmd reconciles a batch file without going through the job queue.
var syncImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Reconcile a JSON batch file into the registry",
	Long: `Reads a batch exported from a field device and reconciles it synchronously.

The file holds either {"farmers": [...]} or a bare array of records.
The per-record report is printed as JSON, in file order.

Examples:
  # Validate only, nothing is written
  sync import batch.json --dry-run

  # Import on behalf of an agent
  sync import batch.json --actor agent@example.zm`,
	Args: cobra.ExactArgs(1),
	RunE: runSyncImport,
}

func init() {
	syncImportCmd.Flags().StringVar(&importActor, "actor", "cli", "Actor recorded as creator/modifier")
	syncImportCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate records without touching the database")

	syncCmd.AddCommand(syncImportCmd)
	RootCmd.AddCommand(syncCmd)
}

// checkResult is the dry-run report entry of one record.
type checkResult struct {
	TempID *string  `json:"temp_id"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func runSyncImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	records, err := readBatchFile(args[0])
	if err != nil {
		return err
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
	logg = logger.WithJob(logg, "cli-import", importActor)

	var report any
	if importDryRun {
		v := validate.New(validate.ZambiaRules(), clock.Real{})
		results := make([]checkResult, len(records))
		for i, rec := range records {
			ok, errs := v.Validate(rec)
			if errs == nil {
				errs = []string{}
			}
			results[i] = checkResult{TempID: rec.TempID, Valid: ok, Errors: errs}
		}
		report = results
	} else {
		r, err := openRegistry(ctx, cfg, metrics.Nop(), logg)
		if err != nil {
			return err
		}

		logg.Info("Importing batch", zap.String("file", args[0]), zap.Int("records", len(records)))
		outcomes, err := r.engine.Reconcile(ctx, records, importActor)
		if err != nil {
			return fmt.Errorf("batch aborted: %w", err)
		}
		report = outcomes
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func readBatchFile(path string) ([]models.IncomingRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var records []models.IncomingRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse batch file: %w", err)
		}
		return records, nil
	}

	var body struct {
		Farmers []models.IncomingRecord `json:"farmers"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	return body.Farmers, nil
}
