package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"card-catalog/core/config"
	"card-catalog/core/database"
	"card-catalog/core/logger"
	"card-catalog/core/storage"
	"card-catalog/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// loadCmd runs a single catalog load and prints its metrics.
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the catalog once and report the result",
	Long: `Reads the set and card exports from storage, builds the catalog graph and
prints load metrics. Use --json to save the failure report and --persist to
write the graph to the configured database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		jsonOutput, _ := cmd.Flags().GetBool("json")
		persist, _ := cmd.Flags().GetBool("persist")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		var db *gorm.DB
		if persist || cfg.Catalog.Persist {
			db, err = database.Connect(cfg.Database)
			if err != nil {
				return fmt.Errorf("database connection required: %w", err)
			}
			cfg.Catalog.Persist = true
		}

		svc := catalog.NewService(client, cfg.Storage.Bucket, cfg.Catalog, logg, db)

		logg.Info("Loading catalog (this might take a while)...", zap.String("prefix", cfg.Catalog.Prefix))
		report, err := svc.Load(ctx)
		if err != nil {
			return fmt.Errorf("catalog load failed: %w", err)
		}

		if jsonOutput {
			filename := fmt.Sprintf("load_report_%d.json", time.Now().Unix())
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to save JSON file: %w", err)
			}
			logg.Info("Detailed JSON report saved", zap.String("file", filename), zap.Int("failures", len(report.Failures)))
		}

		stats, err := svc.Stats()
		if err != nil {
			return err
		}

		fmt.Println("\n=== Catalog Load Metrics ===")
		fmt.Printf("Records Processed: %d\n", report.Processed)
		fmt.Printf("Records Built: %d\n", report.Built)
		fmt.Printf("Records Skipped: %d\n", report.Skipped)
		fmt.Printf("Records Failed: %d\n", len(report.Failures))
		fmt.Printf("Sets: %d\n", stats.Sets)
		fmt.Printf("Cards: %d\n", stats.Cards)
		fmt.Printf("Printings: %d\n", stats.Printings)

		strategies := make([]string, 0, len(report.Strategies))
		for s := range report.Strategies {
			strategies = append(strategies, s)
		}
		sort.Strings(strategies)
		for _, s := range strategies {
			fmt.Printf("  %s: %d\n", s, report.Strategies[s])
		}
		fmt.Printf("Execution Time: %s\n", report.Duration.String())

		logg.Info("Catalog load completed",
			zap.Int("processed", report.Processed),
			zap.Int("built", report.Built),
			zap.Int("skipped", report.Skipped),
			zap.Int("failed", len(report.Failures)),
			zap.Bool("persisted", cfg.Catalog.Persist),
			zap.Duration("execution_time", report.Duration),
		)

		return nil
	},
}

func init() {
	RootCmd.AddCommand(loadCmd)

	loadCmd.Flags().Bool("json", false, "Save the load report as JSON")
	loadCmd.Flags().Bool("persist", false, "Write the loaded catalog to the database")
}
