package cmd

import (
	"context"
	"fmt"
	"os"

	"card-catalog/core/config"
	"card-catalog/core/database"
	"card-catalog/core/logger"
	"card-catalog/core/storage"
	"card-catalog/feature/catalog"
	"card-catalog/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the catalog storage",
	Long:  `Checks that the storage bucket holds the catalog folder, the export files and a matching database schema.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			cmd.Help()
			return
		}
		runIntegrityChecks(cmd.Context(), checkStructure|checkFiles|checkSchema)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix folder structure",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), checkStructure)
	},
}

// filesCmd represents the integrity files command
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Check catalog export files",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), checkFiles)
	},
}

// coverageCmd loads the catalog and compares it with the stored name list.
var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Load the catalog and check card name coverage",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), checkCoverage)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the catalog database schema",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), checkSchema)
	},
}

type checkSet int

const (
	checkStructure checkSet = 1 << iota
	checkFiles
	checkCoverage
	checkSchema
)

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, filesCmd, coverageCmd, schemaCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Fix missing folders")
}

func runIntegrityChecks(ctx context.Context, run checkSet) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Fatal("Failed to create storage client", zap.Error(err))
	}

	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
	}

	// Persisting is left to the load command
	cfg.Catalog.Persist = false
	cat := catalog.NewService(store, cfg.Storage.Bucket, cfg.Catalog, logg, db)
	svc := integrity.NewService(store, cfg.Storage.Bucket, cfg.Catalog, logg, db, cat)

	if run&checkStructure != 0 {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			logg.Fatal("Structure check failed", zap.Error(err))
		}

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))

			if fixFlag {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					logg.Fatal("Failed to fix structure", zap.Error(err))
				}
				logg.Info("Structure fixed successfully.")
			} else {
				logg.Info("Run with --fix to create missing folders.")
			}
		}
	}

	if run&checkFiles != 0 {
		logg.Info("Checking catalog files...")
		missing, err := svc.CheckFiles(ctx)
		if err != nil {
			logg.Fatal("File check failed", zap.Error(err))
		}

		if len(missing) == 0 {
			logg.Info("Catalog files are present.")
		} else {
			logg.Warn("Missing catalog files detected", zap.Strings("missing", missing))
		}
	}

	if run&checkCoverage != 0 {
		logg.Info("Loading catalog (this might take a while)...")
		if _, err := cat.Load(ctx); err != nil {
			logg.Fatal("Catalog load failed", zap.Error(err))
		}

		report, err := svc.CheckCoverage(ctx)
		if err != nil {
			logg.Fatal("Coverage check failed", zap.Error(err))
		}
		if len(report.Missing) == 0 {
			logg.Info("Catalog covers every listed card name.", zap.Int("expected", report.Expected))
		} else {
			logg.Warn("Card names missing from catalog",
				zap.Int("expected", report.Expected),
				zap.Int("found", report.Found),
				zap.Strings("missing", report.Missing))
		}
	}

	if run&checkSchema != 0 {
		logg.Info("Checking catalog schema integrity...")
		report, err := svc.CheckSchema()
		if err != nil {
			logg.Error("Schema check failed", zap.Error(err))
			return
		}
		if report.Matched {
			logg.Info("Catalog schema matches expected definition.")
			return
		}

		logg.Warn("Catalog schema mismatches found")
		for table, tblReport := range report.Tables {
			if tblReport.Status == "ok" {
				continue
			}
			if tblReport.Status == "missing" {
				logg.Warn("Missing table", zap.String("table", table))
			}
			if len(tblReport.MissingColumns) > 0 {
				logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
			}
			if len(tblReport.TypeMismatches) > 0 {
				logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
			}
		}
		for _, e := range report.Errors {
			logg.Error("Inspection Error", zap.String("error", e))
		}
	}
}
