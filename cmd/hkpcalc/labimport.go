package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gyeh/hkpcalc/internal/db"
	"github.com/gyeh/hkpcalc/internal/exitcode"
	"github.com/gyeh/hkpcalc/internal/labpricing"
	"github.com/gyeh/hkpcalc/internal/logging"
)

var labImportCmd = &cobra.Command{
	Use:   "lab-import",
	Short: "Store a lab pricing YAML file in the database",
	RunE:  runLabImport,
}

func init() {
	f := labImportCmd.Flags()
	f.StringVar(&cfg.LabPath, "lab", "", "Lab pricing YAML file (required)")
	_ = labImportCmd.MarkFlagRequired("lab")
	rootCmd.AddCommand(labImportCmd)
}

func runLabImport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if cfg.DSN == "" {
		log.Error().Msg("--dsn or HKPCALC_DB_URL is required")
		os.Exit(exitcode.UsageError)
	}

	lab, err := labpricing.LoadFile(cfg.LabPath)
	if err != nil {
		fail(log, err, "invalid lab pricing")
	}
	if lab.LabID == uuid.Nil {
		log.Error().Str("file", cfg.LabPath).Msg("lab_id is required for import")
		os.Exit(exitcode.ConfigError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN, log)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	if err := db.SaveLabPricing(ctx, pool, lab); err != nil {
		log.Error().Err(err).Msg("lab import failed")
		os.Exit(exitcode.CopyError)
	}

	fmt.Printf("Lab %s (%s) imported: %d materials, %d position overrides\n",
		lab.Name, lab.LabID, len(lab.Materials), len(lab.Overrides))
	return nil
}
