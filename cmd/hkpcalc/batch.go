package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gyeh/hkpcalc/internal/batch"
	"github.com/gyeh/hkpcalc/internal/db"
	"github.com/gyeh/hkpcalc/internal/exitcode"
	"github.com/gyeh/hkpcalc/internal/logging"
	"github.com/gyeh/hkpcalc/internal/model"
)

var force bool

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Quote every chart of a Parquet file and store the plan summaries",
	RunE:  runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to Parquet file of finding rows (required)")
	f.StringVar(&cfg.LabPath, "lab", "", "Lab pricing YAML file")
	f.StringVar(&cfg.LabID, "lab-id", "", "Load lab pricing from the database by lab ID")
	f.StringSliceVar(&cfg.Tiers, "tiers", nil, "Coverage tiers to write (default: all)")
	f.BoolVar(&force, "force", false, "Quote again even if the file was already quoted with this lab")
	f.BoolVar(&cfg.DryRun, "dry-run", false, "Quote without writing to the database")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if err := cfg.ValidateBatch(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	tiers, err := cfg.CoverageTiers()
	if err != nil {
		log.Error().Err(err).Msg("invalid --tiers")
		os.Exit(exitcode.UsageError)
	}

	engine, err := newEngine(ctx, log)
	if err != nil {
		fail(log, err, "engine setup failed")
	}

	if cfg.DryRun {
		res, err := batch.DryRun(ctx, log, cfg.FilePath, engine, tiers)
		if err != nil {
			fail(log, err, "dry run failed")
		}
		fmt.Printf("Dry run complete: %d charts read, %d rejected, %d plans (%.1fs)\n",
			res.ChartsRead, res.ChartsRejected, res.PlansWritten, res.Duration.Seconds())
		return nil
	}

	pool, err := db.NewPool(ctx, cfg.DSN, log)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	opts := batch.Options{FilePath: cfg.FilePath, Tiers: tiers, Force: force}
	if engine.Lab != nil && engine.Lab.LabID != uuid.Nil {
		id := engine.Lab.LabID
		opts.LabID = &id
	}

	summary, err := batch.Run(ctx, pool, log, engine, opts)
	if err != nil {
		var pe *batch.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("batch failed")
			var ce *model.ConfigError
			switch {
			case pe.Phase == "preflight":
				os.Exit(exitcode.ValidationError)
			case errors.As(pe.Err, &ce):
				os.Exit(exitcode.ConfigError)
			default:
				os.Exit(exitcode.CopyError)
			}
		}
		log.Error().Err(err).Msg("batch failed")
		os.Exit(exitcode.CopyError)
	}

	fmt.Printf("Batch complete: %d charts read, %d rejected, %d plans written (%.1fs)\n",
		summary.ChartsRead, summary.ChartsRejected, summary.PlansWritten, summary.DurationTotal.Seconds())
	if summary.ChartsRejected > 0 {
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
