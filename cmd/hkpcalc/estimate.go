package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/hkpcalc/internal/exitcode"
	"github.com/gyeh/hkpcalc/internal/logging"
	"github.com/gyeh/hkpcalc/internal/model"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Compute the three treatment plans for a finding chart",
	RunE:  runEstimate,
}

func init() {
	chartFlags(estimateCmd)
	f := estimateCmd.Flags()
	f.StringVar(&cfg.LabPath, "lab", "", "Lab pricing YAML file")
	f.StringVar(&cfg.LabID, "lab-id", "", "Load lab pricing from the database by lab ID")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	req, err := buildRequest(cmd)
	if err != nil {
		fail(log, err, "invalid chart")
	}
	engine, err := newEngine(ctx, log)
	if err != nil {
		fail(log, err, "engine setup failed")
	}

	opts, err := engine.Options(req)
	if err != nil {
		fail(log, err, "estimate failed")
	}

	out := cmd.OutOrStdout()
	if cfg.Output == "json" {
		return writeJSON(out, opts)
	}
	for _, tier := range model.AllCoverageTiers {
		for _, p := range opts[tier] {
			printPlan(out, p)
		}
	}
	return nil
}
