package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/hkpcalc/internal/costs"
	"github.com/gyeh/hkpcalc/internal/exitcode"
	"github.com/gyeh/hkpcalc/internal/logging"
	"github.com/gyeh/hkpcalc/internal/positions"
)

var labquoteCmd = &cobra.Command{
	Use:   "labquote",
	Short: "Price the dental-lab work of one tier with a lab's pricing",
	RunE:  runLabquote,
}

func init() {
	f := labquoteCmd.Flags()
	f.StringVar(&cfg.ChartPath, "chart", "", "Finding chart YAML file (required)")
	f.StringVar(&cfg.Tier, "tier", "standard", "Coverage tier: standard, premium or implant")
	f.StringVar(&cfg.LabPath, "lab", "", "Lab pricing YAML file")
	f.StringVar(&cfg.LabID, "lab-id", "", "Load lab pricing from the database by lab ID")
	f.StringVar(&cfg.Output, "output", "text", "Output format: text or json")
	_ = labquoteCmd.MarkFlagRequired("chart")
	rootCmd.AddCommand(labquoteCmd)
}

func runLabquote(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if cfg.LabPath == "" && cfg.LabID == "" {
		log.Error().Msg("--lab or --lab-id is required")
		os.Exit(exitcode.UsageError)
	}

	tier, err := tierFlag()
	if err != nil {
		fail(log, err, "invalid tier")
	}
	req, err := buildRequest(cmd)
	if err != nil {
		fail(log, err, "invalid chart")
	}
	engine, err := newEngine(ctx, log)
	if err != nil {
		fail(log, err, "engine setup failed")
	}

	material := tier.Material()
	lines, err := positions.GenerateLab(engine.Catalog, req.Chart, material)
	if err != nil {
		fail(log, err, "lab positions failed")
	}
	b, err := costs.Lab(lines, engine.Lab, material, log)
	if err != nil {
		fail(log, err, "lab pricing failed")
	}

	out := cmd.OutOrStdout()
	if cfg.Output == "json" {
		return writeJSON(out, b)
	}
	fmt.Fprintf(out, "%s: %s work (%s)\n", engine.Lab.Name, tier, material)
	printBreakdown(out, b)
	return nil
}
