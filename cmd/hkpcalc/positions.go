package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/gyeh/hkpcalc/internal/costs"
	"github.com/gyeh/hkpcalc/internal/exitcode"
	"github.com/gyeh/hkpcalc/internal/logging"
	"github.com/gyeh/hkpcalc/internal/model"
	"github.com/gyeh/hkpcalc/internal/treatment"
)

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "List the priced fee-schedule positions of one tier, optionally at another factor",
	RunE:  runPositions,
}

func init() {
	chartFlags(positionsCmd)
	f := positionsCmd.Flags()
	f.StringVar(&cfg.Tier, "tier", "standard", "Coverage tier: standard, premium or implant")
	f.StringVar(&cfg.Factor, "factor", "", "Value-based factor in [1.0, 3.5] (default: the tier's factor)")
	rootCmd.AddCommand(positionsCmd)
}

// factorFlag returns the tier's default factor, replaced by --factor when
// given. An out-of-range --factor is rejected and the default kept.
func factorFlag(tier model.CoverageTier) (costs.Factor, error) {
	f, err := treatment.DefaultFactor(tier)
	if err != nil || cfg.Factor == "" {
		return f, err
	}
	v, err := decimal.NewFromString(cfg.Factor)
	if err != nil {
		return f, &model.ValidationError{Field: "factor", Value: cfg.Factor, Err: err}
	}
	return f.With(v)
}

func runPositions(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)
	ctx := context.Background()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	tier, err := tierFlag()
	if err != nil {
		fail(log, err, "invalid tier")
	}
	factor, err := factorFlag(tier)
	if err != nil {
		fail(log, err, "invalid factor")
	}
	req, err := buildRequest(cmd)
	if err != nil {
		fail(log, err, "invalid chart")
	}
	engine, err := newEngine(ctx, log)
	if err != nil {
		fail(log, err, "engine setup failed")
	}

	plan, err := engine.PlanAt(req, tier, factor)
	if err != nil {
		fail(log, err, "pricing failed")
	}

	out := cmd.OutOrStdout()
	if cfg.Output == "json" {
		return writeJSON(out, plan.Costs)
	}
	fmt.Fprintf(out, "%s (%s) at factor %s\n", plan.Name, tier, factor)
	printBreakdown(out, plan.Costs)
	fmt.Fprintf(out, "  subsidy:     %s\n", eur(plan.StatutorySubsidy))
	fmt.Fprintf(out, "  patient:     %s\n", eur(plan.PatientPortion))
	return nil
}
