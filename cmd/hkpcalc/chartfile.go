package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/hkpcalc/internal/model"
	"github.com/gyeh/hkpcalc/internal/normalize"
	"github.com/gyeh/hkpcalc/internal/treatment"
)

// chartFile is the on-disk YAML structure of a single finding chart.
// Patient fields are optional and overridden by explicit flags.
type chartFile struct {
	ChartID             string            `yaml:"chart_id"`
	Insurance           string            `yaml:"insurance"`
	BonusTenureYears    *int              `yaml:"bonus_tenure_years"`
	AdditionalInsurance *bool             `yaml:"additional_insurance"`
	Teeth               map[string]string `yaml:"teeth"`
}

func readChartFile(path string) (*chartFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chart file: %w", err)
	}
	var cf chartFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse chart file: %w", err)
	}
	return &cf, nil
}

// chartFlags registers the chart and patient flags shared by the
// single-chart commands.
func chartFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cfg.ChartPath, "chart", "", "Finding chart YAML file (required)")
	f.IntVar(&cfg.TenureYears, "tenure", 0, "Bonus booklet tenure in years")
	f.StringVar(&cfg.Insurance, "insurance", "", "Insurance type: statutory (gkv) or private (pkv)")
	f.BoolVar(&cfg.AdditionalInsurance, "additional-insurance", false, "Patient has additional private coverage")
	f.StringVar(&cfg.Output, "output", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("chart")
}

// buildRequest merges the chart file with the flags into an engine request.
func buildRequest(cmd *cobra.Command) (treatment.Request, error) {
	cf, err := readChartFile(cfg.ChartPath)
	if err != nil {
		return treatment.Request{}, err
	}
	chart, err := normalize.Chart(cf.Teeth)
	if err != nil {
		return treatment.Request{}, err
	}

	if !cmd.Flags().Changed("insurance") && cf.Insurance != "" {
		cfg.Insurance = cf.Insurance
	}
	if !cmd.Flags().Changed("tenure") && cf.BonusTenureYears != nil {
		cfg.TenureYears = *cf.BonusTenureYears
	}
	if !cmd.Flags().Changed("additional-insurance") && cf.AdditionalInsurance != nil {
		cfg.AdditionalInsurance = *cf.AdditionalInsurance
	}

	ins, err := cfg.InsuranceType()
	if err != nil {
		return treatment.Request{}, err
	}
	return treatment.Request{
		Chart:                  chart,
		Insurance:              ins,
		BonusTenureYears:       cfg.TenureYears,
		HasAdditionalInsurance: cfg.AdditionalInsurance,
	}, nil
}

// tierFlag parses the --tier flag.
func tierFlag() (model.CoverageTier, error) {
	if cfg.Tier == "" {
		return model.TierStandard, nil
	}
	return model.ParseCoverageTier(cfg.Tier)
}
