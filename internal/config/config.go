package config

import (
	"fmt"
	"os"

	"github.com/gyeh/hkpcalc/internal/model"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for an hkpcalc run.
type Config struct {
	DSN                 string
	ChartPath           string // YAML finding chart for single-chart commands
	FilePath            string // Parquet finding rows for batch
	CatalogPath         string // alternate position catalog; empty means built-in
	LabPath             string
	LabID               string
	Tier                string
	Factor              string
	TenureYears         int
	Insurance           string
	AdditionalInsurance bool
	Output              string // "text" or "json"
	LogFormat           string // "text" or "json"
	LogLevel            string
	DryRun              bool
	Tiers               []string `yaml:"tiers"` // subset of coverage tiers written by batch
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	CatalogPath string   `yaml:"catalog_path"`
	LabPath     string   `yaml:"lab_path"`
	LabID       string   `yaml:"lab_id"`
	Insurance   string   `yaml:"insurance"`
	Output      string   `yaml:"output"`
	Tiers       []string `yaml:"tiers"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Values already set from flags win over the file.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	setIfEmpty(&c.CatalogPath, yc.CatalogPath)
	setIfEmpty(&c.LabPath, yc.LabPath)
	setIfEmpty(&c.LabID, yc.LabID)
	setIfEmpty(&c.Insurance, yc.Insurance)
	setIfEmpty(&c.Output, yc.Output)
	if len(c.Tiers) == 0 {
		c.Tiers = yc.Tiers
	}
	return c.validateTiers()
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// validateTiers normalizes every entry in Tiers to its canonical name.
// If Tiers is empty, it defaults to all coverage tiers.
func (c *Config) validateTiers() error {
	if len(c.Tiers) == 0 {
		c.Tiers = make([]string, len(model.AllCoverageTiers))
		for i, t := range model.AllCoverageTiers {
			c.Tiers[i] = string(t)
		}
		return nil
	}
	for i, name := range c.Tiers {
		t, err := model.ParseCoverageTier(name)
		if err != nil {
			return fmt.Errorf("unknown tier %q in config", name)
		}
		c.Tiers[i] = string(t)
	}
	return nil
}

// CoverageTiers returns Tiers as typed values, defaulting to all tiers.
func (c *Config) CoverageTiers() ([]model.CoverageTier, error) {
	if err := c.validateTiers(); err != nil {
		return nil, err
	}
	out := make([]model.CoverageTier, len(c.Tiers))
	for i, name := range c.Tiers {
		out[i] = model.CoverageTier(name)
	}
	return out, nil
}

// InsuranceType parses Insurance, defaulting to statutory.
func (c *Config) InsuranceType() (model.InsuranceType, error) {
	if c.Insurance == "" {
		return model.InsuranceStatutory, nil
	}
	return model.ParseInsuranceType(c.Insurance)
}

// Validate checks the fields every single-chart command needs.
func (c *Config) Validate() error {
	if c.ChartPath == "" {
		return fmt.Errorf("--chart is required")
	}
	if _, err := os.Stat(c.ChartPath); err != nil {
		return fmt.Errorf("chart not accessible: %w", err)
	}
	if c.TenureYears < 0 {
		return fmt.Errorf("--tenure must not be negative")
	}
	switch c.Output {
	case "", "text", "json":
	default:
		return fmt.Errorf("--output must be text or json, got %q", c.Output)
	}
	if _, err := c.InsuranceType(); err != nil {
		return err
	}
	return nil
}

// ValidateBatch checks both the Parquet file and DSN fields.
func (c *Config) ValidateBatch() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	if c.DSN == "" && !c.DryRun {
		return fmt.Errorf("--dsn or HKPCALC_DB_URL is required")
	}
	return nil
}
