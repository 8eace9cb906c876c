package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gyeh/hkpcalc/internal/config"
)

var (
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "hkpcalc",
	Short: "Dental treatment cost estimator",
	Long: "Computes the statutory fixed subsidy, the standard-of-care mapping and three " +
		"alternative treatment plans with itemized fee-schedule and lab costs from a finding chart.",
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvAndConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", "", "Postgres connection string (or set HKPCALC_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&configPath, "config", "", "Optional YAML config file")
	pf.StringVar(&cfg.CatalogPath, "catalog", "", "Alternate position catalog YAML (default: built-in)")
}

// loadEnvAndConfig reads .env (if present) and the optional config file.
// Flag values win over both.
func loadEnvAndConfig(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if cfg.DSN == "" {
		cfg.DSN = os.Getenv("HKPCALC_DB_URL")
	}
	if configPath != "" {
		return cfg.LoadFromFile(configPath)
	}
	return nil
}
