package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/hkpcalc/internal/catalog"
	"github.com/gyeh/hkpcalc/internal/costs"
	"github.com/gyeh/hkpcalc/internal/db"
	"github.com/gyeh/hkpcalc/internal/exitcode"
	"github.com/gyeh/hkpcalc/internal/labpricing"
	"github.com/gyeh/hkpcalc/internal/model"
	"github.com/gyeh/hkpcalc/internal/treatment"
)

func loadCatalog() (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(cfg.CatalogPath)
}

// loadLab returns the lab pricing from --lab, else from the database by
// --lab-id, else nil.
func loadLab(ctx context.Context, log zerolog.Logger) (*labpricing.Config, error) {
	switch {
	case cfg.LabPath != "":
		return labpricing.LoadFile(cfg.LabPath)
	case cfg.LabID != "":
		id, err := uuid.Parse(cfg.LabID)
		if err != nil {
			return nil, &model.ValidationError{Field: "lab id", Value: cfg.LabID, Err: err}
		}
		if cfg.DSN == "" {
			return nil, fmt.Errorf("--lab-id needs --dsn or HKPCALC_DB_URL")
		}
		pool, err := db.NewPool(ctx, cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		return db.LoadLabPricing(ctx, pool, id)
	default:
		return nil, nil
	}
}

func newEngine(ctx context.Context, log zerolog.Logger) (*treatment.Engine, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	lab, err := loadLab(ctx, log)
	if err != nil {
		return nil, err
	}
	if lab != nil {
		log.Debug().Str("lab", lab.Name).Msg("lab pricing loaded")
	}
	return &treatment.Engine{Catalog: cat, Lab: lab, Log: log}, nil
}

// exitCode maps an engine error to the process exit code.
func exitCode(err error) int {
	var ve *model.ValidationError
	var ce *model.ConfigError
	switch {
	case errors.As(err, &ve),
		errors.Is(err, costs.ErrFactorOutOfRange),
		errors.Is(err, costs.ErrRegionFactorOutOfRange):
		return exitcode.ValidationError
	case errors.As(err, &ce), errors.Is(err, costs.ErrNoLabConfig), errors.Is(err, db.ErrLabNotFound):
		return exitcode.ConfigError
	default:
		return exitcode.UsageError
	}
}

// fail logs err and exits with the mapped code.
func fail(log zerolog.Logger, err error, msg string) {
	log.Error().Err(err).Msg(msg)
	os.Exit(exitCode(err))
}
