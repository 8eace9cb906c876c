package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gyeh/hkpcalc/internal/labpricing"
	"github.com/gyeh/hkpcalc/internal/model"
	embedsql "github.com/gyeh/hkpcalc/internal/sql"
)

var ErrLabNotFound = errors.New("lab not found")

// LoadLabPricing reads one lab's pricing configuration and validates it.
// Numerics are selected as text and parsed into decimals so no precision
// is lost on the way.
func LoadLabPricing(ctx context.Context, pool *pgxpool.Pool, labID uuid.UUID) (*labpricing.Config, error) {
	cfg := &labpricing.Config{
		LabID:         labID,
		MaterialTypes: make(map[model.MaterialTier]string),
		Overrides:     make(map[string]labpricing.PositionOverride),
	}

	var pv, rf string
	err := pool.QueryRow(ctx, embedsql.SelectLab, labID).Scan(&cfg.Name, &pv, &rf)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("lab %s: %w", labID, ErrLabNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select lab: %w", err)
	}
	if cfg.PointValue, err = decimal.NewFromString(pv); err != nil {
		return nil, fmt.Errorf("lab %s point value: %w", labID, err)
	}
	if cfg.DefaultRegionFactor, err = decimal.NewFromString(rf); err != nil {
		return nil, fmt.Errorf("lab %s region factor: %w", labID, err)
	}

	if err := loadMaterialTypes(ctx, pool, cfg); err != nil {
		return nil, err
	}
	if err := loadMaterials(ctx, pool, cfg); err != nil {
		return nil, err
	}
	if err := loadOverrides(ctx, pool, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadMaterialTypes(ctx context.Context, pool *pgxpool.Pool, cfg *labpricing.Config) error {
	rows, err := pool.Query(ctx, embedsql.SelectLabMaterialTypes, cfg.LabID)
	if err != nil {
		return fmt.Errorf("select material types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tier, name string
		if err := rows.Scan(&tier, &name); err != nil {
			return fmt.Errorf("scan material type: %w", err)
		}
		cfg.MaterialTypes[model.MaterialTier(tier)] = name
	}
	return rows.Err()
}

func loadMaterials(ctx context.Context, pool *pgxpool.Pool, cfg *labpricing.Config) error {
	rows, err := pool.Query(ctx, embedsql.SelectLabMaterials, cfg.LabID)
	if err != nil {
		return fmt.Errorf("select materials: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m                    labpricing.Material
			indication           string
			basePrice, surcharge string
		)
		if err := rows.Scan(&indication, &m.MaterialType, &m.Name, &basePrice, &surcharge, &m.BaseMaterial); err != nil {
			return fmt.Errorf("scan material: %w", err)
		}
		m.Indication = model.Category(indication)
		if m.BasePrice, err = decimal.NewFromString(basePrice); err != nil {
			return fmt.Errorf("material %s base price: %w", m.Name, err)
		}
		if m.SurchargePercent, err = decimal.NewFromString(surcharge); err != nil {
			return fmt.Errorf("material %s surcharge: %w", m.Name, err)
		}
		cfg.Materials = append(cfg.Materials, m)
	}
	return rows.Err()
}

func loadOverrides(ctx context.Context, pool *pgxpool.Pool, cfg *labpricing.Config) error {
	rows, err := pool.Query(ctx, embedsql.SelectLabOverrides, cfg.LabID)
	if err != nil {
		return fmt.Errorf("select position overrides: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			code      string
			price, rf *string
			o         labpricing.PositionOverride
		)
		if err := rows.Scan(&code, &price, &o.Enabled, &rf); err != nil {
			return fmt.Errorf("scan position override: %w", err)
		}
		if o.CustomPrice, err = optDecimal(price); err != nil {
			return fmt.Errorf("override %s custom price: %w", code, err)
		}
		if o.RegionFactor, err = optDecimal(rf); err != nil {
			return fmt.Errorf("override %s region factor: %w", code, err)
		}
		cfg.Overrides[code] = o
	}
	return rows.Err()
}

func optDecimal(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// SaveLabPricing replaces a lab's stored pricing with cfg in one
// transaction.
func SaveLabPricing(ctx context.Context, pool *pgxpool.Pool, cfg *labpricing.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.LabID == uuid.Nil {
		return fmt.Errorf("lab %q has no lab_id", cfg.Name)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, embedsql.UpsertLab, cfg.LabID, cfg.Name, cfg.PointValue.String(), cfg.DefaultRegionFactor.String()); err != nil {
		return fmt.Errorf("upsert lab: %w", err)
	}
	for _, table := range []string{"lab.material_types", "lab.materials", "lab.position_overrides"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE lab_id = $1", cfg.LabID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for tier, name := range cfg.MaterialTypes {
		if _, err := tx.Exec(ctx, embedsql.InsertLabMaterialType, cfg.LabID, string(tier), name); err != nil {
			return fmt.Errorf("insert material type %s: %w", tier, err)
		}
	}
	for i, m := range cfg.Materials {
		_, err := tx.Exec(ctx, embedsql.InsertLabMaterial,
			cfg.LabID, string(m.Indication), m.MaterialType, m.Name,
			m.BasePrice.String(), m.SurchargePercent.String(), m.BaseMaterial, i,
		)
		if err != nil {
			return fmt.Errorf("insert material %s: %w", m.Name, err)
		}
	}
	for code, o := range cfg.Overrides {
		if _, err := tx.Exec(ctx, embedsql.InsertLabOverride, cfg.LabID, code, optString(o.CustomPrice), o.Enabled, optString(o.RegionFactor)); err != nil {
			return fmt.Errorf("insert override %s: %w", code, err)
		}
	}

	return tx.Commit(ctx)
}
