package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/hkpcalc/internal/chartread"
	"github.com/gyeh/hkpcalc/internal/model"
	"github.com/gyeh/hkpcalc/internal/normalize"
	embedsql "github.com/gyeh/hkpcalc/internal/sql"
)

// PreflightResult holds all context resolved during the preflight phase.
type PreflightResult struct {
	// FilePath is the original path passed to Preflight, stored as-is.
	FilePath   string
	FileSHA256 string
	FileSize   int64
	// BatchID tags every summary row written by this run. When the file was
	// already quoted it is the earlier batch's ID.
	BatchID uuid.UUID
	// NumRows is the row count from the Parquet footer.
	NumRows int64
	// Tiers is the canonical key of the requested coverage tiers.
	Tiers string
	// AlreadyQuoted is true when the same file was quoted against the same
	// lab and tier set before and force mode is off.
	AlreadyQuoted bool
}

// Inspect hashes the file and opens it, which validates the schema,
// without touching the database.
func Inspect(log zerolog.Logger, filePath string) (*PreflightResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}
	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	reader, err := chartread.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight open: %w", err)
	}
	defer reader.Close()

	pf := &PreflightResult{
		FilePath:   filePath,
		FileSHA256: sha,
		FileSize:   stat.Size(),
		BatchID:    uuid.New(),
		NumRows:    reader.NumRows(),
	}
	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("sha256", sha).
		Int64("rows", pf.NumRows).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")
	return pf, nil
}

// tierKey renders a tier set in canonical order, so that the same tiers
// given in any order or with repeats map to the same key.
func tierKey(tiers []model.CoverageTier) string {
	want := make(map[model.CoverageTier]bool, len(tiers))
	for _, t := range tiers {
		want[t] = true
	}
	var parts []string
	for _, t := range model.AllCoverageTiers {
		if want[t] {
			parts = append(parts, string(t))
		}
	}
	return strings.Join(parts, ",")
}

// Preflight inspects the file and registers the batch. A file already
// quoted against the same lab and the same tier set is reported, not
// registered again, unless force is set.
func Preflight(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, filePath string, labID *uuid.UUID, tiers []model.CoverageTier, force bool) (*PreflightResult, error) {
	pf, err := Inspect(log, filePath)
	if err != nil {
		return nil, err
	}
	pf.Tiers = tierKey(tiers)

	if !force {
		var existing uuid.UUID
		err := pool.QueryRow(ctx, embedsql.LookupQuotedBatch, pf.FileSHA256, labID, pf.Tiers).Scan(&existing)
		switch {
		case err == nil:
			pf.BatchID = existing
			pf.AlreadyQuoted = true
			return pf, nil
		case !errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("preflight lookup batch: %w", err)
		}
	}

	if _, err := pool.Exec(ctx, embedsql.RegisterBatch, pf.BatchID, filepath.Base(filePath), pf.FileSHA256, labID, pf.Tiers); err != nil {
		return nil, fmt.Errorf("preflight register batch: %w", err)
	}
	return pf, nil
}
