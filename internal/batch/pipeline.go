// Package batch quotes every chart of a Parquet file and stores one summary
// row per chart and coverage tier in Postgres.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/hkpcalc/internal/model"
	"github.com/gyeh/hkpcalc/internal/treatment"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Options controls a batch run.
type Options struct {
	FilePath string
	LabID    *uuid.UUID
	Tiers    []model.CoverageTier
	Force    bool
}

func isValidation(err error) bool {
	var ve *model.ValidationError
	return errors.As(err, &ve)
}

// Run executes the batch pipeline: preflight → quote → finalize. A failed
// quote phase removes any rows it wrote.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, engine *treatment.Engine, opts Options) (*model.BatchSummary, error) {
	totalStart := time.Now()

	// Phase 1: Preflight
	log.Info().Str("file", opts.FilePath).Msg("starting preflight")
	pf, err := Preflight(ctx, pool, log, opts.FilePath, opts.LabID, opts.Tiers, opts.Force)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}

	if pf.AlreadyQuoted {
		log.Info().
			Str("batch_id", pf.BatchID.String()).
			Str("sha256", pf.FileSHA256).
			Msg("file already quoted, skipping (use --force to quote again)")
		return &model.BatchSummary{
			FilePath:      pf.FilePath,
			FileSHA256:    pf.FileSHA256,
			BatchID:       pf.BatchID.String(),
			DurationTotal: time.Since(totalStart),
		}, nil
	}

	// Phase 2: Quote
	log.Info().Int("tiers", len(opts.Tiers)).Msg("starting quote")
	if err := UpdateStatus(ctx, pool, pf.BatchID, "quoting"); err != nil {
		return nil, &PipelineError{Phase: "quote", Err: err}
	}

	res, err := Quote(ctx, pool, log, pf, engine, opts.Tiers)
	if err != nil {
		_ = UpdateStatus(ctx, pool, pf.BatchID, "failed")
		if cerr := Cleanup(ctx, pool, log, pf.BatchID); cerr != nil {
			log.Warn().Err(cerr).Msg("cleanup of failed batch failed (non-fatal)")
		}
		return nil, &PipelineError{Phase: "quote", Err: err}
	}

	// Phase 3: Finalize
	log.Info().Msg("finalizing")
	finalizeDur, err := Finalize(ctx, pool, log, pf.BatchID, res)
	if err != nil {
		_ = UpdateStatus(ctx, pool, pf.BatchID, "failed")
		return nil, &PipelineError{Phase: "finalize", Err: err}
	}

	summary := &model.BatchSummary{
		FilePath:         pf.FilePath,
		FileSHA256:       pf.FileSHA256,
		BatchID:          pf.BatchID.String(),
		RowsRead:         res.RowsRead,
		ChartsRead:       res.ChartsRead,
		ChartsRejected:   res.ChartsRejected,
		PlansWritten:     res.PlansWritten,
		PlansByTier:      res.PlansByTier,
		DurationQuote:    res.Duration,
		DurationFinalize: finalizeDur,
		DurationTotal:    time.Since(totalStart),
	}

	log.Info().
		Int64("charts", summary.ChartsRead).
		Int64("charts_rejected", summary.ChartsRejected).
		Int64("plans_written", summary.PlansWritten).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("batch pipeline complete")

	return summary, nil
}
