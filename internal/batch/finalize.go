package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/gyeh/hkpcalc/internal/sql"
)

// Finalize records the batch counts, marks it complete, and runs ANALYZE.
func Finalize(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, batchID uuid.UUID, res *QuoteResult) (time.Duration, error) {
	start := time.Now()

	if _, err := pool.Exec(ctx, embedsql.CompleteBatch, batchID, res.ChartsRead, res.ChartsRejected, res.PlansWritten); err != nil {
		return 0, fmt.Errorf("complete batch: %w", err)
	}
	log.Info().Str("batch_id", batchID.String()).Msg("batch marked complete")

	if _, err := pool.Exec(ctx, embedsql.AnalyzeSummaries); err != nil {
		return 0, fmt.Errorf("analyze summaries: %w", err)
	}
	log.Info().Msg("ANALYZE complete")

	return time.Since(start), nil
}

// UpdateStatus sets the batch status.
func UpdateStatus(ctx context.Context, pool *pgxpool.Pool, batchID uuid.UUID, status string) error {
	_, err := pool.Exec(ctx, embedsql.UpdateBatchStatus, batchID, status)
	return err
}
