package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/hkpcalc/internal/chartread"
	"github.com/gyeh/hkpcalc/internal/db"
	"github.com/gyeh/hkpcalc/internal/model"
	"github.com/gyeh/hkpcalc/internal/normalize"
	"github.com/gyeh/hkpcalc/internal/treatment"
)

const readBatchSize = 1024

// QuoteResult holds metrics from the quote phase.
type QuoteResult struct {
	RowsRead       int64
	ChartsRead     int64
	ChartsRejected int64
	PlansWritten   int64
	PlansByTier    map[model.CoverageTier]int64
	Duration       time.Duration
}

// request turns a chart group into an engine request. Missing insurance
// means statutory.
func request(g *chartread.Group) (treatment.Request, error) {
	chart, err := g.Chart()
	if err != nil {
		return treatment.Request{}, err
	}
	ins := model.InsuranceStatutory
	if g.Insurance != "" {
		if ins, err = model.ParseInsuranceType(g.Insurance); err != nil {
			return treatment.Request{}, err
		}
	}
	return treatment.Request{
		Chart:                  chart,
		Insurance:              ins,
		BonusTenureYears:       g.BonusTenureYears,
		HasAdditionalInsurance: g.AdditionalInsurance,
	}, nil
}

// produce reads charts, quotes them and pushes one summary row per
// requested tier. Charts that fail validation are counted and skipped;
// catalog errors abort the run. The caller closes ch.
func produce(ctx context.Context, log zerolog.Logger, path string, engine *treatment.Engine, tiers []model.CoverageTier, batchID uuid.UUID, ch chan<- *model.PlanSummaryRow, res *QuoteResult) error {
	reader, err := chartread.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer reader.Close()

	g := chartread.NewGrouper(reader, readBatchSize)
	for {
		grp, err := g.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read charts after %d rows: %w", res.RowsRead, err)
		}
		res.RowsRead += int64(grp.Rows)
		res.ChartsRead++

		req, err := request(grp)
		if err != nil {
			res.ChartsRejected++
			log.Warn().Err(err).Str("chart_id", grp.ChartID).Msg("chart rejected")
			continue
		}
		opts, err := engine.Options(req)
		if err != nil {
			if isValidation(err) {
				res.ChartsRejected++
				log.Warn().Err(err).Str("chart_id", grp.ChartID).Msg("chart rejected")
				continue
			}
			return fmt.Errorf("chart %s: %w", grp.ChartID, err)
		}

		for _, tier := range tiers {
			for i := range opts[tier] {
				row := normalize.ToSummaryRow(&opts[tier][i], batchID, grp.ChartID)
				select {
				case ch <- row:
				case <-ctx.Done():
					return ctx.Err()
				}
				res.PlansByTier[tier]++
			}
		}
	}
}

// Quote streams charts from the Parquet file through the engine and
// COPY-loads the plan summaries via a channel-backed CopyFromSource.
func Quote(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult, engine *treatment.Engine, tiers []model.CoverageTier) (*QuoteResult, error) {
	start := time.Now()
	res := &QuoteResult{PlansByTier: make(map[model.CoverageTier]int64)}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan *model.PlanSummaryRow, readBatchSize)
	errCh := make(chan error, 1)
	source := db.NewChannelSource(ch)

	// Producer goroutine: read Parquet → quote → push to channel. A producer
	// error is handed to the source before the channel closes so COPY
	// aborts instead of committing a partial batch.
	go func() {
		err := produce(ctx, log, pf.FilePath, engine, tiers, pf.BatchID, ch, res)
		if err != nil {
			source.Fail(err)
		}
		close(ch)
		errCh <- err
	}()

	// Consumer: COPY from channel into the summary table
	written, err := pool.CopyFrom(ctx,
		pgx.Identifier{"quote", "plan_summaries"},
		model.PlanSummaryColumns(),
		source,
	)
	if err != nil {
		cancel()
		for range ch {
		}
	}

	prodErr := <-errCh
	if prodErr != nil && !errors.Is(prodErr, context.Canceled) {
		return nil, fmt.Errorf("quote producer: %w", prodErr)
	}
	if err != nil {
		return nil, fmt.Errorf("quote copy: %w", err)
	}
	if prodErr != nil {
		return nil, fmt.Errorf("quote producer: %w", prodErr)
	}

	res.PlansWritten = written
	res.Duration = time.Since(start)
	log.Info().
		Int64("rows_read", res.RowsRead).
		Int64("charts", res.ChartsRead).
		Int64("charts_rejected", res.ChartsRejected).
		Int64("plans_written", written).
		Str("duration", res.Duration.String()).
		Float64("charts_per_sec", float64(res.ChartsRead)/res.Duration.Seconds()).
		Msg("quoting complete")

	return res, nil
}

// DryRun quotes every chart without a database and discards the rows.
func DryRun(ctx context.Context, log zerolog.Logger, path string, engine *treatment.Engine, tiers []model.CoverageTier) (*QuoteResult, error) {
	start := time.Now()
	res := &QuoteResult{PlansByTier: make(map[model.CoverageTier]int64)}

	ch := make(chan *model.PlanSummaryRow, readBatchSize)
	errCh := make(chan error, 1)
	go func() {
		err := produce(ctx, log, path, engine, tiers, uuid.Nil, ch, res)
		close(ch)
		errCh <- err
	}()

	for range ch {
		res.PlansWritten++
	}
	if err := <-errCh; err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)
	return res, nil
}
