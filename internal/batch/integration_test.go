package batch_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/hkpcalc/internal/batch"
	"github.com/gyeh/hkpcalc/internal/db"
	"github.com/gyeh/hkpcalc/internal/labpricing"
	"github.com/gyeh/hkpcalc/internal/model"
)

const (
	testPort     = 15433
	testDB       = "hkpcalctest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var (
	testDSN string
	pg      *embeddedpostgres.EmbeddedPostgres
)

// TestMain starts an embedded Postgres only when HKPCALC_PG_TESTS=1. The
// database tests skip otherwise; the file-only tests always run.
func TestMain(m *testing.M) {
	if os.Getenv("HKPCALC_PG_TESTS") != "1" {
		os.Exit(m.Run())
	}

	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	pg = embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30*time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}

	os.Exit(code)
}

// setupDB connects, drops the schemas and applies migrations.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if pg == nil {
		t.Skip("set HKPCALC_PG_TESTS=1 to run database tests")
	}
	ctx := context.Background()

	pool, err := db.NewPool(ctx, testDSN, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	for _, schema := range []string{"quote", "lab"} {
		_, err := pool.Exec(ctx, fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schema))
		require.NoError(t, err, "drop schema %s", schema)
	}
	require.NoError(t, db.ApplyMigrations(ctx, pool, zerolog.Nop()))
	return pool
}

func TestMigrations_Idempotent(t *testing.T) {
	pool := setupDB(t)
	require.NoError(t, db.ApplyMigrations(context.Background(), pool, zerolog.Nop()))
}

func sampleLab() *labpricing.Config {
	price := decimal.RequireFromString("230.00")
	rf := decimal.RequireFromString("1.30")
	off := false
	return &labpricing.Config{
		LabID:               uuid.MustParse("6f1c1f0e-8d1a-4c52-9d0e-3f7a2b1c9e11"),
		Name:                "Dentallabor Nord",
		PointValue:          decimal.RequireFromString("1.0000"),
		DefaultRegionFactor: decimal.RequireFromString("1.10"),
		MaterialTypes: map[model.MaterialTier]string{
			model.MaterialBaseMetal: "NEM",
			model.MaterialCeramic:   "Zirkon",
		},
		Materials: []labpricing.Material{
			{Indication: model.CategoryCrown, MaterialType: "NEM", Name: "CoCr", BasePrice: decimal.RequireFromString("12.50"), SurchargePercent: decimal.Zero, BaseMaterial: true},
			{Indication: model.CategoryCrown, MaterialType: "Zirkon", Name: "Zirkonoxid", BasePrice: decimal.RequireFromString("45.00"), SurchargePercent: decimal.RequireFromString("20.00")},
		},
		Overrides: map[string]labpricing.PositionOverride{
			"1021": {CustomPrice: &price},
			"1602": {Enabled: &off},
			"2041": {RegionFactor: &rf},
		},
	}
}

func TestLabPricing_RoundTrip(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	want := sampleLab()

	require.NoError(t, db.SaveLabPricing(ctx, pool, want))
	// saving twice replaces rather than duplicates
	require.NoError(t, db.SaveLabPricing(ctx, pool, want))

	got, err := db.LoadLabPricing(ctx, pool, want.LabID)
	require.NoError(t, err)

	assert.Equal(t, want.Name, got.Name)
	assert.True(t, want.PointValue.Equal(got.PointValue))
	assert.True(t, want.DefaultRegionFactor.Equal(got.DefaultRegionFactor))
	assert.Equal(t, want.MaterialTypes, got.MaterialTypes)
	require.Len(t, got.Materials, 2)
	assert.Equal(t, "CoCr", got.Materials[0].Name)
	assert.True(t, got.Materials[0].BaseMaterial)
	assert.True(t, got.Materials[1].SurchargePercent.Equal(decimal.NewFromInt(20)))

	require.Len(t, got.Overrides, 3)
	assert.True(t, got.Overrides["1021"].CustomPrice.Equal(decimal.NewFromInt(230)))
	assert.Nil(t, got.Overrides["1021"].Enabled)
	assert.False(t, got.Overrides["1602"].IsEnabled())
	assert.True(t, got.Overrides["2041"].RegionFactor.Equal(decimal.RequireFromString("1.3")))
}

func TestLabPricing_NotFound(t *testing.T) {
	pool := setupDB(t)
	_, err := db.LoadLabPricing(context.Background(), pool, uuid.New())
	assert.ErrorIs(t, err, db.ErrLabNotFound)
}

func TestRun_EndToEnd(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	require.NoError(t, db.SaveLabPricing(ctx, pool, sampleLab()))

	lab, err := db.LoadLabPricing(ctx, pool, sampleLab().LabID)
	require.NoError(t, err)
	engine := testEngine()
	engine.Lab = lab

	path := writeFixture(t, fixtureRows)
	opts := batch.Options{FilePath: path, LabID: &lab.LabID, Tiers: model.AllCoverageTiers}

	summary, err := batch.Run(ctx, pool, zerolog.Nop(), engine, opts)
	require.NoError(t, err)
	assert.Equal(t, int64(4), summary.ChartsRead)
	assert.Equal(t, int64(2), summary.ChartsRejected)
	assert.Equal(t, int64(6), summary.PlansWritten)

	var status string
	var plans int64
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT status, plans_written FROM quote.batches WHERE batch_id = $1", uuid.MustParse(summary.BatchID),
	).Scan(&status, &plans))
	assert.Equal(t, "complete", status)
	assert.Equal(t, int64(6), plans)

	// every stored row keeps portion == estimate - subsidy in cents, within
	// one cent of rounding
	rows, err := pool.Query(ctx, `
		SELECT chart_id, coverage_tier, estimated_cost_cents, subsidy_cents, patient_portion_cents, lab_total_cents
		FROM quote.plan_summaries WHERE batch_id = $1`, uuid.MustParse(summary.BatchID))
	require.NoError(t, err)
	defer rows.Close()
	n := 0
	for rows.Next() {
		var chartID, tier string
		var est, sub, portion int64
		var lab *int64
		require.NoError(t, rows.Scan(&chartID, &tier, &est, &sub, &portion, &lab))
		diff := est - sub - portion
		assert.True(t, diff >= -1 && diff <= 1, "%s/%s: %d - %d != %d", chartID, tier, est, sub, portion)
		assert.NotNil(t, lab)
		if chartID == "P-001" {
			assert.Equal(t, int64(57500), sub)
		}
		n++
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, 6, n)
}

func TestRun_Idempotency(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	path := writeFixture(t, fixtureRows)
	opts := batch.Options{FilePath: path, Tiers: model.AllCoverageTiers}

	first, err := batch.Run(ctx, pool, zerolog.Nop(), testEngine(), opts)
	require.NoError(t, err)

	second, err := batch.Run(ctx, pool, zerolog.Nop(), testEngine(), opts)
	require.NoError(t, err)
	assert.Equal(t, first.BatchID, second.BatchID)
	assert.Zero(t, second.PlansWritten)

	opts.Force = true
	third, err := batch.Run(ctx, pool, zerolog.Nop(), testEngine(), opts)
	require.NoError(t, err)
	assert.NotEqual(t, first.BatchID, third.BatchID)

	var total int64
	require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM quote.plan_summaries").Scan(&total))
	assert.Equal(t, int64(12), total)
}

func TestPreflight_RegistersPendingBatch(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	path := writeFixture(t, fixtureRows)

	pf, err := batch.Preflight(ctx, pool, zerolog.Nop(), path, nil, model.AllCoverageTiers, false)
	require.NoError(t, err)
	assert.False(t, pf.AlreadyQuoted)
	assert.Equal(t, int64(len(fixtureRows)), pf.NumRows)

	var status, sha string
	var noLab bool
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT status, source_file_sha256, lab_id IS NULL FROM quote.batches WHERE batch_id = $1", pf.BatchID,
	).Scan(&status, &sha, &noLab))
	assert.Equal(t, "pending", status)
	assert.Equal(t, pf.FileSHA256, sha)
	assert.True(t, noLab)

	// a pending batch does not count as quoted
	again, err := batch.Preflight(ctx, pool, zerolog.Nop(), path, nil, model.AllCoverageTiers, false)
	require.NoError(t, err)
	assert.False(t, again.AlreadyQuoted)
	assert.NotEqual(t, pf.BatchID, again.BatchID)
}

func TestPreflight_QuotedPerLab(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	path := writeFixture(t, fixtureRows)

	first, err := batch.Run(ctx, pool, zerolog.Nop(), testEngine(), batch.Options{FilePath: path, Tiers: model.AllCoverageTiers})
	require.NoError(t, err)

	labID := uuid.New()
	pf, err := batch.Preflight(ctx, pool, zerolog.Nop(), path, &labID, model.AllCoverageTiers, false)
	require.NoError(t, err)
	assert.False(t, pf.AlreadyQuoted, "another lab needs its own quote")
	assert.NotEqual(t, first.BatchID, pf.BatchID.String())
}

func TestPreflight_QuotedPerTierSet(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	path := writeFixture(t, fixtureRows)

	first, err := batch.Run(ctx, pool, zerolog.Nop(), testEngine(),
		batch.Options{FilePath: path, Tiers: []model.CoverageTier{model.TierStandard}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.PlansWritten)

	same, err := batch.Preflight(ctx, pool, zerolog.Nop(), path, nil, []model.CoverageTier{model.TierStandard}, false)
	require.NoError(t, err)
	assert.True(t, same.AlreadyQuoted)
	assert.Equal(t, first.BatchID, same.BatchID.String())

	full, err := batch.Run(ctx, pool, zerolog.Nop(), testEngine(),
		batch.Options{FilePath: path, Tiers: model.AllCoverageTiers})
	require.NoError(t, err)
	assert.NotEqual(t, first.BatchID, full.BatchID)
	assert.Equal(t, int64(6), full.PlansWritten)
}

func TestUpdateStatus(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	pf, err := batch.Preflight(ctx, pool, zerolog.Nop(), writeFixture(t, fixtureRows), nil, model.AllCoverageTiers, false)
	require.NoError(t, err)

	require.NoError(t, batch.UpdateStatus(ctx, pool, pf.BatchID, "failed"))
	var status string
	require.NoError(t, pool.QueryRow(ctx, "SELECT status FROM quote.batches WHERE batch_id = $1", pf.BatchID).Scan(&status))
	assert.Equal(t, "failed", status)

	assert.Error(t, batch.UpdateStatus(ctx, pool, pf.BatchID, "bogus"))
}

func TestCleanup(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	summary, err := batch.Run(ctx, pool, zerolog.Nop(), testEngine(),
		batch.Options{FilePath: writeFixture(t, fixtureRows), Tiers: model.AllCoverageTiers})
	require.NoError(t, err)
	batchID := uuid.MustParse(summary.BatchID)

	require.NoError(t, batch.Cleanup(ctx, pool, zerolog.Nop(), batchID))
	var n int64
	require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM quote.plan_summaries WHERE batch_id = $1", batchID).Scan(&n))
	assert.Zero(t, n)
}

func TestChannelSource(t *testing.T) {
	ch := make(chan *model.PlanSummaryRow, 2)
	ch <- &model.PlanSummaryRow{ChartID: "a"}
	ch <- &model.PlanSummaryRow{ChartID: "b"}
	close(ch)

	src := db.NewChannelSource(ch)
	var got []string
	for src.Next() {
		vals, err := src.Values()
		require.NoError(t, err)
		require.Len(t, vals, len(model.PlanSummaryColumns()))
		got = append(got, vals[1].(string))
	}
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, int64(2), src.Rows())
	assert.NoError(t, src.Err())

	src.Fail(assert.AnError)
	assert.ErrorIs(t, src.Err(), assert.AnError)
}
