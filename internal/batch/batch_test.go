package batch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/hkpcalc/internal/batch"
	"github.com/gyeh/hkpcalc/internal/catalog"
	"github.com/gyeh/hkpcalc/internal/model"
	"github.com/gyeh/hkpcalc/internal/treatment"
)

// fixtureRows is four charts: two valid, one with an unknown finding and
// one with an unknown insurance.
var fixtureRows = []model.FindingRow{
	{ChartID: "P-001", Tooth: 13, Finding: "c", BonusTenureYears: 10, Insurance: "statutory"},
	{ChartID: "P-001", Tooth: 14, Finding: "f"},
	{ChartID: "P-001", Tooth: 15, Finding: "c"},
	{ChartID: "P-002", Tooth: 11, Finding: "f", BonusTenureYears: 5, AdditionalInsurance: true},
	{ChartID: "P-003", Tooth: 21, Finding: "q"},
	{ChartID: "P-004", Tooth: 36, Finding: "x", Insurance: "self-pay"},
}

func writeFixture(t *testing.T, rows []model.FindingRow) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "charts.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := parquet.NewGenericWriter[model.FindingRow](f)
	_, err = w.Write(rows)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}

func testEngine() *treatment.Engine {
	return &treatment.Engine{Catalog: catalog.Default(), Log: zerolog.Nop()}
}

func TestDryRun(t *testing.T) {
	path := writeFixture(t, fixtureRows)

	res, err := batch.DryRun(context.Background(), zerolog.Nop(), path, testEngine(), model.AllCoverageTiers)
	require.NoError(t, err)

	assert.Equal(t, int64(6), res.RowsRead)
	assert.Equal(t, int64(4), res.ChartsRead)
	assert.Equal(t, int64(2), res.ChartsRejected)
	assert.Equal(t, int64(6), res.PlansWritten)
	for _, tier := range model.AllCoverageTiers {
		assert.Equal(t, int64(2), res.PlansByTier[tier], tier)
	}
}

func TestDryRun_TierSubset(t *testing.T) {
	path := writeFixture(t, fixtureRows)

	res, err := batch.DryRun(context.Background(), zerolog.Nop(), path, testEngine(), []model.CoverageTier{model.TierDifferentType})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.PlansWritten)
	assert.Zero(t, res.PlansByTier[model.TierStandard])
}

func TestDryRun_CatalogGapAborts(t *testing.T) {
	steps := catalog.DefaultSteps()
	delete(steps[model.MaterialBaseMetal], catalog.StepBridgePontic)
	cat, err := catalog.New(catalog.DefaultPositions(), steps, catalog.Default().TimePointValue, catalog.Default().ValuePointValue)
	require.NoError(t, err)

	path := writeFixture(t, fixtureRows)
	_, err = batch.DryRun(context.Background(), zerolog.Nop(), path, &treatment.Engine{Catalog: cat, Log: zerolog.Nop()}, model.AllCoverageTiers)
	assert.ErrorIs(t, err, model.ErrMissingCatalogEntry)
}

func TestInspect(t *testing.T) {
	path := writeFixture(t, fixtureRows)

	pf, err := batch.Inspect(zerolog.Nop(), path)
	require.NoError(t, err)
	assert.Equal(t, int64(6), pf.NumRows)
	assert.Len(t, pf.FileSHA256, 64)
	assert.False(t, pf.AlreadyQuoted)

	_, err = batch.Inspect(zerolog.Nop(), filepath.Join(t.TempDir(), "missing.parquet"))
	assert.Error(t, err)
}

func TestInspect_RejectsForeignSchema(t *testing.T) {
	type other struct {
		PatientID string `parquet:"patient_id"`
	}
	path := filepath.Join(t.TempDir(), "other.parquet")
	require.NoError(t, parquet.WriteFile(path, []other{{PatientID: "x"}}))

	_, err := batch.Inspect(zerolog.Nop(), path)
	assert.Error(t, err)
}
