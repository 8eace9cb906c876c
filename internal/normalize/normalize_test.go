package normalize

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gyeh/hkpcalc/internal/model"
)

func TestChart_NormalizesInput(t *testing.T) {
	chart, err := Chart(map[string]string{" 14": " C ", "15\t": "KW"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chart.Len() != 2 {
		t.Fatalf("expected 2 teeth, got %d", chart.Len())
	}
	if got, _ := chart.Get(14); got != model.FindingCarious {
		t.Errorf("tooth 14: expected c, got %q", got)
	}
	if got, _ := chart.Get(15); got != model.FindingCrownRenew {
		t.Errorf("tooth 15: expected kw, got %q", got)
	}
}

func TestChart_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]string
		want error
	}{
		{"tooth out of range", map[string]string{"19": "c"}, model.ErrInvalidTooth},
		{"tooth without digits", map[string]string{"upper left": "c"}, model.ErrInvalidTooth},
		{"unknown finding", map[string]string{"14": "zz"}, model.ErrUnknownFinding},
		{"same tooth twice", map[string]string{"14": "c", " 14 ": "f"}, model.ErrInvalidTooth},
		{"signed tooth", map[string]string{"-14": "c"}, model.ErrInvalidTooth},
		{"letter inside tooth", map[string]string{"1x4": "c"}, model.ErrInvalidTooth},
		{"separated digits", map[string]string{"tooth 2, 1": "f"}, model.ErrInvalidTooth},
		{"dotted tooth", map[string]string{"1.4": "c"}, model.ErrInvalidTooth},
		{"prefixed tooth", map[string]string{"Zahn 14": "c"}, model.ErrInvalidTooth},
		{"single digit", map[string]string{"4": "c"}, model.ErrInvalidTooth},
		{"punctuated finding", map[string]string{"14": "f!"}, model.ErrUnknownFinding},
		{"hyphenated finding", map[string]string{"15": "K-W"}, model.ErrUnknownFinding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Chart(tt.raw)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var ve *model.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *model.ValidationError, got %T", err)
			}
		})
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in    string
		round string
		cents int64
	}{
		{"591.1514", "591.15", 59115},
		{"1.005", "1.01", 101},
		{"-0.005", "-0.01", -1},
		{"640.5975190", "640.6", 64060},
	}
	for _, tt := range tests {
		v := decimal.RequireFromString(tt.in)
		if got := RoundCents(v); !got.Equal(decimal.RequireFromString(tt.round)) {
			t.Errorf("RoundCents(%s) = %s, want %s", tt.in, got, tt.round)
		}
		if got := ToCents(v); got != tt.cents {
			t.Errorf("ToCents(%s) = %d, want %d", tt.in, got, tt.cents)
		}
	}
	if OptCents(nil) != nil {
		t.Error("OptCents(nil) should be nil")
	}
}

func TestChartHash_Stable(t *testing.T) {
	a, err := Chart(map[string]string{"13": "c", "14": "f", "15": "c"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Chart(map[string]string{"15": "C", " 13": "c", "14": "F "})
	if err != nil {
		t.Fatal(err)
	}
	c, err := Chart(map[string]string{"13": "c", "14": "f", "15": "cr"})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(ChartHash(a), ChartHash(b)) {
		t.Error("equal charts should hash equally")
	}
	if bytes.Equal(ChartHash(a), ChartHash(c)) {
		t.Error("different charts should hash differently")
	}
	if len(ChartHash(a)) != 32 {
		t.Errorf("expected 32-byte hash, got %d", len(ChartHash(a)))
	}
}

func TestKey(t *testing.T) {
	if got := Key("  Zirkon\t Oxid "); got != "zirkon oxid" {
		t.Errorf("Key = %q", got)
	}
}

func TestToSummaryRow(t *testing.T) {
	chart, err := Chart(map[string]string{"16": "c"})
	if err != nil {
		t.Fatal(err)
	}
	lab := model.CostBreakdown{Total: decimal.RequireFromString("269.80")}
	plan := &model.TreatmentPlan{
		CoverageTier:     model.TierStandard,
		MaterialType:     model.MaterialBaseMetal,
		FindingChart:     chart,
		EstimatedCost:    decimal.RequireFromString("591.1514"),
		StatutorySubsidy: decimal.RequireFromString("575"),
		PatientPortion:   decimal.RequireFromString("16.1514"),
		Costs: model.CostBreakdown{
			Positions:       make([]model.PricedPosition, 3),
			TotalTimeBased:  decimal.RequireFromString("100.004"),
			TotalValueBased: decimal.RequireFromString("221.3474"),
		},
		LabCosts: &lab,
	}
	batchID := uuid.New()

	r := ToSummaryRow(plan, batchID, "P-001")
	if r.BatchID != batchID || r.ChartID != "P-001" {
		t.Errorf("identity not carried: %+v", r)
	}
	if r.CoverageTier != "standard" || r.MaterialType != string(model.MaterialBaseMetal) {
		t.Errorf("tier = %q material = %q", r.CoverageTier, r.MaterialType)
	}
	if r.PositionCount != 3 {
		t.Errorf("expected 3 positions, got %d", r.PositionCount)
	}
	if r.EstimatedCostCents != 59115 || r.SubsidyCents != 57500 || r.PatientPortionCents != 1615 {
		t.Errorf("cents: estimated=%d subsidy=%d portion=%d",
			r.EstimatedCostCents, r.SubsidyCents, r.PatientPortionCents)
	}
	if r.TimeBasedCents != 10000 || r.ValueBasedCents != 22135 {
		t.Errorf("schedule cents: time=%d value=%d", r.TimeBasedCents, r.ValueBasedCents)
	}
	if r.LabTotalCents == nil || *r.LabTotalCents != 26980 {
		t.Errorf("lab cents: %v", r.LabTotalCents)
	}
	if !bytes.Equal(r.ChartHash, ChartHash(chart)) {
		t.Error("chart hash mismatch")
	}
}
