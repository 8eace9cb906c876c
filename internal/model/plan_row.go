package model

import "github.com/google/uuid"

// PlanSummaryRow is the DB-ready summary of one computed plan.
// Money values are stored as int64 cents.
type PlanSummaryRow struct {
	BatchID       uuid.UUID
	ChartID       string
	ChartHash     []byte
	CoverageTier  string
	MaterialType  string
	PositionCount int32

	TimeBasedCents      int64
	ValueBasedCents     int64
	LabTotalCents       *int64
	EstimatedCostCents  int64
	SubsidyCents        int64
	PatientPortionCents int64
}

// PlanSummaryColumns returns the ordered column names for COPY into
// quote.plan_summaries.
func PlanSummaryColumns() []string {
	return []string{
		"batch_id",
		"chart_id",
		"chart_hash",
		"coverage_tier",
		"material_type",
		"position_count",
		"time_based_cents",
		"value_based_cents",
		"lab_total_cents",
		"estimated_cost_cents",
		"subsidy_cents",
		"patient_portion_cents",
	}
}

// CopyValues returns the row values in the same order as PlanSummaryColumns().
func (r *PlanSummaryRow) CopyValues() []any {
	return []any{
		r.BatchID,
		r.ChartID,
		r.ChartHash,
		r.CoverageTier,
		r.MaterialType,
		r.PositionCount,
		r.TimeBasedCents,
		r.ValueBasedCents,
		r.LabTotalCents,
		r.EstimatedCostCents,
		r.SubsidyCents,
		r.PatientPortionCents,
	}
}
