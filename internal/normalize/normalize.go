package normalize

import (
	"github.com/google/uuid"

	"github.com/gyeh/hkpcalc/internal/model"
)

// Chart builds a FindingChart from raw tooth/finding strings as they come
// from chart files or form input. Only surrounding whitespace and letter
// case are normalized; any other malformed tooth or finding is an error.
func Chart(raw map[string]string) (model.FindingChart, error) {
	teeth := make(map[model.ToothID]model.FindingCode, len(raw))
	for rawTooth, rawCode := range raw {
		num, ok := ToothNumber(rawTooth)
		if !ok {
			return model.FindingChart{}, &model.ValidationError{Field: "tooth", Value: rawTooth, Err: model.ErrInvalidTooth}
		}
		tooth, err := model.ParseToothID(num)
		if err != nil {
			return model.FindingChart{}, &model.ValidationError{Field: "tooth", Value: rawTooth, Err: model.ErrInvalidTooth}
		}
		code, err := model.ParseFindingCode(FindingCode(rawCode))
		if err != nil {
			return model.FindingChart{}, &model.ValidationError{Field: "finding", Value: rawCode, Err: model.ErrUnknownFinding}
		}
		if _, dup := teeth[tooth]; dup {
			return model.FindingChart{}, &model.ValidationError{Field: "tooth", Value: rawTooth, Err: model.ErrInvalidTooth}
		}
		teeth[tooth] = code
	}
	return model.NewFindingChart(teeth)
}

// ToSummaryRow converts a computed plan into a DB-ready summary row.
func ToSummaryRow(plan *model.TreatmentPlan, batchID uuid.UUID, chartID string) *model.PlanSummaryRow {
	r := &model.PlanSummaryRow{
		BatchID:       batchID,
		ChartID:       chartID,
		ChartHash:     ChartHash(plan.FindingChart),
		CoverageTier:  string(plan.CoverageTier),
		MaterialType:  string(plan.MaterialType),
		PositionCount: int32(len(plan.Costs.Positions)),

		TimeBasedCents:      ToCents(plan.Costs.TotalTimeBased),
		ValueBasedCents:     ToCents(plan.Costs.TotalValueBased),
		EstimatedCostCents:  ToCents(plan.EstimatedCost),
		SubsidyCents:        ToCents(plan.StatutorySubsidy),
		PatientPortionCents: ToCents(plan.PatientPortion),
	}
	if plan.LabCosts != nil {
		r.LabTotalCents = OptCents(&plan.LabCosts.Total)
	}
	return r
}
