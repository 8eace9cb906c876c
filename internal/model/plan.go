package model

import "github.com/shopspring/decimal"

// TreatmentPlan is one proposed plan for a (chart, coverage tier) pair.
// PatientPortion always equals EstimatedCost minus StatutorySubsidy.
type TreatmentPlan struct {
	Name                string             `json:"name"`
	CoverageTier        CoverageTier       `json:"coverage_tier"`
	MaterialType        MaterialTier       `json:"material_type"`
	FindingChart        FindingChart       `json:"finding_chart"`
	StandardOfCare      TreatmentCodeChart `json:"standard_of_care"`
	Therapy             TreatmentCodeChart `json:"therapy"`
	Description         string             `json:"description"`
	EstimatedCost       decimal.Decimal    `json:"estimated_cost"`
	StatutorySubsidy    decimal.Decimal    `json:"statutory_subsidy"`
	PatientPortion      decimal.Decimal    `json:"patient_portion"`
	Pros                []string           `json:"pros"`
	Cons                []string           `json:"cons"`
	Notes               []string           `json:"notes,omitempty"`
	MaintenanceInterval string             `json:"maintenance_interval"`
	ExpectedLifespan    string             `json:"expected_lifespan"`
	Costs               CostBreakdown      `json:"costs"`
	LabCosts            *CostBreakdown     `json:"lab_costs,omitempty"`
}
