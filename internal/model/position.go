package model

import "github.com/shopspring/decimal"

// FeeSchedule identifies which of the two parallel fee catalogs a position
// belongs to.
type FeeSchedule string

const (
	// ScheduleTimeBased positions (BEMA/BEL) are priced at a fixed point value.
	ScheduleTimeBased FeeSchedule = "BEMA/BEL"
	// ScheduleValueBased positions (GOZ/BEB) are priced at point value times
	// an adjustable factor.
	ScheduleValueBased FeeSchedule = "GOZ/BEB"
)

// Category groups positions; lab categories double as material indications.
type Category string

const (
	CategoryDiagnostics Category = "diagnostics"
	CategoryPreparation Category = "preparation"
	CategoryCrown       Category = "crown"
	CategoryBridge      Category = "bridge"
	CategoryImplant     Category = "implant"
	CategoryInsertion   Category = "insertion"
	CategoryLabModel    Category = "lab_model"
)

// Position is a read-only catalog entry. Exactly one of Points or
// FlatPrice is meaningful, selected by Flat.
type Position struct {
	Code             string          `json:"code" yaml:"code"`
	Description      string          `json:"description" yaml:"description"`
	Schedule         FeeSchedule     `json:"schedule" yaml:"schedule"`
	Category         Category        `json:"category" yaml:"category"`
	Points           decimal.Decimal `json:"points" yaml:"points"`
	FlatPrice        decimal.Decimal `json:"flat_price" yaml:"flat_price"`
	Flat             bool            `json:"flat" yaml:"flat"`
	RegionMultiplier decimal.Decimal `json:"region_multiplier" yaml:"region_multiplier"`
}

// PositionLine is one generated billable line before pricing. Tooth is
// zero for chart-level lines such as the impression.
type PositionLine struct {
	Position
	Tooth    ToothID `json:"tooth,omitempty"`
	Quantity int     `json:"quantity"`
}

// PricedPosition is a PositionLine with its computed price.
type PricedPosition struct {
	PositionLine
	UnitPrice decimal.Decimal `json:"unit_price"`
	Factor    decimal.Decimal `json:"factor"`
	Amount    decimal.Decimal `json:"amount"`
}

// MaterialCost is one priced lab material line.
type MaterialCost struct {
	Name             string          `json:"name"`
	Indication       Category        `json:"indication"`
	BasePrice        decimal.Decimal `json:"base_price"`
	SurchargePercent decimal.Decimal `json:"surcharge_percent"`
	BaseMaterial     bool            `json:"base_material"`
	Quantity         int             `json:"quantity"`
	Amount           decimal.Decimal `json:"amount"`
}

// CostBreakdown is computed fresh per request and not modified afterwards;
// what-if recomputation calls the aggregator again.
type CostBreakdown struct {
	Positions       []PricedPosition `json:"positions"`
	TotalTimeBased  decimal.Decimal  `json:"total_time_based"`
	TotalValueBased decimal.Decimal  `json:"total_value_based"`
	Materials       []MaterialCost   `json:"materials"`
	// Adjustment is the region-factor delta already contained in the
	// position amounts, reported separately for display.
	Adjustment decimal.Decimal `json:"adjustment"`
	Total      decimal.Decimal `json:"total"`
}
