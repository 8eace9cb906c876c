// Package catalog holds the fee-schedule position table and the per-tier
// mapping from generator steps to position codes. A Catalog is built once
// and only read afterwards; callers inject it into every computation.
package catalog

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gyeh/hkpcalc/internal/model"
)

// Step is an abstract billing step emitted by the position generator. Each
// material tier maps a step to a concrete catalog code.
type Step string

const (
	StepImpression          Step = "impression"
	StepBiteRegistration    Step = "bite_registration"
	StepPreparation         Step = "preparation"
	StepFullCrown           Step = "full_crown"
	StepBridgePontic        Step = "bridge_pontic"
	StepImplantInsertion    Step = "implant_insertion"
	StepImplantCrown        Step = "implant_crown"
	StepTryIn               Step = "try_in"
	StepInsertion           Step = "insertion"
	StepAdhesiveCementation Step = "adhesive_cementation"

	StepLabModel           Step = "lab_model"
	StepLabCrown           Step = "lab_crown"
	StepLabPontic          Step = "lab_pontic"
	StepLabImplantAbutment Step = "lab_implant_abutment"
	StepLabImplantCrown    Step = "lab_implant_crown"
)

// Catalog is an immutable position table.
type Catalog struct {
	positions map[string]model.Position
	steps     map[model.MaterialTier]map[Step]string

	// TimePointValue is the fixed euro value of one time-based point.
	TimePointValue decimal.Decimal
	// ValuePointValue is the euro value of one value-based point before
	// the adjustable factor is applied.
	ValuePointValue decimal.Decimal
}

// New builds a catalog. Duplicate position codes are rejected; step
// mappings are not checked here so that gaps surface as ConfigErrors at
// the point of use.
func New(positions []model.Position, steps map[model.MaterialTier]map[Step]string, timePointValue, valuePointValue decimal.Decimal) (*Catalog, error) {
	c := &Catalog{
		positions:       make(map[string]model.Position, len(positions)),
		steps:           make(map[model.MaterialTier]map[Step]string, len(steps)),
		TimePointValue:  timePointValue,
		ValuePointValue: valuePointValue,
	}
	for _, p := range positions {
		if _, dup := c.positions[p.Code]; dup {
			return nil, fmt.Errorf("duplicate position code %q", p.Code)
		}
		if p.RegionMultiplier.IsZero() {
			p.RegionMultiplier = decimal.NewFromInt(1)
		}
		if p.RegionMultiplier.IsNegative() || p.Points.IsNegative() || p.FlatPrice.IsNegative() {
			return nil, fmt.Errorf("position %q has a negative price component", p.Code)
		}
		c.positions[p.Code] = p
	}
	for tier, m := range steps {
		cp := make(map[Step]string, len(m))
		for step, code := range m {
			cp[step] = code
		}
		c.steps[tier] = cp
	}
	return c, nil
}

// Lookup returns the position for code.
func (c *Catalog) Lookup(code string) (model.Position, bool) {
	p, ok := c.positions[code]
	return p, ok
}

// Resolve returns the position a tier uses for step. A missing mapping or
// a mapped code absent from the table is a ConfigError: omitting the line
// would under-bill.
func (c *Catalog) Resolve(tier model.MaterialTier, step Step) (model.Position, error) {
	code, ok := c.steps[tier][step]
	if !ok {
		return model.Position{}, &model.ConfigError{Code: string(step), Tier: tier, Err: model.ErrMissingCatalogEntry}
	}
	p, ok := c.positions[code]
	if !ok {
		return model.Position{}, &model.ConfigError{Code: code, Tier: tier, Err: model.ErrMissingCatalogEntry}
	}
	return p, nil
}

// Positions returns every position ordered by code.
func (c *Catalog) Positions() []model.Position {
	out := make([]model.Position, 0, len(c.positions))
	for _, p := range c.positions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
