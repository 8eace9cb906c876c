// Package treatment assembles the three parallel treatment plans for a
// finding chart from the subsidy, standard-of-care, position and cost
// components.
package treatment

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gyeh/hkpcalc/internal/catalog"
	"github.com/gyeh/hkpcalc/internal/costs"
	"github.com/gyeh/hkpcalc/internal/labpricing"
	"github.com/gyeh/hkpcalc/internal/model"
	"github.com/gyeh/hkpcalc/internal/positions"
	"github.com/gyeh/hkpcalc/internal/standardcare"
	"github.com/gyeh/hkpcalc/internal/subsidy"
)

const (
	noteAdditionalInsurance = "Additional private insurance on file: the patient portion may be partly reimbursed under its tariff."
	notePrivate             = "Private patient: no statutory fixed subsidy applies."
)

// Engine holds the read-only inputs shared by every computation. Lab is
// optional; without it plans carry no lab breakdown.
type Engine struct {
	Catalog *catalog.Catalog
	Lab     *labpricing.Config
	Log     zerolog.Logger
}

// Request is one chart to quote.
type Request struct {
	Chart                  model.FindingChart
	Insurance              model.InsuranceType
	BonusTenureYears       int
	HasAdditionalInsurance bool
}

// basis is the per-request part shared by all tiers.
type basis struct {
	subsidy decimal.Decimal
	soc     model.TreatmentCodeChart
}

func (e *Engine) prepare(req Request) (basis, error) {
	if e.Catalog == nil {
		return basis{}, errors.New("treatment engine has no catalog")
	}
	amount, err := subsidy.ComputeFor(req.Chart, req.BonusTenureYears, req.Insurance, req.HasAdditionalInsurance)
	if err != nil {
		return basis{}, err
	}
	return basis{subsidy: amount, soc: standardcare.Derive(req.Chart)}, nil
}

// Options computes one plan per coverage tier. All tiers are computed;
// ordering for display is up to the caller.
func (e *Engine) Options(req Request) (map[model.CoverageTier][]model.TreatmentPlan, error) {
	b, err := e.prepare(req)
	if err != nil {
		return nil, err
	}

	out := make(map[model.CoverageTier][]model.TreatmentPlan, len(model.AllCoverageTiers))
	for _, tier := range model.AllCoverageTiers {
		p := profiles[tier]
		plan, err := e.plan(req, b, tier, p.factor)
		if err != nil {
			return nil, fmt.Errorf("tier %s: %w", tier, err)
		}
		out[tier] = []model.TreatmentPlan{plan}
	}
	return out, nil
}

// PlanAt computes a single tier's plan at a caller-chosen factor. It is the
// what-if path: changing the factor means calling again, never patching a
// returned plan.
func (e *Engine) PlanAt(req Request, tier model.CoverageTier, factor costs.Factor) (model.TreatmentPlan, error) {
	if _, ok := profiles[tier]; !ok {
		return model.TreatmentPlan{}, &model.ValidationError{Field: "tier", Value: string(tier), Err: model.ErrUnknownTier}
	}
	b, err := e.prepare(req)
	if err != nil {
		return model.TreatmentPlan{}, err
	}
	return e.plan(req, b, tier, factor)
}

func (e *Engine) plan(req Request, b basis, tier model.CoverageTier, factor costs.Factor) (model.TreatmentPlan, error) {
	p := profiles[tier]
	material := tier.Material()

	lines, err := positions.Generate(e.Catalog, req.Chart, material)
	if err != nil {
		return model.TreatmentPlan{}, err
	}
	pv := costs.PointValues{TimeBased: e.Catalog.TimePointValue, ValueBased: e.Catalog.ValuePointValue}
	patient, err := costs.Patient(lines, factor, pv)
	if err != nil {
		return model.TreatmentPlan{}, err
	}
	estimated := patient.Total

	var lab *model.CostBreakdown
	if e.Lab != nil {
		labLines, err := positions.GenerateLab(e.Catalog, req.Chart, material)
		if err != nil {
			return model.TreatmentPlan{}, err
		}
		lb, err := costs.Lab(labLines, e.Lab, material, e.Log)
		if err != nil {
			return model.TreatmentPlan{}, err
		}
		lab = &lb
		estimated = estimated.Add(lb.Total)
	}

	var notes []string
	if req.Insurance == model.InsurancePrivate {
		notes = append(notes, notePrivate)
	}
	if req.HasAdditionalInsurance {
		notes = append(notes, noteAdditionalInsurance)
	}

	e.Log.Debug().
		Str("tier", string(tier)).
		Str("factor", factor.String()).
		Int("positions", len(lines)).
		Str("estimated", estimated.StringFixed(2)).
		Bool("lab", lab != nil).
		Msg("plan computed")

	return model.TreatmentPlan{
		Name:                p.name,
		CoverageTier:        tier,
		MaterialType:        material,
		FindingChart:        req.Chart,
		StandardOfCare:      b.soc,
		Therapy:             Retag(b.soc, req.Chart, tier),
		Description:         p.description,
		EstimatedCost:       estimated,
		StatutorySubsidy:    b.subsidy,
		PatientPortion:      estimated.Sub(b.subsidy),
		Pros:                append([]string(nil), p.pros...),
		Cons:                append([]string(nil), p.cons...),
		Notes:               notes,
		MaintenanceInterval: p.maintenance,
		ExpectedLifespan:    p.lifespan,
		Costs:               patient,
		LabCosts:            lab,
	}, nil
}
