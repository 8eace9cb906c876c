// Package positions expands a finding chart into ordered billable lines.
package positions

import (
	"github.com/gyeh/hkpcalc/internal/catalog"
	"github.com/gyeh/hkpcalc/internal/model"
)

var (
	prologue = []catalog.Step{catalog.StepImpression, catalog.StepBiteRegistration}
	epilogue = []catalog.Step{catalog.StepTryIn, catalog.StepInsertion, catalog.StepAdhesiveCementation}
)

// Generate returns the treatment lines for a chart under a material tier:
// the prologue, then per tooth in ascending order, then the epilogue. The
// order is stable so repeated runs produce identical invoices.
//
// Carious teeth get a preparation and a full crown. Missing teeth get a
// bridge pontic, or an implant with an implant-supported crown on the
// titanium tier.
func Generate(cat *catalog.Catalog, chart model.FindingChart, tier model.MaterialTier) ([]model.PositionLine, error) {
	b := builder{cat: cat, tier: tier}

	for _, s := range prologue {
		b.add(s, 0)
	}
	for _, t := range chart.Teeth() {
		code, _ := chart.Get(t)
		switch {
		case code.NeedsCrown():
			b.add(catalog.StepPreparation, t)
			b.add(catalog.StepFullCrown, t)
		case code == model.FindingMissing && tier == model.MaterialTitanium:
			b.add(catalog.StepImplantInsertion, t)
			b.add(catalog.StepImplantCrown, t)
		case code == model.FindingMissing:
			b.add(catalog.StepBridgePontic, t)
		}
	}
	for _, s := range epilogue {
		b.add(s, 0)
	}
	return b.result()
}

// GenerateLab returns the dental-lab lines for the same chart: one model
// per case, a crown per carious tooth, and a pontic (or implant abutment
// and implant crown) per missing tooth.
func GenerateLab(cat *catalog.Catalog, chart model.FindingChart, tier model.MaterialTier) ([]model.PositionLine, error) {
	b := builder{cat: cat, tier: tier}

	b.add(catalog.StepLabModel, 0)
	for _, t := range chart.Teeth() {
		code, _ := chart.Get(t)
		switch {
		case code.NeedsCrown():
			b.add(catalog.StepLabCrown, t)
		case code == model.FindingMissing && tier == model.MaterialTitanium:
			b.add(catalog.StepLabImplantAbutment, t)
			b.add(catalog.StepLabImplantCrown, t)
		case code == model.FindingMissing:
			b.add(catalog.StepLabPontic, t)
		}
	}
	return b.result()
}

// builder stops at the first unresolved step.
type builder struct {
	cat   *catalog.Catalog
	tier  model.MaterialTier
	lines []model.PositionLine
	err   error
}

func (b *builder) add(step catalog.Step, tooth model.ToothID) {
	if b.err != nil {
		return
	}
	p, err := b.cat.Resolve(b.tier, step)
	if err != nil {
		b.err = err
		return
	}
	b.lines = append(b.lines, model.PositionLine{Position: p, Tooth: tooth, Quantity: 1})
}

func (b *builder) result() ([]model.PositionLine, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.lines, nil
}
