package treatment

import (
	"github.com/gyeh/hkpcalc/internal/costs"
	"github.com/gyeh/hkpcalc/internal/model"
)

// profile is the static, per-tier part of a plan.
type profile struct {
	name        string
	factor      costs.Factor
	description string
	pros        []string
	cons        []string
	maintenance string
	lifespan    string
}

var profiles = map[model.CoverageTier]profile{
	model.TierStandard: {
		name:        "Regelversorgung",
		factor:      costs.MustFactor("2.3"),
		description: "Statutory standard of care: cast metal crowns and metal bridges billed under the time-based schedule.",
		pros: []string{
			"Lowest out-of-pocket cost",
			"Fully covered by the fixed subsidy schedule",
			"Proven, durable materials",
		},
		cons: []string{
			"Visible metal in the smile line",
			"Healthy neighbouring teeth are ground down for bridge abutments",
		},
		maintenance: "annual check-up",
		lifespan:    "10-15 years",
	},
	model.TierSameTypePremium: {
		name:        "Gleichartige Versorgung",
		factor:      costs.MustFactor("2.5"),
		description: "Same treatment type as the standard of care in tooth-coloured all-ceramic, billed under the value-based schedule.",
		pros: []string{
			"Natural, tooth-coloured appearance",
			"Metal-free and highly biocompatible",
			"Fixed subsidy still applies",
		},
		cons: []string{
			"Higher patient portion",
			"Ceramic can chip under heavy bite forces",
		},
		maintenance: "check-up every 6 months",
		lifespan:    "15-20 years",
	},
	model.TierDifferentType: {
		name:        "Andersartige Versorgung",
		factor:      costs.MustFactor("2.8"),
		description: "Different treatment type: gaps are closed with titanium implants carrying ceramic crowns instead of bridges.",
		pros: []string{
			"Neighbouring teeth stay untouched",
			"Preserves jawbone at the gap",
			"Closest to a natural tooth",
		},
		cons: []string{
			"Highest patient portion",
			"Surgical procedure with healing time",
			"Fixed subsidy covers only the standard-of-care share",
		},
		maintenance: "check-up and professional cleaning every 6 months",
		lifespan:    "20+ years",
	},
}

// DefaultFactor returns the factor a tier is priced at.
func DefaultFactor(tier model.CoverageTier) (costs.Factor, error) {
	p, ok := profiles[tier]
	if !ok {
		return costs.Factor{}, &model.ValidationError{Field: "tier", Value: string(tier), Err: model.ErrUnknownTier}
	}
	return p.factor, nil
}
