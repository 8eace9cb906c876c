package treatment

import "github.com/gyeh/hkpcalc/internal/model"

// Retag derives a tier's therapy chart from the standard of care.
//
// Premium upgrades each code to its ceramic variant. The implant tier
// replaces pontics with implant crowns and keeps ceramic crowns only on
// abutments that need one for their own finding; a healthy abutment needs
// nothing once the gap is implanted. Extractions are the same in every
// tier.
func Retag(soc model.TreatmentCodeChart, chart model.FindingChart, tier model.CoverageTier) model.TreatmentCodeChart {
	out := make(map[model.ToothID]model.TreatmentCode, soc.Len())
	for _, t := range soc.Teeth() {
		code, _ := soc.Get(t)
		if tagged, ok := retagCode(code, tier, chart, t); ok {
			out[t] = tagged
		}
	}
	return model.NewTreatmentCodeChart(out)
}

func retagCode(code model.TreatmentCode, tier model.CoverageTier, chart model.FindingChart, t model.ToothID) (model.TreatmentCode, bool) {
	switch tier {
	case model.TierSameTypePremium:
		switch code {
		case model.TreatmentCrown:
			return model.TreatmentCeramicCrown, true
		case model.TreatmentAbutmentCrown:
			return model.TreatmentCeramicAbutment, true
		case model.TreatmentBridgePontic:
			return model.TreatmentCeramicPontic, true
		}
	case model.TierDifferentType:
		switch code {
		case model.TreatmentCrown:
			return model.TreatmentCeramicCrown, true
		case model.TreatmentAbutmentCrown:
			finding, _ := chart.Get(t)
			if finding.NeedsCrown() {
				return model.TreatmentCeramicCrown, true
			}
			return "", false
		case model.TreatmentBridgePontic:
			return model.TreatmentImplantWithCrown, true
		}
	}
	return code, true
}
