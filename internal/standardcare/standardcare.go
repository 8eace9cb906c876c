// Package standardcare derives the statutory standard-of-care treatment per
// tooth from a finding chart.
package standardcare

import "github.com/gyeh/hkpcalc/internal/model"

// Derive maps findings to standard-of-care codes in two passes.
//
// Pass one applies the per-tooth table. Pass two walks the missing teeth
// and marks each horizontal neighbour that is not itself missing as a
// bridge abutment, overriding whatever pass one derived for it. Each gap
// looks exactly one tooth out on either side; longer gaps are not merged
// into a single span. Findings without a rule produce no entry.
func Derive(chart model.FindingChart) model.TreatmentCodeChart {
	out := make(map[model.ToothID]model.TreatmentCode, chart.Len())

	for _, t := range chart.Teeth() {
		code, _ := chart.Get(t)
		if tc, ok := perTooth(code); ok {
			out[t] = tc
		}
	}

	for _, t := range chart.Teeth() {
		code, _ := chart.Get(t)
		if code != model.FindingMissing {
			continue
		}
		for _, n := range t.Neighbors() {
			if nc, ok := chart.Get(n); ok && nc == model.FindingMissing {
				continue
			}
			out[n] = model.TreatmentAbutmentCrown
		}
	}

	return model.NewTreatmentCodeChart(out)
}

// perTooth is the single-tooth rule table. Every finding code is listed so
// that a new code shows up here as an explicit decision.
func perTooth(code model.FindingCode) (model.TreatmentCode, bool) {
	switch code {
	case model.FindingMissing:
		return model.TreatmentBridgePontic, true
	case model.FindingCarious, model.FindingCariousRootTreated:
		return model.TreatmentCrown, true
	case model.FindingNonRestorable, model.FindingRootRemnant:
		return model.TreatmentExtraction, true
	case model.FindingReplaced, model.FindingReplacedRenew,
		model.FindingCrown, model.FindingCrownRenew,
		model.FindingBridgePontic, model.FindingBridgeAbutment,
		model.FindingImplant,
		model.FindingVeneer, model.FindingVeneerRenew,
		model.FindingCeramicCrown, model.FindingCeramicVeneer:
		return "", false
	default:
		return "", false
	}
}
