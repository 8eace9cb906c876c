package model

import "strings"

// CoverageTier is one of the three treatment philosophies offered per chart.
type CoverageTier string

const (
	TierStandard        CoverageTier = "standard"
	TierSameTypePremium CoverageTier = "same_type_premium"
	TierDifferentType   CoverageTier = "different_type"
)

// AllCoverageTiers lists the tiers in canonical order.
var AllCoverageTiers = []CoverageTier{TierStandard, TierSameTypePremium, TierDifferentType}

// ParseCoverageTier accepts the canonical names plus the short CLI aliases
// "premium" and "implant".
func ParseCoverageTier(s string) (CoverageTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard":
		return TierStandard, nil
	case "same_type_premium", "premium":
		return TierSameTypePremium, nil
	case "different_type", "implant":
		return TierDifferentType, nil
	default:
		return "", &ValidationError{Field: "tier", Value: s, Err: ErrUnknownTier}
	}
}

// Material returns the material a tier is priced with.
func (t CoverageTier) Material() MaterialTier {
	switch t {
	case TierSameTypePremium:
		return MaterialCeramic
	case TierDifferentType:
		return MaterialTitanium
	default:
		return MaterialBaseMetal
	}
}

// MaterialTier selects catalog codes and lab materials.
type MaterialTier string

const (
	MaterialBaseMetal MaterialTier = "base_metal"
	MaterialCeramic   MaterialTier = "ceramic"
	MaterialTitanium  MaterialTier = "titanium"
)

// InsuranceType distinguishes statutory from private patients.
type InsuranceType string

const (
	InsuranceStatutory InsuranceType = "statutory"
	InsurancePrivate   InsuranceType = "private"
)

func ParseInsuranceType(s string) (InsuranceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "statutory", "gkv":
		return InsuranceStatutory, nil
	case "private", "pkv":
		return InsurancePrivate, nil
	default:
		return "", &ValidationError{Field: "insurance", Value: s, Err: ErrUnknownInsurance}
	}
}
