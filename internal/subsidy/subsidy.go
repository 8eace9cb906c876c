// Package subsidy computes the statutory fixed subsidy (Festzuschuss) for a
// finding chart.
package subsidy

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/gyeh/hkpcalc/internal/model"
)

// Flat statutory base amounts by gap size. They are not derived from
// catalog prices.
var (
	BaseSingleFront = decimal.RequireFromString("580.00")
	BaseSingleBack  = decimal.RequireFromString("500.00")
	BaseMulti       = decimal.RequireFromString("874.50")
	BaseExtended    = decimal.RequireFromString("1312.00")
)

var (
	bonusTen  = decimal.RequireFromString("0.15")
	bonusFive = decimal.RequireFromString("0.10")
)

// Compute returns base × (1 + bonus) for the chart. The result is exact;
// rounding to cents is left to whoever displays or stores it.
func Compute(chart model.FindingChart, bonusTenureYears int) (decimal.Decimal, error) {
	if bonusTenureYears < 0 {
		return decimal.Zero, &model.ValidationError{
			Field: "bonus tenure",
			Value: strconv.Itoa(bonusTenureYears),
			Err:   model.ErrInvalidTenure,
		}
	}
	base := BaseAmount(chart)
	return base.Mul(decimal.NewFromInt(1).Add(BonusRate(bonusTenureYears))), nil
}

// ComputeFor applies the insurance context. Private patients receive no
// fixed subsidy. The final argument is whether a statutory patient also has
// additional private coverage; it is accepted so callers pass the full
// context, and it never changes the statutory amount.
func ComputeFor(chart model.FindingChart, bonusTenureYears int, insurance model.InsuranceType, _ bool) (decimal.Decimal, error) {
	amount, err := Compute(chart, bonusTenureYears)
	if err != nil {
		return decimal.Zero, err
	}
	switch insurance {
	case model.InsuranceStatutory:
		return amount, nil
	case model.InsurancePrivate:
		return decimal.Zero, nil
	default:
		return decimal.Zero, &model.ValidationError{Field: "insurance", Value: string(insurance), Err: model.ErrUnknownInsurance}
	}
}

// Gaps returns the teeth counted as missing or already replaced, ascending.
func Gaps(chart model.FindingChart) []model.ToothID {
	var out []model.ToothID
	for _, t := range chart.Teeth() {
		code, _ := chart.Get(t)
		if code.MissingEquivalent() {
			out = append(out, t)
		}
	}
	return out
}

// BaseAmount returns the flat base for the number of gaps in the chart.
func BaseAmount(chart model.FindingChart) decimal.Decimal {
	gaps := Gaps(chart)
	switch n := len(gaps); {
	case n == 0:
		return decimal.Zero
	case n == 1:
		if gaps[0].IsFront() {
			return BaseSingleFront
		}
		return BaseSingleBack
	case n <= 4:
		return BaseMulti
	default:
		return BaseExtended
	}
}

// BonusRate returns the loyalty bonus for a tenure in years. The ladder has
// discrete steps at 5 and 10 years.
func BonusRate(years int) decimal.Decimal {
	switch {
	case years >= 10:
		return bonusTen
	case years >= 5:
		return bonusFive
	default:
		return decimal.Zero
	}
}
