package normalize

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// RoundCents rounds an amount to currency precision, half away from zero.
// The engine keeps exact values; rounding happens at display and storage.
func RoundCents(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// ToCents converts an amount to integer cents.
func ToCents(v decimal.Decimal) int64 {
	return v.Mul(hundred).Round(0).IntPart()
}

// OptCents converts an optional amount to optional cents.
func OptCents(v *decimal.Decimal) *int64 {
	if v == nil {
		return nil
	}
	c := ToCents(*v)
	return &c
}
