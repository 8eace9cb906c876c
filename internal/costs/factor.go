package costs

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrFactorOutOfRange       = errors.New("factor outside [1.0, 3.5]")
	ErrRegionFactorOutOfRange = errors.New("region factor outside [0.8, 1.5]")
)

var (
	minFactor       = decimal.RequireFromString("1.0")
	maxFactor       = decimal.RequireFromString("3.5")
	minRegionFactor = decimal.RequireFromString("0.8")
	maxRegionFactor = decimal.RequireFromString("1.5")
)

// Factor is the adjustable multiplier for value-based positions. The zero
// value is not valid; build one with NewFactor.
type Factor struct {
	v decimal.Decimal
}

// NewFactor rejects values outside [1.0, 3.5].
func NewFactor(v decimal.Decimal) (Factor, error) {
	if v.LessThan(minFactor) || v.GreaterThan(maxFactor) {
		return Factor{}, fmt.Errorf("%s: %w", v, ErrFactorOutOfRange)
	}
	return Factor{v: v}, nil
}

// MustFactor is NewFactor for constants.
func MustFactor(s string) Factor {
	f, err := NewFactor(decimal.RequireFromString(s))
	if err != nil {
		panic(err)
	}
	return f
}

// With returns a factor updated to v. On rejection it returns f unchanged
// along with the error, so the last valid value is kept.
func (f Factor) With(v decimal.Decimal) (Factor, error) {
	nf, err := NewFactor(v)
	if err != nil {
		return f, err
	}
	return nf, nil
}

func (f Factor) Value() decimal.Decimal { return f.v }
func (f Factor) String() string         { return f.v.String() }

// RegionFactor is the lab-side market multiplier.
type RegionFactor struct {
	v decimal.Decimal
}

// NewRegionFactor rejects values outside [0.8, 1.5].
func NewRegionFactor(v decimal.Decimal) (RegionFactor, error) {
	if v.LessThan(minRegionFactor) || v.GreaterThan(maxRegionFactor) {
		return RegionFactor{}, fmt.Errorf("%s: %w", v, ErrRegionFactorOutOfRange)
	}
	return RegionFactor{v: v}, nil
}

// With returns a region factor updated to v, or f unchanged on rejection.
func (f RegionFactor) With(v decimal.Decimal) (RegionFactor, error) {
	nf, err := NewRegionFactor(v)
	if err != nil {
		return f, err
	}
	return nf, nil
}

func (f RegionFactor) Value() decimal.Decimal { return f.v }
