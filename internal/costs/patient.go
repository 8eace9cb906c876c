// Package costs prices generated position lines into cost breakdowns: a
// patient-facing variant over the two fee schedules and a lab-facing
// variant with region factors and material surcharges.
package costs

import (
	"github.com/shopspring/decimal"

	"github.com/gyeh/hkpcalc/internal/model"
)

// PointValues holds the euro value of one point per schedule.
type PointValues struct {
	TimeBased  decimal.Decimal
	ValueBased decimal.Decimal
}

// Patient prices lines for the patient. Time-based lines cost points ×
// the fixed time point value; value-based lines cost points × value point
// value × factor. Flat-priced lines are never factored. Value-based totals
// are therefore linear in the factor. A factor outside [1.0, 3.5], such as
// the zero Factor, is rejected with ErrFactorOutOfRange.
func Patient(lines []model.PositionLine, factor Factor, pv PointValues) (model.CostBreakdown, error) {
	if _, err := NewFactor(factor.Value()); err != nil {
		return model.CostBreakdown{}, err
	}
	one := decimal.NewFromInt(1)
	priced := make([]model.PricedPosition, 0, len(lines))
	timeTotal, valueTotal := decimal.Zero, decimal.Zero

	for _, l := range lines {
		qty := quantity(l)
		unit, f := decimal.Zero, one
		switch {
		case l.Flat:
			unit = l.FlatPrice
		case l.Schedule == model.ScheduleValueBased:
			unit = l.Points.Mul(pv.ValueBased)
			f = factor.Value()
		default:
			unit = l.Points.Mul(pv.TimeBased)
		}
		amount := unit.Mul(f).Mul(decimal.NewFromInt(int64(qty)))

		if l.Schedule == model.ScheduleValueBased {
			valueTotal = valueTotal.Add(amount)
		} else {
			timeTotal = timeTotal.Add(amount)
		}
		l.Quantity = qty
		priced = append(priced, model.PricedPosition{PositionLine: l, UnitPrice: unit, Factor: f, Amount: amount})
	}

	return model.CostBreakdown{
		Positions:       priced,
		TotalTimeBased:  timeTotal,
		TotalValueBased: valueTotal,
		Materials:       []model.MaterialCost{},
		Adjustment:      decimal.Zero,
		Total:           timeTotal.Add(valueTotal),
	}, nil
}

// quantity defaults missing or non-positive quantities to one.
func quantity(l model.PositionLine) int {
	if l.Quantity < 1 {
		return 1
	}
	return l.Quantity
}
