package costs

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gyeh/hkpcalc/internal/labpricing"
	"github.com/gyeh/hkpcalc/internal/model"
)

var ErrNoLabConfig = errors.New("no lab pricing configuration")

// materialIndications is the order material lines appear in.
var materialIndications = []model.Category{model.CategoryCrown, model.CategoryBridge, model.CategoryImplant}

var hundred = decimal.NewFromInt(100)

// Lab prices lab lines with a lab's configuration.
//
// A line's base price is the lab's custom price when set, otherwise the
// catalog flat price, otherwise points × the lab point value. The base is
// scaled by the position's region multiplier and the region factor (the
// override's, else the lab default). Lines whose override disables them
// are left out.
//
// Materials are looked up per indication for the tier's material type and
// multiplied by the number of teeth carrying that indication. A missing
// material type or material table entry yields no material lines.
func Lab(lines []model.PositionLine, cfg *labpricing.Config, tier model.MaterialTier, log zerolog.Logger) (model.CostBreakdown, error) {
	if cfg == nil {
		return model.CostBreakdown{}, ErrNoLabConfig
	}
	defaultRF, err := NewRegionFactor(cfg.DefaultRegionFactor)
	if err != nil {
		return model.CostBreakdown{}, fmt.Errorf("lab %s default: %w", cfg.Name, err)
	}

	priced := make([]model.PricedPosition, 0, len(lines))
	timeTotal, valueTotal, adjustment := decimal.Zero, decimal.Zero, decimal.Zero
	units := make(map[model.Category]map[model.ToothID]bool)

	for _, l := range lines {
		o, hasOverride := cfg.Override(l.Code)
		if hasOverride && !o.IsEnabled() {
			log.Debug().Str("code", l.Code).Str("lab", cfg.Name).Msg("position disabled by lab, skipped")
			continue
		}

		var base decimal.Decimal
		switch {
		case hasOverride && o.CustomPrice != nil:
			base = *o.CustomPrice
		case l.Flat:
			base = l.FlatPrice
		default:
			base = l.Points.Mul(cfg.PointValue)
		}

		rf := defaultRF
		if hasOverride && o.RegionFactor != nil {
			rf, err = NewRegionFactor(*o.RegionFactor)
			if err != nil {
				return model.CostBreakdown{}, fmt.Errorf("lab %s position %s: %w", cfg.Name, l.Code, err)
			}
		}

		qty := quantity(l)
		unit := base.Mul(l.RegionMultiplier)
		unadjusted := unit.Mul(decimal.NewFromInt(int64(qty)))
		amount := unadjusted.Mul(rf.Value())
		adjustment = adjustment.Add(amount.Sub(unadjusted))

		if l.Schedule == model.ScheduleValueBased {
			valueTotal = valueTotal.Add(amount)
		} else {
			timeTotal = timeTotal.Add(amount)
		}
		l.Quantity = qty
		priced = append(priced, model.PricedPosition{PositionLine: l, UnitPrice: unit, Factor: rf.Value(), Amount: amount})

		if l.Tooth != 0 {
			if units[l.Category] == nil {
				units[l.Category] = make(map[model.ToothID]bool)
			}
			units[l.Category][l.Tooth] = true
		}
	}

	materials, materialTotal := materialCosts(cfg, tier, units, log)

	return model.CostBreakdown{
		Positions:       priced,
		TotalTimeBased:  timeTotal,
		TotalValueBased: valueTotal,
		Materials:       materials,
		Adjustment:      adjustment,
		Total:           timeTotal.Add(valueTotal).Add(materialTotal),
	}, nil
}

func materialCosts(cfg *labpricing.Config, tier model.MaterialTier, units map[model.Category]map[model.ToothID]bool, log zerolog.Logger) ([]model.MaterialCost, decimal.Decimal) {
	out := []model.MaterialCost{}
	total := decimal.Zero

	materialType, ok := cfg.MaterialType(tier)
	if !ok {
		log.Debug().Str("lab", cfg.Name).Str("tier", string(tier)).Msg("no material type configured")
		return out, total
	}

	for _, ind := range materialIndications {
		n := len(units[ind])
		if n == 0 {
			continue
		}
		configured := cfg.MaterialsFor(ind, materialType)
		if len(configured) == 0 {
			log.Debug().
				Str("lab", cfg.Name).
				Str("indication", string(ind)).
				Str("material_type", materialType).
				Msg("no materials configured")
			continue
		}
		for _, m := range configured {
			line := MaterialUnitPrice(m).Mul(decimal.NewFromInt(int64(n)))
			total = total.Add(line)
			out = append(out, model.MaterialCost{
				Name:             m.Name,
				Indication:       ind,
				BasePrice:        m.BasePrice,
				SurchargePercent: m.SurchargePercent,
				BaseMaterial:     m.BaseMaterial,
				Quantity:         n,
				Amount:           line,
			})
		}
	}
	return out, total
}

// MaterialUnitPrice is base + base × surcharge / 100, without surcharge for
// base materials.
func MaterialUnitPrice(m labpricing.Material) decimal.Decimal {
	if m.BaseMaterial {
		return m.BasePrice
	}
	return m.BasePrice.Add(m.BasePrice.Mul(m.SurchargePercent).Div(hundred))
}
