package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/gyeh/hkpcalc/internal/model"
)

var (
	defaultTimePointValue  = decimal.RequireFromString("1.1501")
	defaultValuePointValue = decimal.RequireFromString("0.0562421")
)

func pts(code, desc string, sched model.FeeSchedule, cat model.Category, points string) model.Position {
	return model.Position{
		Code:             code,
		Description:      desc,
		Schedule:         sched,
		Category:         cat,
		Points:           decimal.RequireFromString(points),
		RegionMultiplier: decimal.NewFromInt(1),
	}
}

func flat(code, desc string, sched model.FeeSchedule, cat model.Category, price string) model.Position {
	return model.Position{
		Code:             code,
		Description:      desc,
		Schedule:         sched,
		Category:         cat,
		FlatPrice:        decimal.RequireFromString(price),
		Flat:             true,
		RegionMultiplier: decimal.NewFromInt(1),
	}
}

// DefaultPositions is the built-in position table.
func DefaultPositions() []model.Position {
	const (
		tb = model.ScheduleTimeBased
		vb = model.ScheduleValueBased
	)
	return []model.Position{
		// BEMA
		pts("7b", "Abformung", tb, model.CategoryDiagnostics, "19"),
		pts("98a", "Bissregistrierung", tb, model.CategoryDiagnostics, "22"),
		pts("18a", "Präparation Pfeilerzahn", tb, model.CategoryPreparation, "30"),
		pts("20a", "Metallische Vollkrone", tb, model.CategoryCrown, "148"),
		pts("92", "Brückenglied", tb, model.CategoryBridge, "68"),
		pts("98h", "Einprobe", tb, model.CategoryInsertion, "12"),
		pts("24a", "Eingliederung", tb, model.CategoryInsertion, "22"),
		pts("24c", "Adhäsive Befestigung", tb, model.CategoryInsertion, "15"),

		// GOZ
		pts("5170", "Anatomische Abformung", vb, model.CategoryDiagnostics, "180"),
		pts("8010", "Bissregistrierung", vb, model.CategoryDiagnostics, "140"),
		pts("2030", "Präparation", vb, model.CategoryPreparation, "65"),
		pts("2210", "Vollkeramikkrone", vb, model.CategoryCrown, "1678"),
		pts("5070", "Brückenglied", vb, model.CategoryBridge, "400"),
		pts("9010", "Implantatinsertion", vb, model.CategoryImplant, "1545"),
		pts("2200", "Implantatgetragene Krone", vb, model.CategoryImplant, "1322"),
		pts("5120", "Einprobe", vb, model.CategoryInsertion, "100"),
		pts("5090", "Eingliederung", vb, model.CategoryInsertion, "120"),
		pts("2197", "Adhäsive Befestigung", vb, model.CategoryInsertion, "130"),

		// BEL
		flat("0010", "Modell", tb, model.CategoryLabModel, "9.80"),
		pts("1022", "Vollgusskrone NEM", tb, model.CategoryCrown, "120"),
		pts("1602", "Brückenglied NEM", tb, model.CategoryBridge, "95"),

		// BEB
		flat("0101", "Sägemodell", vb, model.CategoryLabModel, "24.50"),
		pts("1021", "Zirkonkrone", vb, model.CategoryCrown, "210"),
		pts("1051", "Zirkonbrückenglied", vb, model.CategoryBridge, "175"),
		pts("2031", "Individuelles Titanabutment", vb, model.CategoryImplant, "240"),
		pts("2041", "Implantatkrone Zirkon", vb, model.CategoryImplant, "225"),
	}
}

// DefaultSteps maps each material tier's generator steps to catalog codes.
func DefaultSteps() map[model.MaterialTier]map[Step]string {
	bema := map[Step]string{
		StepImpression:          "7b",
		StepBiteRegistration:    "98a",
		StepPreparation:         "18a",
		StepFullCrown:           "20a",
		StepBridgePontic:        "92",
		StepTryIn:               "98h",
		StepInsertion:           "24a",
		StepAdhesiveCementation: "24c",
		StepLabModel:            "0010",
		StepLabCrown:            "1022",
		StepLabPontic:           "1602",
	}
	goz := func(extra map[Step]string) map[Step]string {
		m := map[Step]string{
			StepImpression:          "5170",
			StepBiteRegistration:    "8010",
			StepPreparation:         "2030",
			StepFullCrown:           "2210",
			StepBridgePontic:        "5070",
			StepTryIn:               "5120",
			StepInsertion:           "5090",
			StepAdhesiveCementation: "2197",
			StepLabModel:            "0101",
			StepLabCrown:            "1021",
			StepLabPontic:           "1051",
		}
		for k, v := range extra {
			m[k] = v
		}
		return m
	}
	return map[model.MaterialTier]map[Step]string{
		model.MaterialBaseMetal: bema,
		model.MaterialCeramic:   goz(nil),
		model.MaterialTitanium: goz(map[Step]string{
			StepImplantInsertion:   "9010",
			StepImplantCrown:       "2200",
			StepLabImplantAbutment: "2031",
			StepLabImplantCrown:    "2041",
		}),
	}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(DefaultPositions(), DefaultSteps(), defaultTimePointValue, defaultValuePointValue)
	if err != nil {
		panic("catalog: invalid built-in table: " + err.Error())
	}
	return c
}
