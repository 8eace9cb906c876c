package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gyeh/hkpcalc/internal/model"
	"github.com/gyeh/hkpcalc/internal/normalize"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func eur(d decimal.Decimal) string {
	return normalize.RoundCents(d).StringFixed(2) + " EUR"
}

func codeChart(c model.TreatmentCodeChart) string {
	if c.Len() == 0 {
		return "-"
	}
	parts := make([]string, 0, c.Len())
	for _, t := range c.Teeth() {
		code, _ := c.Get(t)
		parts = append(parts, fmt.Sprintf("%s:%s", t, code))
	}
	return strings.Join(parts, " ")
}

func printPlan(w io.Writer, p model.TreatmentPlan) {
	fmt.Fprintf(w, "=== %s (%s, %s) ===\n", p.Name, p.CoverageTier, p.MaterialType)
	fmt.Fprintf(w, "%s\n", p.Description)
	fmt.Fprintf(w, "Therapy:        %s\n", codeChart(p.Therapy))
	fmt.Fprintf(w, "Fee schedule:   %s\n", eur(p.Costs.Total))
	if p.LabCosts != nil {
		fmt.Fprintf(w, "Lab:            %s\n", eur(p.LabCosts.Total))
	}
	fmt.Fprintf(w, "Estimated cost: %s\n", eur(p.EstimatedCost))
	fmt.Fprintf(w, "Subsidy:        %s\n", eur(p.StatutorySubsidy))
	fmt.Fprintf(w, "Patient share:  %s\n", eur(p.PatientPortion))
	fmt.Fprintf(w, "Maintenance:    %s, expected lifespan %s\n", p.MaintenanceInterval, p.ExpectedLifespan)
	for _, s := range p.Pros {
		fmt.Fprintf(w, "  + %s\n", s)
	}
	for _, s := range p.Cons {
		fmt.Fprintf(w, "  - %s\n", s)
	}
	for _, s := range p.Notes {
		fmt.Fprintf(w, "  ! %s\n", s)
	}
	fmt.Fprintln(w)
}

func printBreakdown(w io.Writer, b model.CostBreakdown) {
	for _, p := range b.Positions {
		tooth := "--"
		if p.Tooth != 0 {
			tooth = p.Tooth.String()
		}
		fmt.Fprintf(w, "  %-6s %-8s %2s %-32s %3d x %10s x %4s = %12s\n",
			p.Code, p.Schedule, tooth, p.Description, p.Quantity,
			p.UnitPrice.StringFixed(2), p.Factor.String(), eur(p.Amount))
	}
	for _, m := range b.Materials {
		kind := "surcharge " + m.SurchargePercent.String() + "%"
		if m.BaseMaterial {
			kind = "base material"
		}
		fmt.Fprintf(w, "  %-6s %-32s %3d x %10s (%s) = %12s\n",
			"MAT", m.Name, m.Quantity, m.BasePrice.StringFixed(2), kind, eur(m.Amount))
	}
	fmt.Fprintf(w, "  time-based:  %s\n", eur(b.TotalTimeBased))
	fmt.Fprintf(w, "  value-based: %s\n", eur(b.TotalValueBased))
	if !b.Adjustment.IsZero() {
		fmt.Fprintf(w, "  region adj.: %s\n", eur(b.Adjustment))
	}
	fmt.Fprintf(w, "  total:       %s\n", eur(b.Total))
}
