package model

import (
	"encoding/json"
	"sort"
)

// FindingChart maps teeth to their clinical finding. It is immutable once
// built; use NewFindingChart to construct one.
type FindingChart struct {
	teeth map[ToothID]FindingCode
}

// NewFindingChart validates every tooth and finding and returns a chart
// holding its own copy of m.
func NewFindingChart(m map[ToothID]FindingCode) (FindingChart, error) {
	teeth := make(map[ToothID]FindingCode, len(m))
	for t, c := range m {
		if _, err := NewToothID(int(t)); err != nil {
			return FindingChart{}, err
		}
		if !c.Valid() {
			return FindingChart{}, &ValidationError{Field: "finding", Value: string(c), Err: ErrUnknownFinding}
		}
		teeth[t] = c
	}
	return FindingChart{teeth: teeth}, nil
}

// Get returns the finding for tooth t.
func (c FindingChart) Get(t ToothID) (FindingCode, bool) {
	code, ok := c.teeth[t]
	return code, ok
}

// Teeth returns the charted teeth in ascending order. This is the
// iteration order used for every derived list.
func (c FindingChart) Teeth() []ToothID {
	return sortedTeeth(c.teeth)
}

func (c FindingChart) Len() int { return len(c.teeth) }

// Map returns a copy of the underlying mapping.
func (c FindingChart) Map() map[ToothID]FindingCode {
	out := make(map[ToothID]FindingCode, len(c.teeth))
	for t, code := range c.teeth {
		out[t] = code
	}
	return out
}

func (c FindingChart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.teeth)
}

// TreatmentCode is a derived per-tooth treatment: a standard-of-care code
// or a tier-specific therapy code.
type TreatmentCode string

const (
	TreatmentCrown            TreatmentCode = "K"
	TreatmentAbutmentCrown    TreatmentCode = "BK"
	TreatmentBridgePontic     TreatmentCode = "B"
	TreatmentExtraction       TreatmentCode = "X"
	TreatmentCeramicCrown     TreatmentCode = "KC"
	TreatmentCeramicAbutment  TreatmentCode = "BKC"
	TreatmentCeramicPontic    TreatmentCode = "BC"
	TreatmentImplantWithCrown TreatmentCode = "IK"
)

// TreatmentCodeChart shares the key space of FindingChart. It is produced
// by the engine and never edited afterwards.
type TreatmentCodeChart struct {
	teeth map[ToothID]TreatmentCode
}

// NewTreatmentCodeChart copies m into a new chart.
func NewTreatmentCodeChart(m map[ToothID]TreatmentCode) TreatmentCodeChart {
	teeth := make(map[ToothID]TreatmentCode, len(m))
	for t, code := range m {
		teeth[t] = code
	}
	return TreatmentCodeChart{teeth: teeth}
}

func (c TreatmentCodeChart) Get(t ToothID) (TreatmentCode, bool) {
	code, ok := c.teeth[t]
	return code, ok
}

func (c TreatmentCodeChart) Teeth() []ToothID {
	return sortedTeeth(c.teeth)
}

func (c TreatmentCodeChart) Len() int { return len(c.teeth) }

func (c TreatmentCodeChart) Map() map[ToothID]TreatmentCode {
	out := make(map[ToothID]TreatmentCode, len(c.teeth))
	for t, code := range c.teeth {
		out[t] = code
	}
	return out
}

func (c TreatmentCodeChart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.teeth)
}

func sortedTeeth[V any](m map[ToothID]V) []ToothID {
	out := make([]ToothID, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
