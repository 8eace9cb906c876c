package model

import (
	"strings"
)

// FindingCode is a per-tooth clinical finding as charted by dental staff.
type FindingCode string

const (
	FindingMissing            FindingCode = "f"
	FindingReplaced           FindingCode = "e"
	FindingReplacedRenew      FindingCode = "ew"
	FindingNonRestorable      FindingCode = "x"
	FindingCarious            FindingCode = "c"
	FindingCariousRootTreated FindingCode = "cr"
	FindingRootRemnant        FindingCode = "rr"
	FindingCrown              FindingCode = "k"
	FindingCrownRenew         FindingCode = "kw"
	FindingBridgePontic       FindingCode = "b"
	FindingBridgeAbutment     FindingCode = "bk"
	FindingImplant            FindingCode = "i"
	FindingVeneer             FindingCode = "v"
	FindingVeneerRenew        FindingCode = "vw"
	FindingCeramicCrown       FindingCode = "kc"
	FindingCeramicVeneer      FindingCode = "vc"
)

// FindingInfo describes one finding code.
type FindingInfo struct {
	Code FindingCode
	Name string
	// MissingEquivalent marks findings counted as a gap for the fixed subsidy.
	MissingEquivalent bool
}

// AllFindingCodes lists the supported finding codes in canonical order.
var AllFindingCodes = []FindingInfo{
	{Code: FindingMissing, Name: "missing", MissingEquivalent: true},
	{Code: FindingReplaced, Name: "replaced", MissingEquivalent: true},
	{Code: FindingReplacedRenew, Name: "replaced, renewal needed", MissingEquivalent: true},
	{Code: FindingNonRestorable, Name: "non-restorable", MissingEquivalent: true},
	{Code: FindingCarious, Name: "carious"},
	{Code: FindingCariousRootTreated, Name: "carious, root treated"},
	{Code: FindingRootRemnant, Name: "root remnant"},
	{Code: FindingCrown, Name: "crown"},
	{Code: FindingCrownRenew, Name: "crown, renewal needed"},
	{Code: FindingBridgePontic, Name: "bridge pontic"},
	{Code: FindingBridgeAbutment, Name: "bridge abutment crown"},
	{Code: FindingImplant, Name: "implant"},
	{Code: FindingVeneer, Name: "veneer"},
	{Code: FindingVeneerRenew, Name: "veneer, renewal needed"},
	{Code: FindingCeramicCrown, Name: "ceramic crown"},
	{Code: FindingCeramicVeneer, Name: "ceramic veneer"},
}

// FindingByCode returns the FindingInfo for the given code, or ok=false.
func FindingByCode(code string) (FindingInfo, bool) {
	for _, fi := range AllFindingCodes {
		if string(fi.Code) == code {
			return fi, true
		}
	}
	return FindingInfo{}, false
}

// ParseFindingCode validates a finding code. Input is expected to be
// normalized already (see normalize.FindingCode); only surrounding
// whitespace is tolerated here.
func ParseFindingCode(s string) (FindingCode, error) {
	fi, ok := FindingByCode(strings.TrimSpace(s))
	if !ok {
		return "", &ValidationError{Field: "finding", Value: s, Err: ErrUnknownFinding}
	}
	return fi.Code, nil
}

// Valid reports whether c is one of AllFindingCodes.
func (c FindingCode) Valid() bool {
	_, ok := FindingByCode(string(c))
	return ok
}

// MissingEquivalent reports whether c counts as a gap for the fixed subsidy.
func (c FindingCode) MissingEquivalent() bool {
	fi, ok := FindingByCode(string(c))
	return ok && fi.MissingEquivalent
}

// NeedsCrown reports whether the finding calls for a preparation and full crown.
func (c FindingCode) NeedsCrown() bool {
	return c == FindingCarious || c == FindingCariousRootTreated
}

func (c FindingCode) String() string { return string(c) }
