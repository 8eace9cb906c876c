package normalize

import (
	"regexp"
	"strings"
)

var twoDigits = regexp.MustCompile(`^[0-9]{2}$`)

// FindingCode trims surrounding whitespace and lowercases, so " KW " becomes
// "kw". Nothing else is removed; the result is checked against the finding
// table by the caller.
func FindingCode(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ToothNumber trims surrounding whitespace and reports whether what is left
// is exactly two digits. Signs, separators and prefixes are not stripped.
func ToothNumber(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, twoDigits.MatchString(s)
}
