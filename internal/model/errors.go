package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTooth        = errors.New("invalid tooth identifier")
	ErrUnknownFinding      = errors.New("unknown finding code")
	ErrInvalidTenure       = errors.New("bonus tenure must not be negative")
	ErrUnknownInsurance    = errors.New("unknown insurance type")
	ErrUnknownTier         = errors.New("unknown coverage tier")
	ErrMissingCatalogEntry = errors.New("position missing from catalog")
)

// ValidationError reports caller input that cannot be used as given.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ConfigError reports broken static data, such as a generated position
// code that the active catalog does not define. It is never caused by
// user input.
type ConfigError struct {
	Code string
	Tier MaterialTier
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Tier != "" {
		return fmt.Sprintf("catalog %s (%s): %s", e.Code, e.Tier, e.Err)
	}
	return fmt.Sprintf("catalog %s: %s", e.Code, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
