package catalog

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/hkpcalc/internal/model"
)

// fileCatalog is the on-disk YAML structure of an alternate catalog.
type fileCatalog struct {
	TimePointValue  decimal.Decimal                        `yaml:"time_point_value"`
	ValuePointValue decimal.Decimal                        `yaml:"value_point_value"`
	Positions       []model.Position                       `yaml:"positions"`
	Steps           map[model.MaterialTier]map[Step]string `yaml:"steps"`
}

// LoadFile reads an alternate catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if !fc.TimePointValue.IsPositive() || !fc.ValuePointValue.IsPositive() {
		return nil, fmt.Errorf("catalog file %s: point values must be positive", path)
	}
	return New(fc.Positions, fc.Steps, fc.TimePointValue, fc.ValuePointValue)
}
