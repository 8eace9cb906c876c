// Package labpricing holds a dental lab's pricing configuration. It is
// edited by lab users elsewhere and read-only for the engine.
package labpricing

import (
	"fmt"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/hkpcalc/internal/model"
	"github.com/gyeh/hkpcalc/internal/normalize"
)

// Config is one lab's pricing state.
type Config struct {
	LabID               uuid.UUID                     `yaml:"lab_id" json:"lab_id"`
	Name                string                        `yaml:"name" json:"name" validate:"required"`
	PointValue          decimal.Decimal               `yaml:"point_value" json:"point_value" validate:"gt=0"`
	DefaultRegionFactor decimal.Decimal               `yaml:"default_region_factor" json:"default_region_factor" validate:"gte=0.8,lte=1.5"`
	MaterialTypes       map[model.MaterialTier]string `yaml:"material_types" json:"material_types" validate:"dive,required"`
	Materials           []Material                    `yaml:"materials" json:"materials" validate:"dive"`
	Overrides           map[string]PositionOverride   `yaml:"positions" json:"positions" validate:"dive"`
}

// Material is one entry of the material table, keyed by indication and
// material type.
type Material struct {
	Indication       model.Category  `yaml:"indication" json:"indication" validate:"oneof=crown bridge implant"`
	MaterialType     string          `yaml:"material_type" json:"material_type" validate:"required"`
	Name             string          `yaml:"name" json:"name" validate:"required"`
	BasePrice        decimal.Decimal `yaml:"base_price" json:"base_price" validate:"gte=0"`
	SurchargePercent decimal.Decimal `yaml:"surcharge_percent" json:"surcharge_percent" validate:"gte=0"`
	BaseMaterial     bool            `yaml:"base_material" json:"base_material"`
}

// PositionOverride adjusts one catalog position for this lab. Nil fields
// fall back to the catalog and lab defaults.
type PositionOverride struct {
	CustomPrice  *decimal.Decimal `yaml:"custom_price" json:"custom_price,omitempty" validate:"omitempty,gte=0"`
	Enabled      *bool            `yaml:"enabled" json:"enabled,omitempty"`
	RegionFactor *decimal.Decimal `yaml:"region_factor" json:"region_factor,omitempty" validate:"omitempty,gte=0.8,lte=1.5"`
}

// IsEnabled reports whether the position is offered; unset means enabled.
func (o PositionOverride) IsEnabled() bool {
	return o.Enabled == nil || *o.Enabled
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Validate checks the configuration's field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("lab pricing %q: %w", c.Name, err)
	}
	return nil
}

// MaterialType returns the lab's material type name for a tier.
func (c *Config) MaterialType(tier model.MaterialTier) (string, bool) {
	name, ok := c.MaterialTypes[tier]
	return name, ok && name != ""
}

// MaterialsFor returns the configured materials for an indication and
// material type, in table order. An unconfigured pair yields nil.
func (c *Config) MaterialsFor(indication model.Category, materialType string) []Material {
	var out []Material
	key := normalize.Key(materialType)
	for _, m := range c.Materials {
		if m.Indication == indication && normalize.Key(m.MaterialType) == key {
			out = append(out, m)
		}
	}
	return out
}

// Override returns the override for a position code.
func (c *Config) Override(code string) (PositionOverride, bool) {
	o, ok := c.Overrides[code]
	return o, ok
}

// LoadFile reads and validates a lab pricing YAML file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lab pricing file: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse lab pricing file: %w", err)
	}
	if c.DefaultRegionFactor.IsZero() {
		c.DefaultRegionFactor = decimal.NewFromInt(1)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
