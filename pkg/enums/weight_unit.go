package enums

import "fmt"

// WeightUnit is the unit of measure attached to a catalog item's reference quantity.
type WeightUnit string

const (
	WeightUnitKilogram   WeightUnit = "kg"
	WeightUnitGram       WeightUnit = "g"
	WeightUnitLiter      WeightUnit = "l"
	WeightUnitMilliliter WeightUnit = "ml"
	WeightUnitUnit       WeightUnit = "un"
)

var validWeightUnits = []WeightUnit{
	WeightUnitKilogram,
	WeightUnitGram,
	WeightUnitLiter,
	WeightUnitMilliliter,
	WeightUnitUnit,
}

// IsValid reports whether the value matches the canonical weight unit enum.
func (w WeightUnit) IsValid() bool {
	for _, candidate := range validWeightUnits {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWeightUnit converts the raw string to WeightUnit.
func ParseWeightUnit(value string) (WeightUnit, error) {
	for _, candidate := range validWeightUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid weight unit %q", value)
}
