package enums

import "fmt"

// MeasureUnit is the unit dimensions are entered and displayed in.
type MeasureUnit string

const (
	MeasureUnitMillimeter MeasureUnit = "mm"
	MeasureUnitCentimeter MeasureUnit = "cm"
	MeasureUnitMeter      MeasureUnit = "m"
)

var validMeasureUnits = []MeasureUnit{
	MeasureUnitMillimeter,
	MeasureUnitCentimeter,
	MeasureUnitMeter,
}

// String implements fmt.Stringer.
func (m MeasureUnit) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MeasureUnit.
func (m MeasureUnit) IsValid() bool {
	for _, candidate := range validMeasureUnits {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMeasureUnit converts raw input into a MeasureUnit.
func ParseMeasureUnit(value string) (MeasureUnit, error) {
	for _, candidate := range validMeasureUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid measure unit %q", value)
}

// ToMeters converts a value expressed in the unit to meters.
func (m MeasureUnit) ToMeters(value float64) float64 {
	switch m {
	case MeasureUnitCentimeter:
		return value / 100
	case MeasureUnitMeter:
		return value
	default:
		return value / 1000
	}
}
