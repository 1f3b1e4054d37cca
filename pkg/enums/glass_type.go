package enums

import "fmt"

// GlassType is the glazing finish applied to every pane of a sketch.
type GlassType string

const (
	GlassTypeClear      GlassType = "clear"
	GlassTypeFrosted    GlassType = "frosted"
	GlassTypeCustomTint GlassType = "custom-tint"
)

var validGlassTypes = []GlassType{
	GlassTypeClear,
	GlassTypeFrosted,
	GlassTypeCustomTint,
}

// String implements fmt.Stringer.
func (g GlassType) String() string {
	return string(g)
}

// IsValid reports whether the value is a known GlassType.
func (g GlassType) IsValid() bool {
	for _, candidate := range validGlassTypes {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGlassType converts raw input into a GlassType.
func ParseGlassType(value string) (GlassType, error) {
	for _, candidate := range validGlassTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid glass type %q", value)
}
