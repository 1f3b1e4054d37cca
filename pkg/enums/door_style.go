package enums

import "fmt"

// DoorStyle selects how door panels move when opened.
type DoorStyle string

const (
	DoorStyleSliding DoorStyle = "sliding"
	DoorStyleHinged  DoorStyle = "hinged"
)

var validDoorStyles = []DoorStyle{
	DoorStyleSliding,
	DoorStyleHinged,
}

// String implements fmt.Stringer.
func (d DoorStyle) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DoorStyle.
func (d DoorStyle) IsValid() bool {
	for _, candidate := range validDoorStyles {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDoorStyle converts raw input into a DoorStyle.
func ParseDoorStyle(value string) (DoorStyle, error) {
	for _, candidate := range validDoorStyles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid door style %q", value)
}
