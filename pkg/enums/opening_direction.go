package enums

import "fmt"

// OpeningDirection is the side a panel or pane opens toward.
type OpeningDirection string

const (
	OpeningDirectionLeft  OpeningDirection = "left"
	OpeningDirectionRight OpeningDirection = "right"
	OpeningDirectionUp    OpeningDirection = "up"
	OpeningDirectionDown  OpeningDirection = "down"
)

var validOpeningDirections = []OpeningDirection{
	OpeningDirectionLeft,
	OpeningDirectionRight,
	OpeningDirectionUp,
	OpeningDirectionDown,
}

// String implements fmt.Stringer.
func (o OpeningDirection) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OpeningDirection.
func (o OpeningDirection) IsValid() bool {
	for _, candidate := range validOpeningDirections {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsHorizontal reports whether the direction runs along the x axis.
func (o OpeningDirection) IsHorizontal() bool {
	return o == OpeningDirectionLeft || o == OpeningDirectionRight
}

// ValidForKind reports whether the direction is allowed for the
// product kind. Doors only swing or slide sideways.
func (o OpeningDirection) ValidForKind(kind ProductKind) bool {
	if !o.IsValid() {
		return false
	}
	if kind == ProductKindDoor {
		return o.IsHorizontal()
	}
	return true
}

// ParseOpeningDirection converts raw input into an OpeningDirection.
func ParseOpeningDirection(value string) (OpeningDirection, error) {
	for _, candidate := range validOpeningDirections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid opening direction %q", value)
}
