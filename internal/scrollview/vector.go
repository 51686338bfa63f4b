package scrollview

import (
	"fmt"
	"strings"
)

// Axis selects one of the two scroll directions. The zero value is Vertical.
type Axis uint8

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "x"
	}
	return "y"
}

// ParseAxis accepts x/horizontal and y/vertical.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "horizontal":
		return Horizontal, nil
	case "y", "vertical":
		return Vertical, nil
	default:
		return Vertical, fmt.Errorf("unknown axis: %q (must be x or y)", s)
	}
}

func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Axis) UnmarshalText(text []byte) error {
	parsed, err := ParseAxis(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// AxisVector is a pair of per-axis magnitudes, usually a content offset.
type AxisVector struct {
	X float64
	Y float64
}

func (v AxisVector) Add(other AxisVector) AxisVector {
	return AxisVector{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v AxisVector) Scale(s float64) AxisVector {
	return AxisVector{X: v.X * s, Y: v.Y * s}
}

// Get returns the component along a.
func (v AxisVector) Get(a Axis) float64 {
	if a == Horizontal {
		return v.X
	}
	return v.Y
}

func (v AxisVector) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
