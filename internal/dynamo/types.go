package dynamo

import (
	"fmt"
	"math"
)

// Time is a timestamp in milliseconds. Zero is reserved as "no timestamp".
type Time = float64

// Position is an absolute offset along one axis, in device units.
type Position = float64

// Velocity is a position delta per integration timestep.
type Velocity = float64

// Event is the absolute axis position implied by a pan delta at a point in time.
type Event struct {
	Time  Time
	Value Position
}

func (e Event) String() string {
	return fmt.Sprintf("(%g: %g)", e.Time, e.Value)
}

// Compare orders events by time, then by value. A NaN in either field panics.
func (e Event) Compare(other Event) int {
	if math.IsNaN(e.Time) || math.IsNaN(other.Time) {
		Fail("event.compare", fmt.Errorf("%w: time field of %v or %v", ErrNaNCompare, e, other))
	}
	switch {
	case e.Time < other.Time:
		return -1
	case e.Time > other.Time:
		return 1
	}
	if math.IsNaN(e.Value) || math.IsNaN(other.Value) {
		Fail("event.compare", fmt.Errorf("%w: value field of %v or %v", ErrNaNCompare, e, other))
	}
	switch {
	case e.Value < other.Value:
		return -1
	case e.Value > other.Value:
		return 1
	}
	return 0
}

// Equal reports whether both fields match.
func (e Event) Equal(other Event) bool {
	return e.Compare(other) == 0
}

// Sample is a memoized point of the computed trajectory.
type Sample struct {
	Time     Time
	Position Position
	Velocity Velocity
}

func (s Sample) String() string {
	return fmt.Sprintf("(%g: %g, %g)", s.Time, s.Position, s.Velocity)
}

// IsValid reports whether position and velocity are finite.
func (s Sample) IsValid() bool {
	return IsFinite(s.Position) && IsFinite(s.Velocity)
}

// Capabilities describes what the current input device wants from the physics.
type Capabilities interface {
	// Overscrolls reports whether content may be dragged past its bounds.
	Overscrolls() bool
	// Accelerates reports whether the pointer acceleration curve applies.
	Accelerates() bool
	// Kinetic reports whether a release should start a fling.
	Kinetic() bool
}

// Edge identifies a track boundary.
type Edge uint8

const (
	// Top is the lower bound of the track.
	Top Edge = iota
	// Bottom is the upper bound of the track.
	Bottom
)

func (e Edge) String() string {
	if e == Bottom {
		return "bottom"
	}
	return "top"
}

// Bounds is the valid range of positions for one axis.
type Bounds struct {
	Lower Position
	Upper Position
}

// Contains reports whether p lies within [Lower, Upper].
func (b Bounds) Contains(p Position) bool {
	return p >= b.Lower && p <= b.Upper
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MustFinite panics with ErrNonFinite when v is NaN or infinite.
func MustFinite(op string, what string, v float64) float64 {
	if !IsFinite(v) {
		Fail(op, fmt.Errorf("%w: %s is %v", ErrNonFinite, what, v))
	}
	return v
}
