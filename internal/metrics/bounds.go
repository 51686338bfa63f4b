package metrics

import (
	"math"

	"github.com/san-kum/scrollsim/internal/dynamo"
	"github.com/san-kum/scrollsim/internal/gesture"
)

func outside(b dynamo.Bounds, p float64) float64 {
	switch {
	case p > b.Upper:
		return p - b.Upper
	case p < b.Lower:
		return b.Lower - p
	}
	return 0
}

// PeakOverscroll is the furthest the content went past its bounds on either
// axis.
type PeakOverscroll struct {
	x, y dynamo.Bounds
	peak float64
}

func NewPeakOverscroll(x, y dynamo.Bounds) *PeakOverscroll {
	return &PeakOverscroll{x: x, y: y}
}

func (m *PeakOverscroll) Name() string { return "peak_overscroll" }

func (m *PeakOverscroll) Observe(f gesture.Frame) {
	m.peak = math.Max(m.peak, outside(m.x, f.Position.X))
	m.peak = math.Max(m.peak, outside(m.y, f.Position.Y))
}

func (m *PeakOverscroll) Value() float64 { return m.peak }
func (m *PeakOverscroll) Reset()         { m.peak = 0 }

// InBounds is the fraction of frames where the content sat within its
// bounds, within tolerance.
type InBounds struct {
	x, y       dynamo.Bounds
	tolerance  float64
	violations int
	samples    int
}

func NewInBounds(x, y dynamo.Bounds, tolerance float64) *InBounds {
	return &InBounds{x: x, y: y, tolerance: tolerance}
}

func (m *InBounds) Name() string { return "in_bounds" }

func (m *InBounds) Observe(f gesture.Frame) {
	m.samples++
	if outside(m.x, f.Position.X) > m.tolerance || outside(m.y, f.Position.Y) > m.tolerance {
		m.violations++
	}
}

func (m *InBounds) Value() float64 {
	if m.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(m.violations)/float64(m.samples)
}

func (m *InBounds) Reset() {
	m.violations = 0
	m.samples = 0
}
