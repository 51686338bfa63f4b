// Package metrics scores recorded scroll trajectories.
package metrics

import (
	"github.com/san-kum/scrollsim/internal/gesture"
)

// OverscrollTolerance is how far past a bound still counts as in bounds for
// InBounds. It absorbs the half step of travel after outward velocity stops.
const OverscrollTolerance = 0.5

// Default returns a fresh set of every metric for a run over geometry.
func Default(geometry gesture.Geometry) []gesture.Metric {
	x, y := geometry.Bounds()
	return []gesture.Metric{
		NewTravel(),
		NewMaxSpeed(),
		NewJerk(),
		NewPeakOverscroll(x, y),
		NewInBounds(x, y, OverscrollTolerance),
		NewSettleTime(),
	}
}

// Names lists the metrics in Default, in order.
func Names() []string {
	ms := Default(gesture.Geometry{})
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name()
	}
	return names
}
