// Package curve turns the sparse pan events of one axis into a continuous
// position function of time.
package curve

import (
	"fmt"

	"github.com/san-kum/scrollsim/internal/dynamo"
)

// Select picks the events that bracket t, oldest first: the event before the
// nearest earlier one, the nearest event strictly before t, and the nearest
// event at or after t. Missing neighbours are left out, so the result holds
// between zero and three events.
func Select(events []dynamo.Event, t dynamo.Time) []dynamo.Event {
	var (
		before, after, beforeBefore          dynamo.Event
		hasBefore, hasAfter, hasBeforeBefore bool
	)

	for _, e := range events {
		if e.Time < t {
			if !hasBefore || e.Time >= before.Time {
				before, hasBefore = e, true
			}
		} else if !hasAfter || e.Time < after.Time {
			after, hasAfter = e, true
		}
	}

	if hasBefore {
		for _, e := range events {
			if e.Time < before.Time && (!hasBeforeBefore || e.Time >= beforeBefore.Time) {
				beforeBefore, hasBeforeBefore = e, true
			}
		}
	}

	selected := make([]dynamo.Event, 0, 3)
	if hasBeforeBefore {
		selected = append(selected, beforeBefore)
	}
	if hasBefore {
		selected = append(selected, before)
	}
	if hasAfter {
		selected = append(selected, after)
	}
	return selected
}

// Evaluate interpolates the selected events at t.
//
// A single event cannot carry a slope; it is scaled down by maxGap so that
// the first pan of a gesture produces a small nudge instead of a jump.
func Evaluate(selected []dynamo.Event, t dynamo.Time, maxGap float64) dynamo.Position {
	switch len(selected) {
	case 0:
		return 0
	case 1:
		return selected[0].Value / maxGap
	case 2:
		return Linear(selected[0], selected[1], t)
	case 3:
		return Linear(selected[1], selected[2], t)
	case 4:
		dynamo.Fail("curve.evaluate", dynamo.ErrUnsupportedCurve)
	default:
		dynamo.Fail("curve.evaluate", fmt.Errorf("%w: %d events selected", dynamo.ErrUnreachable, len(selected)))
	}
	return 0
}

// At selects and evaluates in one call.
func At(events []dynamo.Event, t dynamo.Time, maxGap float64) dynamo.Position {
	return Evaluate(Select(events, t), t, maxGap)
}

// Linear samples the line through a and b at t.
func Linear(a, b dynamo.Event, t dynamo.Time) dynamo.Position {
	return Slope(a, b)*(t-a.Time) + a.Value
}

// Slope is the rise of the line through a and b per unit time. Events that
// share a timestamp have slope 0.
func Slope(a, b dynamo.Event) float64 {
	if a.Time == b.Time {
		return 0
	}
	return (a.Value - b.Value) / (a.Time - b.Time)
}
