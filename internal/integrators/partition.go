package integrators

import (
	"iter"
	"math"
)

// Interval is one integration step [Start, End].
type Interval struct {
	Start float64
	End   float64
}

func (iv Interval) Width() float64 {
	return iv.End - iv.Start
}

// partitionEpsilon absorbs float noise in (end-start)/step so that a span of
// exactly n steps does not grow a sliver step at the end.
const partitionEpsilon = 1e-9

// Count returns how many intervals Partition would produce.
func Count(start, end, step float64) int {
	if !(end > start) || !(step > 0) || math.IsInf(end-start, 0) {
		return 0
	}
	n := int(math.Ceil((end-start)/step - partitionEpsilon))
	if n < 1 {
		n = 1
	}
	return n
}

// Partition yields the steps of width step that split [start, end]. The last
// interval ends exactly at end and may be shorter than step. An empty or
// reversed range yields no intervals.
//
// Intervals are produced lazily, so a long idle gap costs time but no
// memory. Boundaries are computed from the step index rather than
// accumulated, so long ranges do not drift.
func Partition(start, end, step float64) iter.Seq[Interval] {
	n := Count(start, end, step)
	return func(yield func(Interval) bool) {
		for i := 0; i < n; i++ {
			iv := Interval{
				Start: start + float64(i)*step,
				End:   start + float64(i+1)*step,
			}
			if i == n-1 {
				iv.End = end
			}
			if !yield(iv) {
				return
			}
		}
	}
}
