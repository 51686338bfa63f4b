package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/scrollsim/internal/gesture"
	"github.com/san-kum/scrollsim/internal/scrollview"
)

// Travel is the total path length covered by the content.
type Travel struct {
	steps []float64
	prev  scrollview.AxisVector
	seen  bool
}

func NewTravel() *Travel {
	return &Travel{}
}

func (m *Travel) Name() string { return "travel" }

func (m *Travel) Observe(f gesture.Frame) {
	if m.seen {
		d := f.Position.Add(m.prev.Scale(-1))
		m.steps = append(m.steps, math.Hypot(d.X, d.Y))
	}
	m.prev = f.Position
	m.seen = true
}

func (m *Travel) Value() float64 {
	if len(m.steps) == 0 {
		return 0
	}
	return floats.Sum(m.steps)
}

func (m *Travel) Reset() {
	m.steps = m.steps[:0]
	m.prev = scrollview.AxisVector{}
	m.seen = false
}

// MaxSpeed is the highest frame velocity, in units per millisecond.
type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{}
}

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(f gesture.Frame) {
	m.max = math.Max(m.max, math.Hypot(f.Velocity.X, f.Velocity.Y))
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// Jerk is the standard deviation of the frame-to-frame change in velocity.
// A smooth fling has a small, steady deceleration and scores near zero;
// stutter between frames raises it.
type Jerk struct {
	accels []float64
	prev   scrollview.AxisVector
	seen   bool
}

func NewJerk() *Jerk {
	return &Jerk{}
}

func (m *Jerk) Name() string { return "jerk" }

func (m *Jerk) Observe(f gesture.Frame) {
	if m.seen {
		d := f.Velocity.Add(m.prev.Scale(-1))
		m.accels = append(m.accels, math.Hypot(d.X, d.Y))
	}
	m.prev = f.Velocity
	m.seen = true
}

func (m *Jerk) Value() float64 {
	if len(m.accels) < 2 {
		return 0
	}
	return stat.StdDev(m.accels, nil)
}

func (m *Jerk) Reset() {
	m.accels = m.accels[:0]
	m.prev = scrollview.AxisVector{}
	m.seen = false
}
