package metrics

import "github.com/san-kum/scrollsim/internal/gesture"

// SettleTime is the time of the first frame after which the scrollview never
// animated again. A run still animating on its last frame reports that
// frame's time.
type SettleTime struct {
	settledAt float64
	last      float64
	animating bool
}

func NewSettleTime() *SettleTime {
	return &SettleTime{}
}

func (m *SettleTime) Name() string { return "settle_ms" }

func (m *SettleTime) Observe(f gesture.Frame) {
	if m.animating && !f.Animating {
		m.settledAt = f.Time
	}
	m.animating = f.Animating
	m.last = f.Time
}

func (m *SettleTime) Value() float64 {
	if m.animating {
		return m.last
	}
	return m.settledAt
}

func (m *SettleTime) Reset() {
	*m = SettleTime{}
}
