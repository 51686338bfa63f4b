// Package gesture replays scripted input against a scrollview on a simulated
// frame clock and records the resulting trajectory.
package gesture

import (
	"fmt"

	"github.com/san-kum/scrollsim/internal/scrollview"
)

// Frame is the scrollview state at one rendered frame. Velocity is the
// displacement since the previous frame in units per millisecond.
type Frame struct {
	Time      float64
	Position  scrollview.AxisVector
	Velocity  scrollview.AxisVector
	Animating bool
}

// Metric scores a run one frame at a time.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

type Result struct {
	Script     string
	Source     string
	FrameRate  int
	DurationMs float64
	Geometry   Geometry
	Frames     []Frame
	Metrics    map[string]float64

	// Partial is set when the run stopped before its last frame. Frames and
	// Metrics then cover only what was observed.
	Partial bool
}

// Series returns one column of the frames: "x", "y", "vx" or "vy".
func (r *Result) Series(column string) ([]float64, error) {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		switch column {
		case "x":
			out[i] = f.Position.X
		case "y":
			out[i] = f.Position.Y
		case "vx":
			out[i] = f.Velocity.X
		case "vy":
			out[i] = f.Velocity.Y
		default:
			return nil, fmt.Errorf("unknown column: %s", column)
		}
	}
	return out, nil
}

// RunError reports a physics invariant violation during a run.
type RunError struct {
	Frame int
	Time  float64
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run failed at frame %d (t=%.2fms): %v", e.Frame, e.Time, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
