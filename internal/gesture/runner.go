package gesture

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/scrollsim/internal/config"
	"github.com/san-kum/scrollsim/internal/dynamo"
	"github.com/san-kum/scrollsim/internal/interpolator"
	"github.com/san-kum/scrollsim/internal/logging"
	"github.com/san-kum/scrollsim/internal/scrollview"
)

// Runner replays scripts. Metrics are reset at the start of every run, so a
// Runner must not be shared between concurrent runs.
type Runner struct {
	opts      []interpolator.Option
	frameRate int
	geometry  Geometry
	metrics   []Metric
	observers []Observer
}

// NewRunner creates a runner whose defaults come from sim. opts are passed to
// both axes of every scrollview it builds.
func NewRunner(sim config.SimConfig, opts ...interpolator.Option) *Runner {
	return &Runner{
		opts:      opts,
		frameRate: sim.FrameRate,
		geometry: Geometry{
			ContentHeight:  sim.ContentHeight,
			ContentWidth:   sim.ContentWidth,
			ViewportHeight: sim.ViewportHeight,
			ViewportWidth:  sim.ViewportWidth,
		},
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run replays s and returns every frame. Cancelling ctx stops the run at the
// next frame and returns the frames so far together with ctx.Err(). A physics
// invariant violation stops the run with a *RunError. A stopped run returns a
// Partial result whose metrics cover the frames observed.
func (r *Runner) Run(ctx context.Context, s *Script) (result *Result, err error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script %q: %w", s.Name, err)
	}

	frameRate := s.FrameRate
	if frameRate <= 0 {
		frameRate = r.frameRate
	}
	if frameRate <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %d", frameRate)
	}
	geometry := r.geometry
	if s.Geometry != nil {
		geometry = *s.Geometry
	}

	interval := 1000 / float64(frameRate)
	frames := int(math.Floor(s.DurationMs/interval+1e-9)) + 1

	result = &Result{
		Script:     s.Name,
		Source:     s.Source.String(),
		FrameRate:  frameRate,
		DurationMs: s.DurationMs,
		Geometry:   geometry,
		Frames:     make([]Frame, 0, frames),
		Metrics:    make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	sv := scrollview.New(r.opts...)
	sv.SetGeometry(geometry.ContentHeight, geometry.ContentWidth, geometry.ViewportHeight, geometry.ViewportWidth)
	sv.SetSource(s.Source)

	inputs := s.Inputs()
	next := 0

	frame := 0
	t := 0.0
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		inv, ok := dynamo.AsInvariant(rec)
		if !ok {
			panic(rec)
		}
		logging.Logger().Warn("run aborted", "script", s.Name, "frame", frame, "time", t, "error", inv)
		r.collect(result)
		result.Partial = true
		err = &RunError{Frame: frame, Time: t, Err: inv}
	}()

	var prev scrollview.AxisVector
	for frame = 0; frame < frames; frame++ {
		select {
		case <-ctx.Done():
			r.collect(result)
			result.Partial = true
			return result, ctx.Err()
		default:
		}

		t = float64(frame) * interval
		for ; next < len(inputs) && inputs[next].At <= t; next++ {
			apply(sv, inputs[next])
		}

		pos := sv.Sample(t)
		f := Frame{
			Time:      t,
			Position:  pos,
			Animating: sv.Animating(),
		}
		if frame > 0 {
			f.Velocity = pos.Add(prev.Scale(-1)).Scale(1 / interval)
		}
		prev = pos

		for _, m := range r.metrics {
			m.Observe(f)
		}
		for _, obs := range r.observers {
			obs.OnFrame(f)
		}
		result.Frames = append(result.Frames, f)
	}

	r.collect(result)

	logging.Logger().Debug("run finished", "script", s.Name, "frames", len(result.Frames))
	return result, nil
}

func (r *Runner) collect(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func apply(sv *scrollview.Scrollview, in Input) {
	switch in.Kind {
	case KindPan:
		sv.PushPan(in.Axis, in.Delta, in.At)
	case KindFling:
		sv.PushFling(in.At)
	case KindInterrupt:
		sv.PushInterrupt(in.At)
	case KindSource:
		sv.SetSource(in.Source)
	}
}
