// Package interpolator converts the pan, fling and interrupt signals of one
// scroll axis into a position that can be sampled at any time.
//
// An Interpolator is driven by two kinds of calls: signals (SignalPan,
// SignalFling, SignalInterrupt) whenever input arrives, and Sample once per
// rendered frame. Sample integrates the axis velocity in fixed timesteps from
// the previous sample to the requested time, so calling it at irregular frame
// intervals yields the same trajectory as calling it at regular ones.
//
// An Interpolator is not safe for concurrent use.
package interpolator

import (
	"fmt"
	"math"
	"slices"

	"github.com/san-kum/scrollsim/internal/config"
	"github.com/san-kum/scrollsim/internal/curve"
	"github.com/san-kum/scrollsim/internal/dynamo"
	"github.com/san-kum/scrollsim/internal/integrators"
	"github.com/san-kum/scrollsim/internal/logging"
	"github.com/san-kum/scrollsim/internal/physics"
	"github.com/san-kum/scrollsim/internal/source"
)

type Interpolator struct {
	redistributable bool

	events  []dynamo.Event
	samples []dynamo.Sample
	phase   Phase

	bounds  dynamo.Bounds
	initial dynamo.Position
	bounce  physics.BounceState

	minTickPeriod float64
	lastValue     dynamo.Position
	flips         int

	caps     dynamo.Capabilities
	tunables config.Snapshotter
	integ    integrators.Integrator
}

type Option func(*Interpolator)

// WithTunables reads physics from s on every Sample. The default is a fixed
// copy of config.DefaultPhysics.
func WithTunables(s config.Snapshotter) Option {
	return func(in *Interpolator) {
		if s != nil {
			in.tunables = s
		}
	}
}

// WithSource sets the initial device capabilities.
func WithSource(caps dynamo.Capabilities) Option {
	return func(in *Interpolator) {
		in.SetSource(caps)
	}
}

// WithIntegrator replaces the default trapezoidal position step.
func WithIntegrator(integ integrators.Integrator) Option {
	return func(in *Interpolator) {
		if integ != nil {
			in.integ = integ
		}
	}
}

// New creates an Inactive interpolator for a track spanning bounds whose
// content rests at initial.
func New(redistributable bool, bounds dynamo.Bounds, initial dynamo.Position, opts ...Option) *Interpolator {
	defaults := config.DefaultPhysics()
	in := &Interpolator{
		redistributable: redistributable,
		events:          make([]dynamo.Event, 0, 8),
		phase:           inactive(),
		bounds:          bounds,
		initial:         initial,
		minTickPeriod:   math.Inf(1),
		caps:            source.Undefined,
		tunables:        (*config.Static)(&defaults),
		integ:           integrators.NewTrapezoid(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Sample returns the position of the axis at time.
func (in *Interpolator) Sample(time dynamo.Time) dynamo.Position {
	dynamo.MustFinite("interpolator.sample", "time", time)
	p := in.tunables.Snapshot()

	in.preventCoast(p, time)

	last := dynamo.Sample{Time: time}
	if n := len(in.samples); n > 0 {
		last = in.samples[n-1]
	}

	pos, v0 := last.Position, last.Velocity
	for iv := range integrators.Partition(last.Time+p.ShiftWindow, time+p.ShiftWindow, p.Timestep) {
		v1 := in.stepVelocity(p, iv, pos, v0)
		pos = in.integ.Step(pos, v0, v1, p.Timestep, iv)

		dynamo.MustFinite("interpolator.sample", "velocity", v1)
		dynamo.MustFinite("interpolator.sample", "position", pos)
		v0 = v1
	}

	in.samples = append(in.samples, dynamo.Sample{Time: time, Position: pos, Velocity: v0})

	in.cull(p)
	in.checkIdle(p, pos, v0)

	return pos
}

// SignalPan records a pan of delta at time. Zero is not a valid timestamp.
//
// A pan that does not come strictly after the previous one replaces it, and
// every sample computed from the replaced event is discarded.
func (in *Interpolator) SignalPan(time dynamo.Time, delta float64) {
	if time == 0 {
		dynamo.Fail("interpolator.pan", dynamo.ErrZeroTimestamp)
	}
	dynamo.MustFinite("interpolator.pan", "time", time)
	dynamo.MustFinite("interpolator.pan", "delta", delta)

	in.phase = interpolating()

	prev := dynamo.Event{Time: math.Inf(-1), Value: in.initial}
	if n := len(in.events); n > 0 {
		prev = in.events[n-1]
	}

	if gap := time - prev.Time; gap <= 0 {
		in.samples = slices.DeleteFunc(in.samples, func(s dynamo.Sample) bool {
			return s.Time >= prev.Time
		})
		in.events = in.events[:len(in.events)-1]
		logging.Logger().Debug("pan out of order, replacing previous event",
			"time", time, "previous", prev.String())
	} else {
		in.minTickPeriod = gap
	}

	in.events = append(in.events, dynamo.Event{Time: time, Value: prev.Value + delta})
}

// SignalFling marks the finger lift at time.
func (in *Interpolator) SignalFling(time dynamo.Time) {
	in.phase = released(time)
}

// SignalInterrupt stops any animation, as when a finger lands on moving
// content.
func (in *Interpolator) SignalInterrupt(time dynamo.Time) {
	in.phase = inactive()
	in.flush(time)
	in.minTickPeriod = math.Inf(1)
}

// SetGeometry moves the track bounds. It takes effect on the next step.
func (in *Interpolator) SetGeometry(lower, upper dynamo.Position) {
	in.bounds = dynamo.Bounds{Lower: lower, Upper: upper}
}

// SetSource replaces the device capabilities. nil restores source.Undefined.
func (in *Interpolator) SetSource(caps dynamo.Capabilities) {
	if caps == nil {
		caps = source.Undefined
	}
	in.caps = caps
}

// Animating reports whether the axis still needs to be sampled without new
// input.
func (in *Interpolator) Animating() bool {
	return in.phase.kind != Inactive
}

func (in *Interpolator) Phase() Phase                     { return in.phase }
func (in *Interpolator) Bounds() dynamo.Bounds            { return in.bounds }
func (in *Interpolator) Redistributable() bool            { return in.redistributable }
func (in *Interpolator) MinTickPeriod() float64           { return in.minTickPeriod }
func (in *Interpolator) Source() dynamo.Capabilities      { return in.caps }
func (in *Interpolator) BounceState() physics.BounceState { return in.bounce }
func (in *Interpolator) Events() []dynamo.Event           { return slices.Clone(in.events) }
func (in *Interpolator) Samples() []dynamo.Sample         { return slices.Clone(in.samples) }

// Current returns the most recent sample.
func (in *Interpolator) Current() (dynamo.Sample, bool) {
	if len(in.samples) == 0 {
		return dynamo.Sample{}, false
	}
	return in.samples[len(in.samples)-1], true
}

func (in *Interpolator) String() string {
	return fmt.Sprintf("interpolator{phase=%s bounds=[%g, %g] events=%d samples=%d}",
		in.phase, in.bounds.Lower, in.bounds.Upper, len(in.events), len(in.samples))
}

func (in *Interpolator) stepVelocity(p *config.Physics, iv integrators.Interval, pos dynamo.Position, v0 dynamo.Velocity) dynamo.Velocity {
	if at, ok := in.phase.ReleasedAt(); ok {
		switch {
		case iv.Start <= at && at < iv.End:
			return physics.FlingBoost(p, v0)
		case at < iv.Start:
			v := in.bounce.Step(p, in.bounds, iv.Width(), pos, v0)
			return physics.Decay(p, iv.Width(), v)
		}
	}

	if in.phase.kind == Inactive {
		return 0
	}

	in.bounce.Reset()
	return physics.Track(p, in.caps, in.bounds, pos, in.sampleVelocity(p, iv))
}

// sampleVelocity is the change of the event curve across iv, weighted by the
// interval width.
func (in *Interpolator) sampleVelocity(p *config.Physics, iv integrators.Interval) dynamo.Velocity {
	from := curve.At(in.events, iv.Start, p.MaxGapWithoutZero)
	to := curve.At(in.events, iv.End, p.MaxGapWithoutZero)
	return (to - from) * iv.Width()
}

// preventCoast interrupts tracking when input has stalled, so a finger that
// stopped without lifting does not keep the content sliding.
func (in *Interpolator) preventCoast(p *config.Physics, time dynamo.Time) {
	if in.phase.kind != Interpolating || len(in.events) == 0 {
		return
	}

	last := in.events[len(in.events)-1]
	delta := math.Abs(time - last.Time)
	if delta > in.minTickPeriod*p.TicksToCoast || delta > p.MaxGapWithoutZero {
		logging.Logger().Debug("input stalled, interrupting",
			"time", time, "last_event", last.String(), "min_tick_period", in.minTickPeriod)
		in.SignalInterrupt(time)
	}
}

func (in *Interpolator) checkIdle(p *config.Physics, pos dynamo.Position, v dynamo.Velocity) {
	switch in.phase.kind {
	case Released:
		if pos == in.lastValue || math.Abs(v) < p.MinVelocityToIdle {
			in.flips++
		} else {
			in.flips = 0
		}
		in.lastValue = pos

		if in.flips > p.FlipsToIdle {
			logging.Logger().Debug("fling settled", "position", pos, "velocity", v)
			in.phase = inactive()
		}
	case Interpolating:
		in.flips = 0
	}
}

func (in *Interpolator) cull(p *config.Physics) {
	if n := len(in.samples) - p.SampleExpiryCount; n > 0 {
		in.samples = slices.Delete(in.samples, 0, n)
	}
	if n := len(in.events) - p.EventExpiryCount; n > 0 {
		in.events = slices.Delete(in.events, 0, n)
	}
}

// flush ends a gesture. Events and samples are kept so that a new gesture
// continues from the resting position.
func (in *Interpolator) flush(time dynamo.Time) {
	logging.Logger().Debug("gesture flushed", "time", time, "events", len(in.events))
}
