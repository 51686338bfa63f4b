// Package scrollview pairs two interpolators into a scrollable region with
// content and viewport geometry and a declared input device.
package scrollview

import (
	"math"

	"github.com/san-kum/scrollsim/internal/dynamo"
	"github.com/san-kum/scrollsim/internal/history"
	"github.com/san-kum/scrollsim/internal/interpolator"
	"github.com/san-kum/scrollsim/internal/logging"
	"github.com/san-kum/scrollsim/internal/source"
)

// InputLogFrames is how many frames of input counts InputRate averages over.
const InputLogFrames = 10

// Geometry is the size of the content and of the window onto it.
type Geometry struct {
	ContentHeight  float64
	ContentWidth   float64
	ViewportHeight float64
	ViewportWidth  float64
}

// Bounds returns the scroll range of each axis. Content smaller than the
// viewport cannot scroll.
func (g Geometry) Bounds() (x, y dynamo.Bounds) {
	x = dynamo.Bounds{Upper: math.Max(0, g.ContentWidth-g.ViewportWidth)}
	y = dynamo.Bounds{Upper: math.Max(0, g.ContentHeight-g.ViewportHeight)}
	return x, y
}

// Scrollview tracks all scroll state of one scrollable region. It is not
// safe for concurrent use.
type Scrollview struct {
	geometry Geometry
	current  source.Source

	inputLog      *history.Queue[history.Timed]
	pansThisFrame int

	x *interpolator.Interpolator
	y *interpolator.Interpolator
}

// New creates a scrollview with empty geometry. opts apply to both axes.
func New(opts ...interpolator.Option) *Scrollview {
	sv := &Scrollview{
		current:  source.Undefined,
		inputLog: history.New[history.Timed](InputLogFrames),
		x:        interpolator.New(false, dynamo.Bounds{}, 0, opts...),
		y:        interpolator.New(false, dynamo.Bounds{}, 0, opts...),
	}
	sv.current = sourceOf(sv.y)
	return sv
}

func sourceOf(in *interpolator.Interpolator) source.Source {
	if s, ok := in.Source().(source.Source); ok {
		return s
	}
	return source.Undefined
}

// SetGeometry sets content and viewport sizes. Call it on creation and on
// every resize.
func (sv *Scrollview) SetGeometry(contentHeight, contentWidth, viewportHeight, viewportWidth float64) {
	sv.geometry = Geometry{
		ContentHeight:  contentHeight,
		ContentWidth:   contentWidth,
		ViewportHeight: viewportHeight,
		ViewportWidth:  viewportWidth,
	}
	x, y := sv.geometry.Bounds()
	sv.x.SetGeometry(x.Lower, x.Upper)
	sv.y.SetGeometry(y.Lower, y.Upper)
}

func (sv *Scrollview) Geometry() Geometry {
	return sv.geometry
}

// SetSource declares the device for the events that follow. source.Previous
// keeps the current one.
func (sv *Scrollview) SetSource(src source.Source) {
	if src == source.Previous {
		return
	}
	if src != sv.current {
		logging.Logger().Debug("input source changed", "from", sv.current.String(), "to", src.String())
	}
	sv.current = src
	sv.x.SetSource(src)
	sv.y.SetSource(src)
}

func (sv *Scrollview) Source() source.Source {
	return sv.current
}

// PushPan enqueues a pan of amount along axis.
func (sv *Scrollview) PushPan(axis Axis, amount float64, ts dynamo.Time) {
	sv.pansThisFrame++
	sv.axis(axis).SignalPan(ts, amount)
}

// PushFling releases both axes. A device that does not fling interrupts
// instead, so the content stops where the last pan left it.
func (sv *Scrollview) PushFling(ts dynamo.Time) {
	if !sv.current.Kinetic() {
		sv.PushInterrupt(ts)
		return
	}
	sv.x.SignalFling(ts)
	sv.y.SignalFling(ts)
}

// PushInterrupt stops both axes, as on finger down.
func (sv *Scrollview) PushInterrupt(ts dynamo.Time) {
	sv.x.SignalInterrupt(ts)
	sv.y.SignalInterrupt(ts)
}

// Sample returns the content offset at ts and closes the current input
// frame.
func (sv *Scrollview) Sample(ts dynamo.Time) AxisVector {
	v := AxisVector{
		X: sv.x.Sample(ts),
		Y: sv.y.Sample(ts),
	}

	var stamp uint64
	if ts > 0 {
		stamp = uint64(ts)
	}
	sv.inputLog.Push(history.Timed{Time: stamp, Value: float64(sv.pansThisFrame)})
	sv.pansThisFrame = 0

	return v
}

// InputRate is the mean number of pans per sampled frame over the last
// InputLogFrames frames. Frames not yet seen count as the average of those
// that were.
func (sv *Scrollview) InputRate() float64 {
	if sv.inputLog.Empty() {
		return 0
	}
	sum := 0.0
	for pos := 0; pos < sv.inputLog.Capacity(); pos++ {
		sum += history.GetOrAverage(sv.inputLog, pos).Value
	}
	return sum / float64(sv.inputLog.Capacity())
}

// Animating reports whether either axis needs sampling without new input.
func (sv *Scrollview) Animating() bool {
	return sv.x.Animating() || sv.y.Animating()
}

func (sv *Scrollview) X() *interpolator.Interpolator { return sv.x }
func (sv *Scrollview) Y() *interpolator.Interpolator { return sv.y }

func (sv *Scrollview) axis(a Axis) *interpolator.Interpolator {
	if a == Horizontal {
		return sv.x
	}
	return sv.y
}
