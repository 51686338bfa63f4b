package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/scrollsim/internal/config"
	"github.com/san-kum/scrollsim/internal/dynamo"
	"github.com/san-kum/scrollsim/internal/source"
)

func defaults() *config.Physics {
	p := config.DefaultPhysics()
	return &p
}

func expectInvariant(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		inv, ok := dynamo.AsInvariant(recover())
		require.True(t, ok, "expected an invariant panic")
		assert.True(t, errors.Is(inv, target), "got %v", inv)
	}()
	fn()
}

func TestDecay_Monotone(t *testing.T) {
	p := defaults()

	for _, v0 := range []float64{5, 0.05, -0.05, -3, 1e-6} {
		v := v0
		for i := 0; i < 200000 && v != 0; i++ {
			next := Decay(p, 0.1, v)
			require.LessOrEqual(t, math.Abs(next), math.Abs(v))
			if next != 0 {
				require.Equal(t, math.Signbit(v0), math.Signbit(next), "decay crossed zero")
			}
			v = next
		}
	}
}

func TestDecay_Floor(t *testing.T) {
	p := defaults()
	p.FrictionCoefficient = 10
	assert.Zero(t, Decay(p, 1, 0.5))
	assert.Zero(t, Decay(p, 1, -0.5))
	assert.Zero(t, Decay(p, 1, 0))
}

func TestDecay_Panics(t *testing.T) {
	p := defaults()
	expectInvariant(t, dynamo.ErrNonFinite, func() { Decay(p, 0.1, math.NaN()) })
	expectInvariant(t, dynamo.ErrNegativeInterval, func() { Decay(p, -0.1, 1) })

	p.FrictionCoefficient = -1
	expectInvariant(t, dynamo.ErrAccelerated, func() { Decay(p, 0.1, 1) })
}

func TestOverscroll_Attenuates(t *testing.T) {
	p := defaults()
	bounds := dynamo.Bounds{Lower: 0, Upper: 100}
	src := source.Touchscreen

	near := Overscroll(p, src, bounds, 120, 10)
	far := Overscroll(p, src, bounds, 150, 10)

	assert.Less(t, far, near)
	assert.LessOrEqual(t, near, 10.0)
	assert.InDelta(t, 10.0/50, far, 1e-12)

	// below one unit outside the factor is capped rather than amplifying
	assert.Equal(t, 10.0, Overscroll(p, src, bounds, 100.5, 10))
}

func TestOverscroll_Directions(t *testing.T) {
	p := defaults()
	bounds := dynamo.Bounds{Lower: 0, Upper: 100}

	tests := []struct {
		name string
		src  source.Source
		pos  float64
		v    float64
		want float64
	}{
		{"inside passes", source.Passthrough, 50, 3, 3},
		{"inward from bottom passes", source.Touchscreen, 150, -4, -4},
		{"inward from top passes", source.Touchscreen, -20, 4, 4},
		{"outward at top attenuates", source.Touchscreen, -20, -4, -0.2},
		{"outward without overscroll stops", source.Mousewheel, 150, 4, 0},
		{"outward at top without overscroll stops", source.Mousewheel, -5, -4, 0},
		{"inward without overscroll passes", source.Mousewheel, 150, -4, -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Overscroll(p, tt.src, bounds, tt.pos, tt.v), 1e-12)
		})
	}
}

func TestAccelerate(t *testing.T) {
	p := defaults()

	assert.Equal(t, 0.3, Accelerate(p, source.Touchscreen, 0.3))

	fast := Accelerate(p, source.Touchpad, 1.0)
	slow := Accelerate(p, source.Touchpad, 0.25)
	assert.Greater(t, fast, 1.0)
	assert.Less(t, slow, 0.25)
	assert.InDelta(t, p.AccelDiscriminant, Accelerate(p, source.Touchpad, p.AccelDiscriminant), 1e-12)
	assert.InDelta(t, -fast, Accelerate(p, source.Touchpad, -1.0), 1e-12)
}

func TestTrack(t *testing.T) {
	p := defaults()
	bounds := dynamo.Bounds{Lower: 0, Upper: 100}

	got := Track(p, source.Touchscreen, bounds, 50, 0.005)
	assert.InDelta(t, 0.005*p.PreAccelScale*p.PostAccelScale, got, 1e-12)
	assert.InDelta(t, 0.0625, FlingBoost(p, 0.05), 1e-12)
}

func TestBounce(t *testing.T) {
	p := defaults()
	bounds := dynamo.Bounds{Lower: 0, Upper: 100}

	var b BounceState
	assert.Equal(t, 2.0, b.Step(p, bounds, 0.1, 50, 2))
	_, bouncing := b.Edge()
	assert.False(t, bouncing)

	v := b.Step(p, bounds, 0.1, 150, 0)
	edge, bouncing := b.Edge()
	require.True(t, bouncing)
	assert.Equal(t, dynamo.Bottom, edge)
	assert.Less(t, v, 0.0, "spring should pull back toward the upper bound")

	// latched even once back inside
	v = b.Step(p, bounds, 0.1, 99, 1)
	assert.Less(t, v, 1.0)
	assert.Equal(t, "bouncing(bottom)", b.String())

	b.Reset()
	b.Step(p, bounds, 0.1, -10, 0)
	edge, _ = b.Edge()
	assert.Equal(t, dynamo.Top, edge)
}

func TestBounce_Panics(t *testing.T) {
	p := defaults()
	bounds := dynamo.Bounds{Lower: 0, Upper: 100}
	var b BounceState
	expectInvariant(t, dynamo.ErrNonFinite, func() { b.Step(p, bounds, 0.1, 150, math.Inf(1)) })
}
