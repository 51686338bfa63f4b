package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/scrollsim/internal/config"
	"github.com/san-kum/scrollsim/internal/dynamo"
)

// Decay applies friction for dt. The magnitude shrinks by
// k*|v|^(p-1)*dt, floors at zero and keeps its sign. Decay panics on a NaN
// velocity, a negative dt, or a result larger in magnitude than v.
func Decay(p *config.Physics, dt float64, v dynamo.Velocity) dynamo.Velocity {
	if math.IsNaN(v) {
		dynamo.Fail("physics.decay", fmt.Errorf("%w: velocity is NaN", dynamo.ErrNonFinite))
	}
	if v == 0 {
		return 0
	}
	if dt < 0 {
		dynamo.Fail("physics.decay", fmt.Errorf("%w: dt=%v", dynamo.ErrNegativeInterval, dt))
	}

	abs := math.Abs(v)
	slope := -p.FrictionCoefficient * math.Pow(abs, p.FrictionExponent-1)
	next := dynamo.MustFinite("physics.decay", "velocity", abs+slope*dt)

	if next <= 0 {
		return 0
	}
	if next > abs {
		dynamo.Fail("physics.decay", fmt.Errorf("%w: %v -> %v", dynamo.ErrAccelerated, abs, next))
	}
	return math.Copysign(next, v)
}

// Overscroll limits tracked velocity while the content sits outside bounds.
// Velocity back toward the bounds always passes. With an overscroll capable
// source outward velocity is divided by the distance outside, never
// amplified; without one it is dropped.
func Overscroll(p *config.Physics, caps dynamo.Capabilities, bounds dynamo.Bounds, pos dynamo.Position, v dynamo.Velocity) dynamo.Velocity {
	var outsideBy float64
	switch {
	case pos > bounds.Upper:
		if v < 0 {
			return v
		}
		outsideBy = pos - bounds.Upper
	case pos < bounds.Lower:
		if v > 0 {
			return v
		}
		outsideBy = bounds.Lower - pos
	default:
		return v
	}

	if !caps.Overscrolls() {
		return 0
	}

	factor := math.Min(1, 1/(outsideBy*p.OverscrollElasticity))
	return dynamo.MustFinite("physics.overscroll", "velocity", v*factor)
}

// Accelerate applies the pointer acceleration curve sign(v)*(|v|/d)^e*d for
// sources that want it. Speeds below the discriminant d are slowed and speeds
// above it amplified.
func Accelerate(p *config.Physics, caps dynamo.Capabilities, v dynamo.Velocity) dynamo.Velocity {
	if !caps.Accelerates() {
		return v
	}
	d := p.AccelDiscriminant
	return math.Copysign(math.Pow(math.Abs(v/d), p.AccelerationExponent), v) * d
}

func PreScale(p *config.Physics, v dynamo.Velocity) dynamo.Velocity {
	return v * p.PreAccelScale
}

func PostScale(p *config.Physics, v dynamo.Velocity) dynamo.Velocity {
	return v * p.PostAccelScale
}

// FlingBoost is applied once, on the step that contains the release.
func FlingBoost(p *config.Physics, v dynamo.Velocity) dynamo.Velocity {
	return v * p.FlingBoost
}

// Track runs the full contact-phase pipeline on a raw sampled velocity.
func Track(p *config.Physics, caps dynamo.Capabilities, bounds dynamo.Bounds, pos dynamo.Position, v dynamo.Velocity) dynamo.Velocity {
	return PostScale(p, Overscroll(p, caps, bounds, pos, Accelerate(p, caps, PreScale(p, v))))
}
