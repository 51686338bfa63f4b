package physics

import (
	"fmt"

	"github.com/san-kum/scrollsim/internal/config"
	"github.com/san-kum/scrollsim/internal/dynamo"
)

// BounceState remembers which edge, if any, the content last crossed. Once
// set it stays set through the rest of the fling; the interpolator resets it
// when tracking resumes.
type BounceState struct {
	bouncing bool
	edge     dynamo.Edge
}

// Edge reports the edge being bounced against.
func (b BounceState) Edge() (dynamo.Edge, bool) {
	return b.edge, b.bouncing
}

func (b *BounceState) Reset() {
	*b = BounceState{}
}

func (b BounceState) String() string {
	if !b.bouncing {
		return "normal"
	}
	return "bouncing(" + b.edge.String() + ")"
}

// Step applies the overscroll spring for dt. Crossing a bound latches the
// state to that edge. While bouncing, the displacement from the latched edge
// produces a restoring acceleration -x*k/m and the result is damped.
func (b *BounceState) Step(p *config.Physics, bounds dynamo.Bounds, dt float64, pos dynamo.Position, v dynamo.Velocity) dynamo.Velocity {
	if !bounds.Contains(pos) {
		b.bouncing = true
		if pos > bounds.Upper {
			b.edge = dynamo.Bottom
		} else {
			b.edge = dynamo.Top
		}
	}

	if !b.bouncing {
		return v
	}
	if !dynamo.IsFinite(v) {
		dynamo.Fail("physics.bounce", fmt.Errorf("%w: input velocity is %v", dynamo.ErrNonFinite, v))
	}

	bound := bounds.Lower
	if b.edge == dynamo.Bottom {
		bound = bounds.Upper
	}
	displacement := pos - bound
	accel := -displacement * p.SpringConstant / p.ContentMass
	next := (v + accel*dt) * p.BounceDamping

	return dynamo.MustFinite("physics.bounce", "velocity", next)
}
