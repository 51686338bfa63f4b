package interpolator

import (
	"fmt"

	"github.com/san-kum/scrollsim/internal/dynamo"
)

// PhaseKind is the coarse lifecycle stage of an axis.
type PhaseKind uint8

const (
	// Inactive: nothing to animate, sampling returns the resting position.
	Inactive PhaseKind = iota
	// Interpolating: a finger is down and events are being tracked.
	Interpolating
	// Released: the finger lifted and the content is coasting.
	Released
)

func (k PhaseKind) String() string {
	switch k {
	case Inactive:
		return "inactive"
	case Interpolating:
		return "interpolating"
	case Released:
		return "released"
	default:
		return fmt.Sprintf("phase(%d)", uint8(k))
	}
}

// Phase is the state machine value of an Interpolator. The release time is
// only meaningful while Released.
type Phase struct {
	kind       PhaseKind
	releasedAt dynamo.Time
}

func (p Phase) Kind() PhaseKind {
	return p.kind
}

// ReleasedAt returns the fling timestamp when the phase is Released.
func (p Phase) ReleasedAt() (dynamo.Time, bool) {
	if p.kind != Released {
		return 0, false
	}
	return p.releasedAt, true
}

func (p Phase) String() string {
	if p.kind == Released {
		return fmt.Sprintf("released(%g)", p.releasedAt)
	}
	return p.kind.String()
}

func inactive() Phase               { return Phase{kind: Inactive} }
func interpolating() Phase          { return Phase{kind: Interpolating} }
func released(at dynamo.Time) Phase { return Phase{kind: Released, releasedAt: at} }
