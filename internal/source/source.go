// Package source names the input devices that feed pan and fling events and
// what each one expects from the scroll physics.
package source

import (
	"fmt"
	"strings"

	"github.com/san-kum/scrollsim/internal/dynamo"
)

// Source is the kind of device that produced a stream of events.
type Source uint8

const (
	// Undefined is an unknown device. It behaves like KineticPassthrough.
	Undefined Source = iota
	// Touchscreen tracks the finger 1:1 and allows overscroll.
	Touchscreen
	// Touchpad accelerates input and allows overscroll.
	Touchpad
	// Mousewheel reports coarse detents and never flings.
	Mousewheel
	// PreciseMousewheel reports fine deltas and flings on release.
	PreciseMousewheel
	// Passthrough applies no smoothing, acceleration or fling.
	Passthrough
	// KineticPassthrough is Passthrough that flings on release.
	KineticPassthrough
	// Previous keeps whatever source was declared last.
	Previous
)

var _ dynamo.Capabilities = Source(0)

type traits struct {
	name        string
	overscrolls bool
	accelerates bool
	kinetic     bool
}

var table = [...]traits{
	Undefined:          {"undefined", false, false, true},
	Touchscreen:        {"touchscreen", true, false, true},
	Touchpad:           {"touchpad", true, true, true},
	Mousewheel:         {"mousewheel", false, false, false},
	PreciseMousewheel:  {"precise-mousewheel", false, false, true},
	Passthrough:        {"passthrough", false, false, false},
	KineticPassthrough: {"kinetic-passthrough", false, false, true},
	Previous:           {"previous", false, false, true},
}

func (s Source) traits() traits {
	if int(s) >= len(table) {
		return table[Undefined]
	}
	return table[s]
}

func (s Source) Overscrolls() bool { return s.traits().overscrolls }
func (s Source) Accelerates() bool { return s.traits().accelerates }
func (s Source) Kinetic() bool     { return s.traits().kinetic }

func (s Source) String() string {
	if int(s) >= len(table) {
		return fmt.Sprintf("source(%d)", uint8(s))
	}
	return table[s].name
}

// All lists every concrete device, excluding Previous.
func All() []Source {
	return []Source{Undefined, Touchscreen, Touchpad, Mousewheel, PreciseMousewheel, Passthrough, KineticPassthrough}
}

// Parse accepts the names printed by String, case-insensitively. Underscores
// may stand in for dashes.
func Parse(name string) (Source, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for i, t := range table {
		if t.name == key {
			return Source(i), nil
		}
	}
	return Undefined, fmt.Errorf("unknown source: %q", name)
}

func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Source) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
