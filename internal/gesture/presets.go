package gesture

import (
	"sort"

	"github.com/san-kum/scrollsim/internal/scrollview"
	"github.com/san-kum/scrollsim/internal/source"
)

// Presets are built-in gestures runnable by name.
var Presets = map[string]func() *Script{
	"flick": func() *Script {
		return &Script{
			Name:       "flick",
			Source:     source.Touchscreen,
			DurationMs: 2000,
			Steps: []Step{
				{AtMs: 10, Kind: KindDrag, Delta: 120, UntilMs: 90},
				{AtMs: 90, Kind: KindFling},
			},
		}
	},
	"slow-drag": func() *Script {
		return &Script{
			Name:       "slow-drag",
			Source:     source.Touchscreen,
			DurationMs: 1500,
			Steps: []Step{
				{AtMs: 10, Kind: KindDrag, Delta: 200, UntilMs: 1010, RateHz: 60},
				{AtMs: 1010, Kind: KindInterrupt},
			},
		}
	},
	"overscroll-pull": func() *Script {
		return &Script{
			Name:       "overscroll-pull",
			Source:     source.Touchscreen,
			DurationMs: 3000,
			Steps: []Step{
				{AtMs: 10, Kind: KindDrag, Delta: -150, UntilMs: 310},
				{AtMs: 310, Kind: KindFling},
			},
		}
	},
	"wheel-ticks": func() *Script {
		steps := make([]Step, 0, 6)
		for i := 1; i <= 5; i++ {
			steps = append(steps, Step{AtMs: float64(i) * 40, Kind: KindPan, Delta: 40})
		}
		steps = append(steps, Step{AtMs: 240, Kind: KindFling})
		return &Script{
			Name:       "wheel-ticks",
			Source:     source.Mousewheel,
			DurationMs: 600,
			Steps:      steps,
		}
	},
	"touchpad-diagonal": func() *Script {
		return &Script{
			Name:       "touchpad-diagonal",
			Source:     source.Touchpad,
			DurationMs: 2000,
			Steps: []Step{
				{AtMs: 10, Kind: KindDrag, Axis: scrollview.Vertical, Delta: 90, UntilMs: 110},
				{AtMs: 10, Kind: KindDrag, Axis: scrollview.Horizontal, Delta: 40, UntilMs: 110},
				{AtMs: 110, Kind: KindFling},
			},
		}
	},
}

// GetPreset returns a fresh copy of the named gesture.
func GetPreset(name string) (*Script, bool) {
	build, ok := Presets[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
