package config

import "sort"

// Presets are named physics tunings on top of DefaultPhysics.
var Presets = map[string]func(p *Physics){
	"default": func(p *Physics) {},
	"snappy": func(p *Physics) {
		p.FrictionCoefficient = 0.0003
		p.FlingBoost = 1.1
		p.SpringConstant = 0.8
		p.BounceDamping = 0.995
	},
	"floaty": func(p *Physics) {
		p.FrictionCoefficient = 0.00003
		p.FrictionExponent = 1.1
		p.FlingBoost = 1.5
		p.FlipsToIdle = 40
	},
	"stiff": func(p *Physics) {
		p.OverscrollElasticity = 4.0
		p.SpringConstant = 2.0
		p.BounceDamping = 0.99
	},
}

// GetPreset returns DefaultPhysics with the named preset applied.
func GetPreset(name string) (Physics, bool) {
	apply, ok := Presets[name]
	if !ok {
		return Physics{}, false
	}
	p := DefaultPhysics()
	apply(&p)
	return p, true
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
