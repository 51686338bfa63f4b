package integrators

import (
	"fmt"
	"sort"
)

// Integrator advances a position across one interval given the velocity at
// its start (v0) and at its end (v1). Velocities are expressed per timestep.
type Integrator interface {
	Step(pos, v0, v1, timestep float64, iv Interval) float64
}

// Trapezoid integrates the average of the two endpoint velocities.
type Trapezoid struct{}

func NewTrapezoid() *Trapezoid {
	return &Trapezoid{}
}

func (Trapezoid) Step(pos, v0, v1, timestep float64, iv Interval) float64 {
	return pos + ((v0+v1)/2)/timestep*iv.Width()
}

// Euler integrates the end velocity only. It responds a half step sooner than
// Trapezoid at the cost of overshooting on sharp velocity changes.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (Euler) Step(pos, v0, v1, timestep float64, iv Interval) float64 {
	return pos + v1/timestep*iv.Width()
}

var registry = map[string]func() Integrator{
	"trapezoid": func() Integrator { return NewTrapezoid() },
	"euler":     func() Integrator { return NewEuler() },
}

// Get returns the integrator registered under name.
func Get(name string) (Integrator, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return factory(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
