package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/scrollsim/internal/source"
)

const (
	DefaultTimestep       = 0.1
	DefaultEventExpiry    = 20
	DefaultSampleExpiry   = 20
	DefaultTicksToCoast   = 1.6
	DefaultMaxGap         = 150.0
	DefaultFlipsToIdle    = 20
	DefaultMinIdleVel     = 0.002
	DefaultPreScale       = 10.0
	DefaultPostScale      = 1.0
	DefaultDiscriminant   = 0.5
	DefaultAccelExponent  = 1.4
	DefaultFrictionCoeff  = 0.00009
	DefaultFrictionExp    = 1.3
	DefaultFlingBoost     = 1.25
	DefaultElasticity     = 1.0
	DefaultSpringConstant = 0.4
	DefaultContentMass    = 6000.0
	DefaultBounceDamping  = 0.9974
	DefaultFrameRate      = 60
)

// Physics holds the tunables read at the start of every physics computation.
// A *Physics handed out by a Store is a snapshot and must not be mutated.
type Physics struct {
	Timestep             float64 `yaml:"timestep"`
	ShiftWindow          float64 `yaml:"shift_window"`
	EventExpiryCount     int     `yaml:"event_expiry_count"`
	SampleExpiryCount    int     `yaml:"sample_expiry_count"`
	TicksToCoast         float64 `yaml:"ticks_to_coast"`
	MaxGapWithoutZero    float64 `yaml:"max_gap_without_zero"`
	FlipsToIdle          int     `yaml:"flips_to_idle"`
	MinVelocityToIdle    float64 `yaml:"min_velocity_to_idle"`
	PreAccelScale        float64 `yaml:"pre_accel_scale"`
	PostAccelScale       float64 `yaml:"post_accel_scale"`
	AccelDiscriminant    float64 `yaml:"accel_discriminant"`
	AccelerationExponent float64 `yaml:"acceleration_exponent"`
	FrictionCoefficient  float64 `yaml:"friction_coefficient"`
	FrictionExponent     float64 `yaml:"friction_exponent"`
	FlingBoost           float64 `yaml:"fling_boost"`
	OverscrollElasticity float64 `yaml:"overscroll_elasticity"`
	SpringConstant       float64 `yaml:"spring_constant"`
	ContentMass          float64 `yaml:"content_mass"`
	BounceDamping        float64 `yaml:"bounce_damping"`
}

// SimConfig describes the simulated frame clock and scrollview geometry used
// by the lab commands.
type SimConfig struct {
	FrameRate      int     `yaml:"frame_rate"`
	ContentHeight  float64 `yaml:"content_height"`
	ContentWidth   float64 `yaml:"content_width"`
	ViewportHeight float64 `yaml:"viewport_height"`
	ViewportWidth  float64 `yaml:"viewport_width"`
	Source         string  `yaml:"source"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Config is the top-level yaml file.
type Config struct {
	Physics Physics       `yaml:"physics"`
	Sim     SimConfig     `yaml:"sim"`
	Logging LoggingConfig `yaml:"logging"`
}

func DefaultPhysics() Physics {
	return Physics{
		Timestep:             DefaultTimestep,
		EventExpiryCount:     DefaultEventExpiry,
		SampleExpiryCount:    DefaultSampleExpiry,
		TicksToCoast:         DefaultTicksToCoast,
		MaxGapWithoutZero:    DefaultMaxGap,
		FlipsToIdle:          DefaultFlipsToIdle,
		MinVelocityToIdle:    DefaultMinIdleVel,
		PreAccelScale:        DefaultPreScale,
		PostAccelScale:       DefaultPostScale,
		AccelDiscriminant:    DefaultDiscriminant,
		AccelerationExponent: DefaultAccelExponent,
		FrictionCoefficient:  DefaultFrictionCoeff,
		FrictionExponent:     DefaultFrictionExp,
		FlingBoost:           DefaultFlingBoost,
		OverscrollElasticity: DefaultElasticity,
		SpringConstant:       DefaultSpringConstant,
		ContentMass:          DefaultContentMass,
		BounceDamping:        DefaultBounceDamping,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Physics: DefaultPhysics(),
		Sim: SimConfig{
			FrameRate:      DefaultFrameRate,
			ContentHeight:  4000,
			ContentWidth:   800,
			ViewportHeight: 800,
			ViewportWidth:  800,
			Source:         "touchscreen",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Validate reports every tunable that would break the physics, joined into a
// single error.
func (p Physics) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	for name, v := range p.floats() {
		check(!math.IsNaN(v) && !math.IsInf(v, 0), "%s must be finite, got %v", name, v)
	}
	check(p.Timestep > 0, "timestep must be positive, got %v", p.Timestep)
	check(p.EventExpiryCount >= 1, "event_expiry_count must be at least 1, got %d", p.EventExpiryCount)
	check(p.SampleExpiryCount >= 1, "sample_expiry_count must be at least 1, got %d", p.SampleExpiryCount)
	check(p.TicksToCoast > 0, "ticks_to_coast must be positive, got %v", p.TicksToCoast)
	check(p.MaxGapWithoutZero > 0, "max_gap_without_zero must be positive, got %v", p.MaxGapWithoutZero)
	check(p.FlipsToIdle >= 0, "flips_to_idle must not be negative, got %d", p.FlipsToIdle)
	check(p.MinVelocityToIdle >= 0, "min_velocity_to_idle must not be negative, got %v", p.MinVelocityToIdle)
	check(p.AccelDiscriminant > 0, "accel_discriminant must be positive, got %v", p.AccelDiscriminant)
	check(p.FrictionCoefficient >= 0, "friction_coefficient must not be negative, got %v", p.FrictionCoefficient)
	check(p.FrictionExponent >= 1, "friction_exponent must be at least 1, got %v", p.FrictionExponent)
	check(p.FlingBoost > 0, "fling_boost must be positive, got %v", p.FlingBoost)
	check(p.OverscrollElasticity > 0, "overscroll_elasticity must be positive, got %v", p.OverscrollElasticity)
	check(p.ContentMass > 0, "content_mass must be positive, got %v", p.ContentMass)
	check(p.BounceDamping > 0 && p.BounceDamping <= 1, "bounce_damping must be in (0, 1], got %v", p.BounceDamping)

	return errors.Join(errs...)
}

func (p Physics) floats() map[string]float64 {
	return map[string]float64{
		"timestep":              p.Timestep,
		"shift_window":          p.ShiftWindow,
		"ticks_to_coast":        p.TicksToCoast,
		"max_gap_without_zero":  p.MaxGapWithoutZero,
		"min_velocity_to_idle":  p.MinVelocityToIdle,
		"pre_accel_scale":       p.PreAccelScale,
		"post_accel_scale":      p.PostAccelScale,
		"accel_discriminant":    p.AccelDiscriminant,
		"acceleration_exponent": p.AccelerationExponent,
		"friction_coefficient":  p.FrictionCoefficient,
		"friction_exponent":     p.FrictionExponent,
		"fling_boost":           p.FlingBoost,
		"overscroll_elasticity": p.OverscrollElasticity,
		"spring_constant":       p.SpringConstant,
		"content_mass":          p.ContentMass,
		"bounce_damping":        p.BounceDamping,
	}
}

func (c *Config) Validate() error {
	var errs []error
	if err := c.Physics.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("physics: %w", err))
	}
	if c.Sim.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("sim: frame_rate must be positive, got %d", c.Sim.FrameRate))
	}
	if c.Sim.Source != "" {
		if _, err := source.Parse(c.Sim.Source); err != nil {
			errs = append(errs, fmt.Errorf("sim: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Load reads a yaml config on top of the defaults. Unknown fields are
// rejected so typos surface instead of silently keeping a default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config yaml: %w", err)
	}
	var trailing yaml.Node
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config yaml: unexpected trailing document")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
