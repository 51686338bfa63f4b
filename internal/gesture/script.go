package gesture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/scrollsim/internal/dynamo"
	"github.com/san-kum/scrollsim/internal/scrollview"
	"github.com/san-kum/scrollsim/internal/source"
)

const DefaultDragRateHz = 120.0

type StepKind string

const (
	KindPan       StepKind = "pan"
	KindFling     StepKind = "fling"
	KindInterrupt StepKind = "interrupt"
	KindSource    StepKind = "source"
	KindDrag      StepKind = "drag"
)

// Step is one scripted input. Drag steps spread Delta over evenly spaced
// pans from AtMs to UntilMs.
type Step struct {
	AtMs    float64         `yaml:"at_ms"`
	Kind    StepKind        `yaml:"kind"`
	Axis    scrollview.Axis `yaml:"axis,omitempty"`
	Delta   float64         `yaml:"delta,omitempty"`
	Source  source.Source   `yaml:"source,omitempty"`
	UntilMs float64         `yaml:"until_ms,omitempty"`
	RateHz  float64         `yaml:"rate_hz,omitempty"`
}

type Geometry struct {
	ContentHeight  float64 `yaml:"content_height"`
	ContentWidth   float64 `yaml:"content_width"`
	ViewportHeight float64 `yaml:"viewport_height"`
	ViewportWidth  float64 `yaml:"viewport_width"`
}

// Bounds returns the scroll range of each axis.
func (g Geometry) Bounds() (x, y dynamo.Bounds) {
	return scrollview.Geometry(g).Bounds()
}

// Script is a replayable gesture. FrameRate and Geometry fall back to the
// runner defaults when zero.
type Script struct {
	Name       string        `yaml:"name"`
	Source     source.Source `yaml:"source"`
	DurationMs float64       `yaml:"duration_ms"`
	FrameRate  int           `yaml:"frame_rate,omitempty"`
	Geometry   *Geometry     `yaml:"geometry,omitempty"`
	Steps      []Step        `yaml:"steps"`
}

// Input is a single expanded, timestamped signal.
type Input struct {
	At     float64
	Kind   StepKind
	Axis   scrollview.Axis
	Delta  float64
	Source source.Source
}

func (s *Script) Validate() error {
	var errs []error
	if s.DurationMs <= 0 || math.IsInf(s.DurationMs, 0) || math.IsNaN(s.DurationMs) {
		errs = append(errs, fmt.Errorf("duration_ms must be positive, got %v", s.DurationMs))
	}
	if s.FrameRate < 0 {
		errs = append(errs, fmt.Errorf("frame_rate must not be negative, got %d", s.FrameRate))
	}

	for i, step := range s.Steps {
		at := func(format string, args ...any) {
			errs = append(errs, fmt.Errorf("step %d (%s): %s", i, step.Kind, fmt.Sprintf(format, args...)))
		}
		if step.AtMs < 0 || math.IsNaN(step.AtMs) {
			at("at_ms must not be negative, got %v", step.AtMs)
		}
		switch step.Kind {
		case KindPan:
			if step.AtMs == 0 {
				at("pans cannot happen at 0 ms")
			}
		case KindDrag:
			if step.UntilMs <= step.AtMs {
				at("until_ms %v must be after at_ms %v", step.UntilMs, step.AtMs)
			}
			if step.RateHz < 0 {
				at("rate_hz must not be negative, got %v", step.RateHz)
			}
		case KindFling, KindInterrupt, KindSource:
		default:
			at("unknown kind")
		}
	}
	return errors.Join(errs...)
}

// Inputs expands drags and returns every input ordered by time. Inputs with
// equal timestamps keep their script order.
func (s *Script) Inputs() []Input {
	inputs := make([]Input, 0, len(s.Steps))
	for _, step := range s.Steps {
		if step.Kind != KindDrag {
			inputs = append(inputs, Input{
				At:     step.AtMs,
				Kind:   step.Kind,
				Axis:   step.Axis,
				Delta:  step.Delta,
				Source: step.Source,
			})
			continue
		}
		inputs = append(inputs, expandDrag(step)...)
	}

	sort.SliceStable(inputs, func(i, j int) bool {
		return inputs[i].At < inputs[j].At
	})
	return inputs
}

func expandDrag(step Step) []Input {
	rate := step.RateHz
	if rate <= 0 {
		rate = DefaultDragRateHz
	}
	span := step.UntilMs - step.AtMs
	n := int(math.Round(span * rate / 1000))
	if n < 1 {
		n = 1
	}

	out := make([]Input, n)
	for i := 0; i < n; i++ {
		out[i] = Input{
			At:    step.AtMs + span*float64(i+1)/float64(n),
			Kind:  KindPan,
			Axis:  step.Axis,
			Delta: step.Delta / float64(n),
		}
	}
	return out
}

// DefaultSource gives a script that names no input source the source called
// name. An empty name leaves the script alone.
func (s *Script) DefaultSource(name string) error {
	if s.Source != source.Undefined || name == "" {
		return nil
	}
	src, err := source.Parse(name)
	if err != nil {
		return err
	}
	s.Source = src
	return nil
}

// LoadScript reads a yaml gesture script. Unknown fields are rejected.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode script yaml: empty document")
		}
		return nil, fmt.Errorf("decode script yaml: %w", err)
	}
	var trailing yaml.Node
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode script yaml: unexpected trailing document")
	}
	if s.Name == "" {
		s.Name = "script"
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid script %q: %w", s.Name, err)
	}
	return &s, nil
}

func SaveScript(path string, s *Script) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
