package curve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/scrollsim/internal/dynamo"
)

func ev(t, v float64) dynamo.Event { return dynamo.Event{Time: t, Value: v} }

func TestSelect(t *testing.T) {
	events := []dynamo.Event{ev(10, 5), ev(20, 10), ev(30, 12), ev(40, 20)}

	tests := []struct {
		name string
		at   float64
		want []dynamo.Event
	}{
		{"before all", 5, []dynamo.Event{ev(10, 5)}},
		{"on first", 10, []dynamo.Event{ev(10, 5)}},
		{"between first and second", 15, []dynamo.Event{ev(10, 5), ev(20, 10)}},
		{"on an event counts as after", 30, []dynamo.Event{ev(10, 5), ev(20, 10), ev(30, 12)}},
		{"after all", 50, []dynamo.Event{ev(30, 12), ev(40, 20)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Select(events, tt.at))
		})
	}

	assert.Empty(t, Select(nil, 10))
}

func TestSelect_Unordered(t *testing.T) {
	events := []dynamo.Event{ev(30, 3), ev(10, 1), ev(20, 2)}
	assert.Equal(t, []dynamo.Event{ev(10, 1), ev(20, 2), ev(30, 3)}, Select(events, 25))
}

func TestLinear_Endpoints(t *testing.T) {
	pairs := [][2]dynamo.Event{
		{ev(10, 5), ev(20, 10)},
		{ev(1, -3), ev(4, 9)},
		{ev(100, 7), ev(100.5, -2)},
	}

	for _, p := range pairs {
		a, b := p[0], p[1]
		assert.Equal(t, a.Value, Linear(a, b, a.Time))
		assert.InDelta(t, b.Value, Linear(a, b, b.Time), 1e-12)

		mid := (a.Time + b.Time) / 2
		assert.InDelta(t, (a.Value+b.Value)/2, Linear(a, b, mid), 1e-12)
	}
}

func TestSlope_EqualTimes(t *testing.T) {
	assert.Zero(t, Slope(ev(10, 1), ev(10, 9)))
	assert.Equal(t, 1.0, Linear(ev(10, 1), ev(10, 9), 50))
}

func TestEvaluate(t *testing.T) {
	assert.Zero(t, Evaluate(nil, 10, 150))
	assert.InDelta(t, 5.0/150, Evaluate([]dynamo.Event{ev(10, 5)}, 10, 150), 1e-12)
	assert.InDelta(t, 7.5, Evaluate([]dynamo.Event{ev(10, 5), ev(20, 10)}, 15, 150), 1e-12)

	// three events use the two most recent
	three := []dynamo.Event{ev(0, 100), ev(10, 5), ev(20, 10)}
	assert.InDelta(t, 7.5, Evaluate(three, 15, 150), 1e-12)
}

func TestEvaluate_Panics(t *testing.T) {
	tests := []struct {
		name   string
		events []dynamo.Event
		want   error
	}{
		{"four events", []dynamo.Event{ev(1, 1), ev(2, 2), ev(3, 3), ev(4, 4)}, dynamo.ErrUnsupportedCurve},
		{"five events", []dynamo.Event{ev(1, 1), ev(2, 2), ev(3, 3), ev(4, 4), ev(5, 5)}, dynamo.ErrUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				inv, ok := dynamo.AsInvariant(recover())
				require.True(t, ok)
				assert.True(t, errors.Is(inv, tt.want))
			}()
			Evaluate(tt.events, 2.5, 150)
		})
	}
}
