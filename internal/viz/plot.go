package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/scrollsim/internal/gesture"
	"github.com/san-kum/scrollsim/internal/scrollview"
)

const (
	DefaultHeight = 10
	DefaultWidth  = 80
)

// Plot draws one series. An empty series renders as an empty string.
func Plot(series []float64, caption string, height, width int) string {
	if len(series) == 0 {
		return ""
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// PlotRun draws position and velocity of one axis of a run, one graph
// above the other.
func PlotRun(r *gesture.Result, axis scrollview.Axis, height, width int) (string, error) {
	if len(r.Frames) == 0 {
		return "", fmt.Errorf("run %s has no frames", r.Script)
	}

	pos, err := r.Series(axis.String())
	if err != nil {
		return "", err
	}
	vel, err := r.Series("v" + axis.String())
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(Plot(pos, fmt.Sprintf("%s position (px)", axis), height, width))
	b.WriteString("\n\n")
	b.WriteString(Plot(vel, fmt.Sprintf("%s velocity (px/ms)", axis), height, width))
	return b.String(), nil
}
