package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/scrollsim/internal/gesture"
	"github.com/san-kum/scrollsim/internal/scrollview"
)

// TrajectorySVG draws one axis of a run as position over time. Dashed lines
// mark the scroll bounds so overscroll stands out.
func TrajectorySVG(r *gesture.Result, axis scrollview.Axis, width, height int) (string, error) {
	if len(r.Frames) < 2 {
		return "", fmt.Errorf("run %s needs at least 2 frames, has %d", r.Script, len(r.Frames))
	}

	pos, err := r.Series(axis.String())
	if err != nil {
		return "", err
	}
	xb, yb := r.Geometry.Bounds()
	bounds := yb
	if axis == scrollview.Horizontal {
		bounds = xb
	}

	minY, maxY := bounds.Lower, bounds.Upper
	for _, p := range pos {
		minY = min(minY, p)
		maxY = max(maxY, p)
	}
	span := maxY - minY
	if span == 0 {
		span = 1
	}
	minY -= span * 0.05
	maxY += span * 0.05
	span = maxY - minY

	t0 := r.Frames[0].Time
	duration := r.Frames[len(r.Frames)-1].Time - t0
	if duration == 0 {
		duration = 1
	}

	// content offset grows downward, as on screen
	project := func(t, p float64) (float64, float64) {
		return (t - t0) / duration * float64(width), (p - minY) / span * float64(height)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for _, edge := range []float64{bounds.Lower, bounds.Upper} {
		_, y := project(t0, edge)
		fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-dasharray="4 4"/>
`, y, width, y)
	}

	sb.WriteString(`<path fill="none" stroke="#00ffff" stroke-width="1.5" d="`)
	for i, f := range r.Frames {
		x, y := project(f.Time, pos[i])
		if i == 0 {
			fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>
</svg>`)

	return sb.String(), nil
}
