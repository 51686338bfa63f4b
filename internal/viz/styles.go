package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	keyHint    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)

	statusDragging  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff00ff"))
	statusAnimating = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	statusIdle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	statusPaused    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))

	trackStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#333344"))
	thumbStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff"))
	overscrollMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
)

// Scrollbar renders a vertical track of rows cells with the thumb at index
// thumb. Rows above and below the track mark overscroll.
func Scrollbar(rows int, thumb float64, overTop, overBottom bool) string {
	if rows <= 0 {
		return ""
	}

	idx := int(thumb + 0.5)
	if idx < 0 {
		idx = 0
	}
	if idx >= rows {
		idx = rows - 1
	}

	var b strings.Builder
	b.WriteString(edge(overTop) + "\n")
	for i := 0; i < rows; i++ {
		if i == idx {
			b.WriteString(thumbStyle.Render("█"))
		} else {
			b.WriteString(trackStyle.Render("│"))
		}
		b.WriteString("\n")
	}
	b.WriteString(edge(overBottom))
	return b.String()
}

func edge(over bool) string {
	if over {
		return overscrollMark.Render("▲")
	}
	return trackStyle.Render("─")
}
