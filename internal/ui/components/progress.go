package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/cheeselab/cheesequiz/internal/ui/theme"
)

// ScoreBar displays a score percentage as a horizontal bar.
type ScoreBar struct {
	Percent int // 0..100
	Width   int
}

// View renders the bar followed by the percentage.
func (p ScoreBar) View() string {
	barWidth := p.Width - 6 // "  100%"
	if barWidth < 4 {
		barWidth = 4
	}

	pct := min(max(p.Percent, 0), 100)
	filled := barWidth * pct / 100
	empty := barWidth - filled

	return theme.ScoreFilled.Render(strings.Repeat(" ", filled)) +
		theme.ScoreEmpty.Render(strings.Repeat(" ", empty)) +
		lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", pct))
}
