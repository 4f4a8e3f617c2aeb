package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/cheeselab/cheesequiz/internal/ui/theme"
)

// ContentWidth returns the inner width used for cards and the score modal.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return theme.Card.Width(cw).Render(content)
}

// ScoreModal is the overlay shown after grading.
type ScoreModal struct {
	Percent      int
	CorrectCount int
	TotalCount   int
	Message      string
}

// View renders the modal centered in width x height.
func (m ScoreModal) View(width, height int) string {
	cw := min(ContentWidth(width), 48)

	heading := theme.Incorrect.Render("Not quite")
	if m.Percent == 100 {
		heading = theme.Correct.Render("Correct!")
	}

	body := heading + "\n\n" +
		ScoreBar{Percent: m.Percent, Width: cw - 8}.View() + "\n\n" +
		theme.Body.Render(fmt.Sprintf("%d of %d correct", m.CorrectCount, m.TotalCount))
	if m.Message != "" {
		body += "\n\n" + theme.Hint.Width(cw-8).Render(m.Message)
	}
	body += "\n\n" + theme.Hint.Render("esc close · r next question")

	box := theme.Modal.Width(cw).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
