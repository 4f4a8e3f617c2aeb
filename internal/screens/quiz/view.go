package quiz

import (
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/cheeselab/cheesequiz/internal/quiz"
	"github.com/cheeselab/cheesequiz/internal/ui/components"
	"github.com/cheeselab/cheesequiz/internal/ui/theme"
)

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

func (s *QuizScreen) View(width, height int) string {
	loading, modal := s.host.snapshot()
	v := s.widget.State()

	if modal != nil {
		return components.ScoreModal{
			Percent:      modal.percent,
			CorrectCount: modal.correct,
			TotalCount:   modal.total,
			Message:      v.Result,
		}.View(width, height)
	}

	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")

	if loading || v.Loading {
		frame := spinnerFrames[s.frame%len(spinnerFrames)]
		b.WriteString(theme.Hint.Render(frame + " " + qz.MsgLoading))
		return center(b.String(), width)
	}

	if v.Question == nil {
		// Failed load, or nothing loaded yet.
		b.WriteString(theme.Incorrect.Render(v.Status))
		b.WriteString("\n\n")
		b.WriteString(components.ButtonBar(components.NewButton("Reload", "r", true)))
		return center(b.String(), width)
	}

	b.WriteString(theme.Body.Bold(true).Width(cw).Render(v.Status))
	b.WriteString("\n\n")
	b.WriteString(components.Card(strings.TrimRight(s.list.View(cw-6), "\n"), cw))
	b.WriteString("\n\n")

	if v.Result != "" {
		b.WriteString(s.resultStyle().Width(cw).Render(v.Result))
		b.WriteString("\n\n")
	}

	b.WriteString(components.ButtonBar(
		components.NewButton("Grade", "enter", v.Selected > 0 && !s.graded),
		components.NewButton("Reload", "r", s.graded),
	))

	return center(b.String(), width)
}

func (s *QuizScreen) resultStyle() lipgloss.Style {
	switch {
	case !s.graded:
		return theme.Hint
	case s.list.Selected == s.list.CorrectIndex:
		return theme.Correct
	default:
		return theme.Incorrect
	}
}

func center(content string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}
