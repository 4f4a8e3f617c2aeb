package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/cheeselab/cheesequiz/internal/quiz"
	"github.com/cheeselab/cheesequiz/internal/ui/layout"
	"github.com/cheeselab/cheesequiz/internal/ui/theme"
)

// emptySlot is shown for a choice with neither text nor image. The slot is
// still rendered so numbering stays aligned with the correct index.
const emptySlot = "(no option)"

// ChoiceList renders the option slots of a question. Cursor and Selected
// are 1-based like quiz labels; 0 means none.
type ChoiceList struct {
	Choices      []quiz.Choice
	Cursor       int
	Selected     int
	Graded       bool
	CorrectIndex int
}

// Move shifts the cursor by delta, clamped to the list.
func (c *ChoiceList) Move(delta int) {
	if len(c.Choices) == 0 {
		return
	}
	n := c.Cursor + delta
	if n < 1 {
		n = 1
	}
	if n > len(c.Choices) {
		n = len(c.Choices)
	}
	c.Cursor = n
}

// View renders one block per slot, each prefixed with its label.
func (c ChoiceList) View(width int) string {
	var b strings.Builder
	for i, choice := range c.Choices {
		label := quiz.Label(i)

		prefix := "  "
		if label == c.Cursor && !c.Graded {
			prefix = "▸ "
		}
		mark := " "
		if label == c.Selected {
			mark = "●"
		}

		head := fmt.Sprintf("%s%s %d)  ", prefix, mark, label)
		indent := strings.Repeat(" ", lipgloss.Width(head))
		lines := choiceLines(choice, width-lipgloss.Width(head))

		style := c.styleFor(label)
		for j, line := range lines {
			lead := head
			if j > 0 {
				lead = indent
			}
			b.WriteString(style.Render(lead + line))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (c ChoiceList) styleFor(label int) lipgloss.Style {
	if c.Graded {
		switch label {
		case c.CorrectIndex:
			return theme.Correct
		case c.Selected:
			return theme.Incorrect
		}
		return theme.Placeholder
	}
	switch label {
	case c.Cursor:
		return theme.Cursor
	case c.Selected:
		return theme.Chosen
	}
	return theme.Unselected
}

// choiceLines shows the text and, on its own line, the image URL. Images
// are not drawn in the terminal.
func choiceLines(c quiz.Choice, width int) []string {
	if c.Empty() {
		return []string{emptySlot}
	}
	var lines []string
	if c.Text != "" {
		lines = append(lines, c.Text)
	}
	if c.ImageURL != "" {
		url := c.ImageURL
		if layout.IsCompactWidth(width) {
			url = layout.Shorten(url, width-len("[image] "))
		}
		lines = append(lines, "[image] "+url)
	}
	return lines
}
