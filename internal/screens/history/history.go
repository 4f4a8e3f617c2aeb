package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/cheeselab/cheesequiz/internal/router"
	"github.com/cheeselab/cheesequiz/internal/screen"
	"github.com/cheeselab/cheesequiz/internal/store"
	"github.com/cheeselab/cheesequiz/internal/ui/layout"
	"github.com/cheeselab/cheesequiz/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Logs  []store.AnswerLog
	Stats []store.ExamStats
	Err   error
}

// HistoryScreen displays recent answer logs and per-exam accuracy.
type HistoryScreen struct {
	repo     store.AnswerLogRepo
	logs     []store.AnswerLog
	stats    []store.ExamStats
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.AnswerLogRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		logs, err := s.repo.Query(ctx, store.QueryOpts{Limit: pageSize})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// Stats are a nice-to-have; show the logs even if they fail.
		stats, err := s.repo.StatsByExam(ctx)
		if err != nil {
			return historyLoadedMsg{Logs: logs}
		}
		return historyLoadedMsg{Logs: logs, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.logs = msg.Logs
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.logs)-1 {
				s.selected++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.logs) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No answers yet. Grade a question first!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for _, st := range s.stats {
		key := st.ExamKey
		if key == "" {
			key = "(no exam key)"
		}
		line := fmt.Sprintf("%s  %d/%d  %.0f%%", key, st.Correct, st.Attempts, st.Accuracy()*100)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Secondary).Render(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Keep the selected row visible.
	rows := height - len(s.stats) - 3
	if rows < 1 {
		rows = 1
	}
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}
	end := min(start+rows, len(s.logs))

	for i := start; i < end; i++ {
		entry := s.logs[i]

		mark := theme.Incorrect.Render("✗")
		if entry.IsCorrect {
			mark = theme.Correct.Render("✓")
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-12s  %-12s  chose %s, answer %s",
			prefix, entry.Timestamp.Format("Jan 02 15:04"), entry.ExamKey, entry.QuestionID,
			entry.SelectedIndex, entry.CorrectIndex)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)+"  "+mark))
		b.WriteString("\n")
	}

	return b.String()
}
