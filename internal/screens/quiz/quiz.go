// Package quiz is the interactive image-choice question screen.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	qz "github.com/cheeselab/cheesequiz/internal/quiz"
	"github.com/cheeselab/cheesequiz/internal/router"
	"github.com/cheeselab/cheesequiz/internal/screen"
	"github.com/cheeselab/cheesequiz/internal/screens/history"
	"github.com/cheeselab/cheesequiz/internal/store"
	"github.com/cheeselab/cheesequiz/internal/ui/components"
	"github.com/cheeselab/cheesequiz/internal/ui/layout"
)

const spinnerInterval = 120 * time.Millisecond

// Options configures a QuizScreen.
type Options struct {
	Config  qz.Config
	Fetcher qz.Fetcher

	// Submit receives graded answer logs. Nil disables reporting.
	Submit func(ctx context.Context, sub qz.LogSubmission) error

	// Logs backs the history screen. Nil hides it.
	Logs store.AnswerLogRepo

	Logger zerolog.Logger
}

// QuizScreen implements screen.Screen around a quiz.Widget.
type QuizScreen struct {
	ctx    context.Context
	widget *qz.Widget
	host   *hostState
	logs   store.AnswerLogRepo
	cfg    qz.Config
	keys   keyMap

	list     components.ChoiceList
	graded   bool
	answered int
	correct  int
	frame    int
	spinning bool

	// Results of in-flight commands are routed to the top screen only, so
	// these keep the history screen from being pushed over them.
	fetching bool
	grading  bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen. Fetches and log submissions run under ctx.
func New(ctx context.Context, opts Options) *QuizScreen {
	host := &hostState{}
	return &QuizScreen{
		ctx:    ctx,
		widget: qz.NewWidget(opts.Config, opts.Fetcher, host.capabilities(opts.Submit), opts.Logger),
		host:   host,
		logs:   opts.Logs,
		cfg:    opts.Config,
		keys:   defaultKeys(),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	s.host.setLoading(true)
	return tea.Batch(s.load(), s.startSpinner())
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// Status shows the exam key and the tally of this run.
func (s *QuizScreen) Status() string {
	tally := fmt.Sprintf("%d/%d correct", s.correct, s.answered)
	if s.cfg.ExamKey == "" {
		return tally
	}
	return s.cfg.ExamKey + " · " + tally
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if _, modal := s.host.snapshot(); modal != nil {
		return []layout.KeyHint{
			hint(s.keys.Close),
			{Key: "r", Description: "Next question"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{
		hint(s.keys.Choose),
		hint(s.keys.Up),
		hint(s.keys.Grade),
		hint(s.keys.Reload),
	}
	if s.logs != nil {
		hints = append(hints, hint(s.keys.History))
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionLoadedMsg:
		s.fetching = false
		s.syncQuestion()
		return s, nil

	case gradedMsg:
		return s.handleGraded(msg)

	case spinnerTickMsg:
		if loading, _ := s.host.snapshot(); !loading {
			s.spinning = false
			return s, nil
		}
		s.frame++
		return s, s.tick()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	_, modal := s.host.snapshot()

	switch {
	case key.Matches(msg, s.keys.Close):
		if modal != nil {
			s.host.closeModal()
		}
		return s, nil

	case key.Matches(msg, s.keys.Reload):
		return s, s.reload()

	case modal != nil:
		return s, nil

	case key.Matches(msg, s.keys.History):
		if s.logs == nil || s.busy() {
			return s, nil
		}
		logs := s.logs
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: history.New(logs)} }

	case key.Matches(msg, s.keys.Grade):
		if s.graded || s.grading {
			return s, nil
		}
		return s, s.grade()

	case s.graded:
		return s, nil

	case key.Matches(msg, s.keys.Choose):
		if len(s.list.Choices) > 0 && s.widget.SelectNumeral(msg.String()) {
			s.list.Selected = s.widget.State().Selected
			s.list.Cursor = s.list.Selected
		}
		return s, nil

	case key.Matches(msg, s.keys.Up):
		s.moveAndSelect(-1)
		return s, nil

	case key.Matches(msg, s.keys.Down):
		s.moveAndSelect(1)
		return s, nil
	}
	return s, nil
}

func (s *QuizScreen) moveAndSelect(delta int) {
	s.list.Move(delta)
	if s.widget.Select(s.list.Cursor) {
		s.list.Selected = s.list.Cursor
	}
}

// busy reports whether a load, grade or spinner tick is still due back.
func (s *QuizScreen) busy() bool {
	return s.fetching || s.grading || s.spinning
}

func (s *QuizScreen) handleGraded(msg gradedMsg) (screen.Screen, tea.Cmd) {
	s.grading = false
	if msg.Err != nil {
		// Guidance message only; the widget state already carries it.
		return s, nil
	}
	s.graded = true
	s.list.Graded = true
	s.list.CorrectIndex = msg.Result.CorrectIndex
	s.answered++
	if msg.Result.Correct {
		s.correct++
	}
	return s, nil
}

// syncQuestion rebuilds the choice list from the widget after a load.
func (s *QuizScreen) syncQuestion() {
	v := s.widget.State()
	s.list = components.ChoiceList{}
	s.graded = false
	if v.Question != nil {
		s.list.Choices = v.Question.Choices
		s.list.Cursor = 1
	}
}

func (s *QuizScreen) load() tea.Cmd {
	s.fetching = true
	ctx, w := s.ctx, s.widget
	return func() tea.Msg {
		err := w.Load(ctx)
		if errors.Is(err, qz.ErrSuperseded) {
			return nil
		}
		return questionLoadedMsg{Err: err}
	}
}

func (s *QuizScreen) reload() tea.Cmd {
	s.list = components.ChoiceList{}
	s.graded = false
	// Show the loading state right away; the widget flips it again from
	// the command goroutine.
	s.host.setLoading(true)
	s.host.closeModal()
	s.fetching = true

	ctx, w := s.ctx, s.widget
	return tea.Batch(func() tea.Msg {
		err := w.Reload(ctx)
		if errors.Is(err, qz.ErrSuperseded) {
			return nil
		}
		return questionLoadedMsg{Err: err}
	}, s.startSpinner())
}

func (s *QuizScreen) grade() tea.Cmd {
	s.grading = true
	ctx, w := s.ctx, s.widget
	return func() tea.Msg {
		res, err := w.Grade(ctx)
		return gradedMsg{Result: res, Err: err}
	}
}

func (s *QuizScreen) startSpinner() tea.Cmd {
	if s.spinning {
		return nil
	}
	s.spinning = true
	return s.tick()
}

func (s *QuizScreen) tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
