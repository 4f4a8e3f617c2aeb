package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	qz "github.com/cheeselab/cheesequiz/internal/quiz"
	"github.com/cheeselab/cheesequiz/internal/router"
	"github.com/cheeselab/cheesequiz/internal/screen"
	"github.com/cheeselab/cheesequiz/internal/screens/quiz"
)

type nopFetcher struct{}

func (nopFetcher) Fetch(context.Context, string) (*qz.Question, error) {
	return &qz.Question{Text: "Q?", Choices: []qz.Choice{{Text: "a"}}, CorrectIndex: 1}, nil
}

func newTestModel() AppModel {
	return newAppModel(context.Background(), quiz.Options{
		Config:  qz.Config{ExamKey: "k"},
		Fetcher: nopFetcher{},
		Logger:  zerolog.Nop(),
	})
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if assert.NotNil(t, cmd) {
		_, ok := cmd().(tea.QuitMsg)
		assert.True(t, ok)
	}
}

func TestEscAtRootIsForwarded(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.router.Depth())
}

func TestViewRendersFrame(t *testing.T) {
	model, _ := newTestModel().Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := model.(AppModel).render()

	assert.Contains(t, out, "Cheese Quiz")
	assert.Contains(t, out, "k · 0/0 correct")
	assert.Contains(t, out, "Ctrl+C")
}

func TestViewTooSmall(t *testing.T) {
	model, _ := newTestModel().Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	out := model.(AppModel).render()
	assert.Contains(t, out, "Terminal too small")
}

type stub struct{}

func (*stub) Init() tea.Cmd                            { return nil }
func (s *stub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (*stub) View(int, int) string                     { return "" }
func (*stub) Title() string                            { return "stub" }

func TestEscPopsPushedScreen(t *testing.T) {
	m := newTestModel()
	m.router.Push(&stub{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if assert.NotNil(t, cmd) {
		_, ok := cmd().(router.PopScreenMsg)
		assert.True(t, ok)
	}
}
