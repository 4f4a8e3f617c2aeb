package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheeselab/cheesequiz/internal/router"
	"github.com/cheeselab/cheesequiz/internal/store"
)

type fakeRepo struct {
	logs     []store.AnswerLog
	stats    []store.ExamStats
	queryErr error
	statsErr error
}

func (f *fakeRepo) Append(context.Context, store.AnswerLogBatch) error { return nil }
func (f *fakeRepo) Query(context.Context, store.QueryOpts) ([]store.AnswerLog, error) {
	return f.logs, f.queryErr
}
func (f *fakeRepo) StatsByExam(context.Context) ([]store.ExamStats, error) {
	return f.stats, f.statsErr
}

func sampleRepo() *fakeRepo {
	ts := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	return &fakeRepo{
		logs: []store.AnswerLog{
			{ID: 2, Timestamp: ts, ExamKey: "dev-img-01", QuestionID: "img-002", SelectedIndex: "1", CorrectIndex: "3"},
			{ID: 1, Timestamp: ts, ExamKey: "dev-img-01", QuestionID: "img-001", SelectedIndex: "1", CorrectIndex: "1", IsCorrect: true},
		},
		stats: []store.ExamStats{{ExamKey: "dev-img-01", Attempts: 2, Correct: 1}},
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	msg := s.Init()()
	s.Update(msg)
}

func TestHistory_Loads(t *testing.T) {
	s := New(sampleRepo())
	assert.Contains(t, s.View(100, 30), "Loading history")

	load(t, s)
	out := s.View(100, 30)
	assert.Contains(t, out, "dev-img-01  1/2  50%")
	assert.Contains(t, out, "img-002")
	assert.Contains(t, out, "chose 1, answer 3")
}

func TestHistory_Empty(t *testing.T) {
	s := New(&fakeRepo{})
	load(t, s)
	assert.Contains(t, s.View(100, 30), "No answers yet")
}

func TestHistory_QueryError(t *testing.T) {
	s := New(&fakeRepo{queryErr: errors.New("db locked")})
	load(t, s)
	assert.Contains(t, s.View(100, 30), "db locked")
}

func TestHistory_StatsErrorStillShowsLogs(t *testing.T) {
	repo := sampleRepo()
	repo.statsErr = errors.New("boom")
	s := New(repo)
	load(t, s)
	assert.Contains(t, s.View(100, 30), "img-001")
}

func TestHistory_Navigation(t *testing.T) {
	s := New(sampleRepo())
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, s.selected)
}

func TestHistory_EscPops(t *testing.T) {
	s := New(sampleRepo())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}
