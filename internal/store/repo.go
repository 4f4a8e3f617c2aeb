package store

import (
	"context"
	"time"

	"github.com/cheeselab/cheesequiz/internal/quiz"
)

// QueryOpts configures answer log queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	ExamKey   string    // exact match when non-empty
	SessionID string    // exact match when non-empty
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
}

// AnswerLogBatch is one submission from a widget: the records produced by
// a single grading, tagged with the widget session and exam key.
type AnswerLogBatch struct {
	SessionID string
	ExamKey   string
	Timestamp time.Time // zero means now
	Records   []quiz.LogRecord
}

// AnswerLog is a stored log record.
type AnswerLog struct {
	ID            int
	Timestamp     time.Time
	SessionID     string
	ExamKey       string
	QuestionID    string
	SelectedIndex string
	CorrectIndex  string
	IsCorrect     bool
	Difficulty    string
}

// ExamStats aggregates answer logs for one exam key.
type ExamStats struct {
	ExamKey  string
	Attempts int
	Correct  int
}

// Accuracy returns the share of correct attempts in [0, 1].
func (s ExamStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// AnswerLogRepo provides append and query access to submitted answer logs.
type AnswerLogRepo interface {
	// Append stores every record of the batch.
	Append(ctx context.Context, batch AnswerLogBatch) error

	// Query returns logs newest first.
	Query(ctx context.Context, opts QueryOpts) ([]AnswerLog, error)

	// StatsByExam aggregates attempts and correct answers per exam key.
	StatsByExam(ctx context.Context) ([]ExamStats, error)
}
