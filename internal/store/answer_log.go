package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// answerLogRepo implements AnswerLogRepo with ent's SQL builders.
type answerLogRepo struct {
	drv *entsql.Driver
}

var answerLogSelectColumns = []string{
	"id", "timestamp", "session_id", "exam_key", "question_id",
	"selected_index", "correct_index", "is_correct", "difficulty",
}

func (r *answerLogRepo) Append(ctx context.Context, batch AnswerLogBatch) error {
	if len(batch.Records) == 0 {
		return nil
	}

	ts := batch.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	ts = ts.UTC()

	ins := entsql.Dialect(dialect.SQLite).
		Insert(answerLogsTableName).
		Columns(answerLogSelectColumns[1:]...)
	for _, rec := range batch.Records {
		ins.Values(ts, batch.SessionID, batch.ExamKey, rec.QuestionID,
			rec.SelectedIndex, rec.CorrectIndex, rec.IsCorrect, rec.Difficulty)
	}

	query, args := ins.Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save answer logs: %w", err)
	}
	return nil
}

func (r *answerLogRepo) Query(ctx context.Context, opts QueryOpts) ([]AnswerLog, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(answerLogSelectColumns...).
		From(b.Table(answerLogsTableName)).
		OrderBy(entsql.Desc("id"))

	if opts.ExamKey != "" {
		sel.Where(entsql.EQ("exam_key", opts.ExamKey))
	}
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query answer logs: %w", err)
	}
	defer rows.Close()

	var logs []AnswerLog
	for rows.Next() {
		var l AnswerLog
		if err := rows.Scan(&l.ID, &l.Timestamp, &l.SessionID, &l.ExamKey, &l.QuestionID,
			&l.SelectedIndex, &l.CorrectIndex, &l.IsCorrect, &l.Difficulty); err != nil {
			return nil, fmt.Errorf("scan answer log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer logs: %w", err)
	}
	return logs, nil
}

func (r *answerLogRepo) StatsByExam(ctx context.Context) ([]ExamStats, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select(
		"exam_key",
		entsql.As(entsql.Count("*"), "attempts"),
		entsql.As(entsql.Sum("is_correct"), "correct"),
	).
		From(b.Table(answerLogsTableName)).
		GroupBy("exam_key").
		OrderBy("exam_key")

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query exam stats: %w", err)
	}
	defer rows.Close()

	var stats []ExamStats
	for rows.Next() {
		var s ExamStats
		var attempts, correct int64
		if err := rows.Scan(&s.ExamKey, &attempts, &correct); err != nil {
			return nil, fmt.Errorf("scan exam stats: %w", err)
		}
		s.Attempts = int(attempts)
		s.Correct = int(correct)
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exam stats: %w", err)
	}
	return stats, nil
}
