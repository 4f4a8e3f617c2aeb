// Package report delivers graded answer logs to where they are kept: the
// local answer log database or a remote log endpoint.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cheeselab/cheesequiz/internal/quiz"
	"github.com/cheeselab/cheesequiz/internal/store"
)

// Sink receives log submissions. Its Submit method has the shape of
// quiz.Host.SubmitLogs.
type Sink interface {
	Submit(ctx context.Context, sub quiz.LogSubmission) error
}

// StoreSink appends submissions to the local answer log.
type StoreSink struct {
	repo store.AnswerLogRepo
	now  func() time.Time
}

// NewStoreSink returns a sink writing to repo.
func NewStoreSink(repo store.AnswerLogRepo) *StoreSink {
	return &StoreSink{repo: repo, now: time.Now}
}

func (s *StoreSink) Submit(ctx context.Context, sub quiz.LogSubmission) error {
	return s.repo.Append(ctx, store.AnswerLogBatch{
		SessionID: sub.SessionID,
		ExamKey:   sub.ExamKey,
		Timestamp: s.now(),
		Records:   sub.Records,
	})
}

// HTTPSink posts submissions as JSON to a log endpoint such as the
// /logs route of `cheesequiz serve`.
type HTTPSink struct {
	url    string
	client *http.Client
}

// NewHTTPSink returns a sink posting to url. A nil client gets a 10s timeout.
func NewHTTPSink(url string, client *http.Client) *HTTPSink {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPSink{url: url, client: client}
}

func (s *HTTPSink) Submit(ctx context.Context, sub quiz.LogSubmission) error {
	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal log submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build log request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post logs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post logs: unexpected status %d", resp.StatusCode)
	}
	return nil
}
