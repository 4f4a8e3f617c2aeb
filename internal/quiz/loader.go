package quiz

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodyBytes caps the size of a question payload.
const maxBodyBytes = 1 << 20

// Loader fetches and normalizes questions.
type Loader struct {
	client *http.Client
}

// NewLoader returns a Loader using client, or a client with timeout when
// client is nil.
func NewLoader(client *http.Client, timeout time.Duration) *Loader {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Loader{client: client}
}

// Fetch performs a single GET against url and normalizes the body.
// Errors are *NetworkError, *ParseError or *EmptyResultError.
func (l *Loader) Fetch(ctx context.Context, url string) (*Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	return Normalize(body)
}
