package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheeselab/cheesequiz/internal/quiz"
	"github.com/cheeselab/cheesequiz/internal/store"
)

type fakeRepo struct {
	batches []store.AnswerLogBatch
}

func (f *fakeRepo) Append(_ context.Context, b store.AnswerLogBatch) error {
	f.batches = append(f.batches, b)
	return nil
}

func (f *fakeRepo) Query(context.Context, store.QueryOpts) ([]store.AnswerLog, error) {
	return nil, nil
}

func (f *fakeRepo) StatsByExam(context.Context) ([]store.ExamStats, error) {
	return nil, nil
}

var testSubmission = quiz.LogSubmission{
	SessionID: "sess-1",
	ExamKey:   "dev-img-01",
	Records: []quiz.LogRecord{
		{QuestionID: "q1", SelectedIndex: "2", CorrectIndex: "2", IsCorrect: true, Difficulty: "easy"},
	},
}

func TestStoreSink(t *testing.T) {
	repo := &fakeRepo{}
	sink := NewStoreSink(repo)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	sink.now = func() time.Time { return fixed }

	require.NoError(t, sink.Submit(context.Background(), testSubmission))

	require.Len(t, repo.batches, 1)
	b := repo.batches[0]
	assert.Equal(t, "sess-1", b.SessionID)
	assert.Equal(t, "dev-img-01", b.ExamKey)
	assert.Equal(t, fixed, b.Timestamp)
	assert.Equal(t, testSubmission.Records, b.Records)
}

func TestHTTPSink(t *testing.T) {
	var got quiz.LogSubmission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, srv.Client())
	require.NoError(t, sink.Submit(context.Background(), testSubmission))
	assert.Equal(t, testSubmission, got)
}

func TestHTTPSinkStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := NewHTTPSink(srv.URL, nil).Submit(context.Background(), testSubmission)
	assert.ErrorContains(t, err, "unexpected status 400")
}

func TestSinksSatisfyHost(t *testing.T) {
	var _ Sink = (*StoreSink)(nil)
	var _ Sink = (*HTTPSink)(nil)

	host := quiz.Host{SubmitLogs: NewStoreSink(&fakeRepo{}).Submit}
	assert.NotNil(t, host.SubmitLogs)
}
