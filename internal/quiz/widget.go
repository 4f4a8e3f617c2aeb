package quiz

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrSuperseded is returned by Load when a newer load started before this
// one finished. The stale response is discarded.
var ErrSuperseded = errors.New("load superseded by a newer request")

// Fetcher retrieves one normalized question from url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Question, error)
}

// Host is the set of optional capabilities offered by the embedding
// program. Nil fields are skipped.
type Host struct {
	ShowLoading func()
	HideLoading func()
	ShowScore   func(percent, correctCount, totalCount int)
	SubmitLogs  func(ctx context.Context, sub LogSubmission) error
	CloseModal  func()
}

// View is a read-only copy of the widget state for renderers.
type View struct {
	SessionID string
	Status    string
	Loading   bool
	Question  *Question
	Selected  int
	Result    string
}

// Widget loads one question at a time, tracks the selection and grades it.
// It is safe for concurrent use: fetches may run on other goroutines while
// selections and grading happen on the caller's.
type Widget struct {
	cfg       Config
	url       string
	fetcher   Fetcher
	host      Host
	log       zerolog.Logger
	sessionID string

	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	loading  bool
	status   string
	current  *Question
	selected int
	result   string
}

// NewWidget creates a widget for cfg. No fetch happens until Load.
func NewWidget(cfg Config, fetcher Fetcher, host Host, logger zerolog.Logger) *Widget {
	sessionID := uuid.New().String()
	return &Widget{
		cfg:       cfg,
		url:       BuildURL(cfg),
		fetcher:   fetcher,
		host:      host,
		log:       logger.With().Str("session", sessionID).Str("exam_key", cfg.ExamKey).Logger(),
		sessionID: sessionID,
	}
}

// URL returns the request URL built from the widget's config.
func (w *Widget) URL() string {
	return w.url
}

// SessionID identifies this widget instance in submitted logs.
func (w *Widget) SessionID() string {
	return w.sessionID
}

// Load fetches a new question. Any in-flight fetch is cancelled and its
// response, should it still arrive, is discarded. On failure the status
// becomes MsgLoadFailed and no question is loaded.
func (w *Widget) Load(ctx context.Context) error {
	gen, fetchCtx, cancel := w.begin(ctx)
	defer cancel()

	if w.host.ShowLoading != nil {
		w.host.ShowLoading()
	}

	q, err := w.fetcher.Fetch(fetchCtx, w.url)

	w.mu.Lock()
	if gen != w.gen {
		w.mu.Unlock()
		w.log.Debug().Uint64("generation", gen).Msg("discarding superseded question response")
		return ErrSuperseded
	}
	w.cancel = nil
	w.loading = false
	if err != nil {
		w.status = MsgLoadFailed
	} else {
		w.current = q
		w.status = q.Text
	}
	w.mu.Unlock()

	if w.host.HideLoading != nil {
		w.host.HideLoading()
	}

	if err != nil {
		w.log.Error().Err(err).Str("url", w.url).Msg("load question")
		return err
	}
	w.log.Debug().Str("question_id", q.ID).Int("choices", len(q.Choices)).Msg("question loaded")
	return nil
}

// begin resets the state for a new load and returns its generation.
func (w *Widget) begin(ctx context.Context) (uint64, context.Context, context.CancelFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
	}
	w.gen++
	fetchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.resetLocked()
	w.loading = true
	w.status = MsgLoading
	return w.gen, fetchCtx, cancel
}

func (w *Widget) resetLocked() {
	w.current = nil
	w.selected = 0
	w.result = ""
}

// Select records the 1-based index as the current choice. Out-of-range
// indices and calls without a loaded question are ignored.
func (w *Widget) Select(index int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current == nil || index < 1 || index > len(w.current.Choices) {
		return false
	}
	w.selected = index
	return true
}

// SelectNumeral is Select for an index given as a decimal string.
func (w *Widget) SelectNumeral(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return w.Select(n)
}

// Grade compares the selection with the correct index. Without a loaded
// question or a selection it returns a guidance message and a *StateError
// and performs no reporting. Otherwise the score and log capabilities of
// the host are invoked when present.
func (w *Widget) Grade(ctx context.Context) (Result, error) {
	w.mu.Lock()
	if w.current == nil {
		w.result = MsgLoadFirst
		w.mu.Unlock()
		return Result{Message: MsgLoadFirst}, &StateError{Err: ErrNoQuestion}
	}
	if w.selected == 0 {
		w.result = MsgSelectFirst
		w.mu.Unlock()
		return Result{Message: MsgSelectFirst}, &StateError{Err: ErrNoSelection}
	}
	q := w.current
	res := evaluate(q, w.selected)
	w.result = res.Message
	w.mu.Unlock()

	correctCount := 0
	if res.Correct {
		correctCount = 1
	}
	if w.host.ShowScore != nil {
		w.host.ShowScore(res.Percent(), correctCount, 1)
	}
	if w.host.SubmitLogs != nil {
		sub := LogSubmission{
			SessionID: w.sessionID,
			ExamKey:   w.cfg.ExamKey,
			Records:   []LogRecord{newLogRecord(q, res)},
		}
		if err := w.host.SubmitLogs(ctx, sub); err != nil {
			w.log.Warn().Err(err).Msg("submit answer log")
		}
	}

	w.log.Info().
		Str("question_id", q.ID).
		Int("selected", res.Selected).
		Int("correct_index", res.CorrectIndex).
		Bool("correct", res.Correct).
		Msg("graded")
	return res, nil
}

// Reload discards the current question and selection, closes the score
// modal when the host can, and loads a new question.
func (w *Widget) Reload(ctx context.Context) error {
	w.mu.Lock()
	w.resetLocked()
	w.mu.Unlock()

	if w.host.CloseModal != nil {
		w.host.CloseModal()
	}
	return w.Load(ctx)
}

// State returns a copy of the current state.
func (w *Widget) State() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	v := View{
		SessionID: w.sessionID,
		Status:    w.status,
		Loading:   w.loading,
		Selected:  w.selected,
		Result:    w.result,
	}
	if w.current != nil {
		q := *w.current
		q.Choices = append([]Choice(nil), w.current.Choices...)
		v.Question = &q
	}
	return v
}

// evaluate grades selected against q. Both indices are 1-based integers.
func evaluate(q *Question, selected int) Result {
	res := Result{
		Correct:      selected == q.CorrectIndex,
		Selected:     selected,
		CorrectIndex: q.CorrectIndex,
	}

	if res.Correct {
		res.Message = MsgCorrect
	} else {
		res.Message = fmt.Sprintf(MsgIncorrect, q.CorrectIndex)
	}
	if q.Explanation != "" {
		res.Message += ", " + q.Explanation
	}
	return res
}
