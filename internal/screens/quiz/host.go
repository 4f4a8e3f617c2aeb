package quiz

import (
	"context"
	"sync"

	qz "github.com/cheeselab/cheesequiz/internal/quiz"
)

// hostState backs the widget's host capabilities. The widget calls them
// from command goroutines while the screen reads them when rendering.
type hostState struct {
	mu      sync.Mutex
	loading bool
	modal   *scoreState
}

type scoreState struct {
	percent, correct, total int
}

func (h *hostState) capabilities(submit func(ctx context.Context, sub qz.LogSubmission) error) qz.Host {
	return qz.Host{
		ShowLoading: func() { h.setLoading(true) },
		HideLoading: func() { h.setLoading(false) },
		ShowScore: func(percent, correctCount, totalCount int) {
			h.mu.Lock()
			h.modal = &scoreState{percent: percent, correct: correctCount, total: totalCount}
			h.mu.Unlock()
		},
		SubmitLogs: submit,
		CloseModal: h.closeModal,
	}
}

func (h *hostState) setLoading(v bool) {
	h.mu.Lock()
	h.loading = v
	h.mu.Unlock()
}

func (h *hostState) closeModal() {
	h.mu.Lock()
	h.modal = nil
	h.mu.Unlock()
}

func (h *hostState) snapshot() (loading bool, modal *scoreState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.modal != nil {
		m := *h.modal
		modal = &m
	}
	return h.loading, modal
}
