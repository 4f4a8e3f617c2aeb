// Package server is the companion question endpoint: it serves questions
// from a bank and accepts graded answer logs.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cheeselab/cheesequiz/internal/bank"
	"github.com/cheeselab/cheesequiz/internal/quiz"
	"github.com/cheeselab/cheesequiz/internal/report"
)

const (
	maxLimit    = 50
	maxLogBytes = 1 << 20
)

// Server wires the question bank and the log sink to HTTP routes.
type Server struct {
	bank    *bank.Bank
	sink    report.Sink
	log     zerolog.Logger
	origins []string
}

// New returns a server. A nil sink rejects POST /logs with 503.
func New(b *bank.Bank, sink report.Sink, logger zerolog.Logger, origins []string) *Server {
	return &Server{bank: b, sink: sink, log: logger, origins: origins}
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.requestLogger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.origins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.healthz)
	r.Get("/questions", s.questions)
	r.Get("/exec", s.legacy)
	r.Post("/logs", s.submitLogs)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Int("questions", s.bank.Len()).Msg("serving")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "questions": s.bank.Len()})
}

func (s *Server) questions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := bank.Filter{
		ExamKey:    q.Get("examKey"),
		Period:     q.Get("period"),
		Topic:      q.Get("topic"),
		Difficulty: q.Get("difficulty"),
		Limit:      1,
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		f.Limit = min(max(n, 1), maxLimit)
	}

	picked := s.bank.Pick(f)
	if picked == nil {
		picked = []*quiz.Question{}
	}
	writeJSON(w, http.StatusOK, picked)
}

func (s *Server) legacy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bank.PickLegacy(r.URL.Query().Get("examKey")))
}

func (s *Server) submitLogs(w http.ResponseWriter, r *http.Request) {
	if s.sink == nil {
		writeErr(w, http.StatusServiceUnavailable, "log storage is disabled")
		return
	}

	var sub quiz.LogSubmission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLogBytes)).Decode(&sub); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(sub.Records) == 0 {
		writeErr(w, http.StatusBadRequest, "records must not be empty")
		return
	}
	if sub.SessionID == "" {
		sub.SessionID = uuid.NewString()
	}

	if err := s.sink.Submit(r.Context(), sub); err != nil {
		s.log.Error().Err(err).Str("exam_key", sub.ExamKey).Msg("store answer logs")
		writeErr(w, http.StatusInternalServerError, "could not store logs")
		return
	}
	s.log.Info().
		Str("session", sub.SessionID).
		Str("exam_key", sub.ExamKey).
		Int("records", len(sub.Records)).
		Msg("answer logs stored")
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errResp struct {
	Error string `json:"error"`
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResp{Error: msg})
}
