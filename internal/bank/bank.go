// Package bank holds the questions served by the companion endpoint.
package bank

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/cheeselab/cheesequiz/internal/quiz"
)

//go:embed sample.json
var sampleJSON []byte

// Entry is one bank question with the metadata used for filtering.
type Entry struct {
	ExamKey    string
	Period     string
	Topic      string
	Difficulty string
	Question   *quiz.Question
}

// Filter selects entries. Empty fields match everything.
type Filter struct {
	ExamKey    string
	Period     string
	Topic      string
	Difficulty string
	Limit      int
}

func (f Filter) matches(e Entry) bool {
	return (f.ExamKey == "" || f.ExamKey == e.ExamKey) &&
		(f.Period == "" || f.Period == e.Period) &&
		(f.Topic == "" || f.Topic == e.Topic) &&
		(f.Difficulty == "" || f.Difficulty == e.Difficulty)
}

// Bank is an in-memory question bank. It is safe for concurrent use.
type Bank struct {
	entries []Entry

	mu  sync.Mutex
	rng *rand.Rand
}

type entryMeta struct {
	ExamKey    string `json:"examKey"`
	Period     string `json:"period"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
}

// Load reads a bank from a JSON file, or the embedded sample when path is empty.
func Load(path string) (*Bank, error) {
	if path == "" {
		return Parse(sampleJSON)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON array of question objects. Each element may use any
// wire shape the quiz loader accepts, plus examKey/period/topic/difficulty.
func Parse(data []byte) (*Bank, error) {
	if err := quiz.ValidatePayload(data); err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("bank must be a JSON array of questions: %w", err)
	}
	if len(items) == 0 {
		return nil, errors.New("bank has no questions")
	}

	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		q, err := quiz.Normalize(item)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		var meta entryMeta
		if err := json.Unmarshal(item, &meta); err != nil {
			return nil, fmt.Errorf("question %d metadata: %w", i+1, err)
		}
		if q.Difficulty == "" {
			q.Difficulty = meta.Difficulty
		}
		entries = append(entries, Entry{
			ExamKey:    meta.ExamKey,
			Period:     meta.Period,
			Topic:      meta.Topic,
			Difficulty: meta.Difficulty,
			Question:   q,
		})
	}

	return New(entries, nil), nil
}

// New builds a bank from entries. A nil rng is seeded randomly.
func New(entries []Entry, rng *rand.Rand) *Bank {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Bank{entries: entries, rng: rng}
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.entries)
}

// Pick returns up to f.Limit (at least 1) random questions matching f.
func (b *Bank) Pick(f Filter) []*quiz.Question {
	var matched []*quiz.Question
	for _, e := range b.entries {
		if f.matches(e) {
			matched = append(matched, e.Question)
		}
	}

	b.mu.Lock()
	b.rng.Shuffle(len(matched), func(i, j int) {
		matched[i], matched[j] = matched[j], matched[i]
	})
	b.mu.Unlock()

	limit := f.Limit
	if limit < 1 {
		limit = 1
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// Legacy is the single-object payload of the original image quiz script.
type Legacy struct {
	OK           bool     `json:"ok"`
	ID           string   `json:"id,omitempty"`
	QuestionText string   `json:"questionText,omitempty"`
	Images       []string `json:"images,omitempty"`
	CorrectIndex int      `json:"correctIndex,omitempty"`
	Explanation  string   `json:"explanation,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// PickLegacy returns one random image-only question for examKey in the
// legacy shape. Questions with a choice lacking an image are skipped since
// the legacy shape carries images only.
func (b *Bank) PickLegacy(examKey string) Legacy {
	var candidates []*quiz.Question
	for _, e := range b.entries {
		if (examKey == "" || e.ExamKey == examKey) && allImages(e.Question) {
			candidates = append(candidates, e.Question)
		}
	}
	if len(candidates) == 0 {
		return Legacy{OK: false, Error: "no image question for exam key"}
	}

	b.mu.Lock()
	q := candidates[b.rng.IntN(len(candidates))]
	b.mu.Unlock()

	images := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		images[i] = c.ImageURL
	}
	return Legacy{
		OK:           true,
		ID:           q.ID,
		QuestionText: q.Text,
		Images:       images,
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
		Difficulty:   q.Difficulty,
	}
}

func allImages(q *quiz.Question) bool {
	for _, c := range q.Choices {
		if c.ImageURL == "" {
			return false
		}
	}
	return true
}
