package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// wireQuestion is the union of every field seen across endpoint variants.
type wireQuestion struct {
	OK              *bool           `json:"ok"`
	ID              json.RawMessage `json:"id"`
	Question        string          `json:"question"`
	QuestionText    string          `json:"questionText"`
	ChoiceObjects   []*wireChoice   `json:"choiceObjects"`
	Choices         []string        `json:"choices"`
	ChoiceImageURLs []string        `json:"choiceImageUrls"`
	Images          []string        `json:"images"`
	CorrectIndex    json.RawMessage `json:"correctIndex"`
	Answer          json.RawMessage `json:"answer"`
	Explanation     string          `json:"explanation"`
	Difficulty      string          `json:"difficulty"`
	Error           string          `json:"error"`
}

type wireChoice struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl"`
}

// Normalize decodes a fetched body into a Question. The body may be an
// array of question objects (the first one is used) or a single object with
// an ok flag. Choices are taken, in order of precedence, from choiceObjects,
// from choices zipped with choiceImageUrls, or from a flat image array.
func Normalize(raw []byte) (*Question, error) {
	if err := ValidatePayload(raw); err != nil {
		return nil, err
	}

	body := bytes.TrimSpace(raw)
	if len(body) > 0 && body[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, &ParseError{Err: err}
		}
		if len(items) == 0 {
			return nil, &EmptyResultError{Reason: "empty question list"}
		}
		body = items[0]
	}

	var w wireQuestion
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, &ParseError{Err: err}
	}

	if w.OK != nil && !*w.OK {
		reason := "endpoint reported ok=false"
		if w.Error != "" {
			reason += ": " + w.Error
		}
		return nil, &EmptyResultError{Reason: reason}
	}

	q := &Question{
		ID:          rawString(w.ID),
		Text:        w.Question,
		Choices:     w.choices(),
		Explanation: w.Explanation,
		Difficulty:  w.Difficulty,
	}
	if q.Text == "" {
		q.Text = w.QuestionText
	}

	if len(q.Choices) == 0 {
		return nil, &EmptyResultError{Reason: "question has no choices"}
	}

	idx := w.CorrectIndex
	if isNull(idx) {
		idx = w.Answer
	}
	correct, err := parseIndex(idx)
	if err != nil {
		return nil, &ParseError{Err: fmt.Errorf("correct index: %w", err)}
	}
	if correct < 1 || correct > len(q.Choices) {
		return nil, &ParseError{Err: fmt.Errorf("correct index %d outside 1..%d", correct, len(q.Choices))}
	}
	q.CorrectIndex = correct

	return q, nil
}

func (w *wireQuestion) choices() []Choice {
	switch {
	case len(w.ChoiceObjects) > 0:
		out := make([]Choice, len(w.ChoiceObjects))
		for i, c := range w.ChoiceObjects {
			if c != nil {
				out[i] = Choice{Text: c.Text, ImageURL: c.ImageURL}
			}
		}
		return out

	case len(w.Choices) > 0:
		out := make([]Choice, len(w.Choices))
		for i, text := range w.Choices {
			out[i].Text = text
			if i < len(w.ChoiceImageURLs) {
				out[i].ImageURL = w.ChoiceImageURLs[i]
			}
		}
		return out
	}

	images := w.Images
	if len(images) == 0 {
		images = w.ChoiceImageURLs
	}
	out := make([]Choice, len(images))
	for i, u := range images {
		out[i].ImageURL = u
	}
	return out
}

var errMissingIndex = errors.New("missing")

// parseIndex accepts a JSON number or a numeric string.
func parseIndex(raw json.RawMessage) (int, error) {
	if isNull(raw) {
		return 0, errMissingIndex
	}

	var n json.Number
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		n = json.Number(strings.TrimSpace(s))
	} else {
		n = json.Number(raw)
	}

	if i, err := strconv.Atoi(n.String()); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer: %s", raw)
	}
	return int(f), nil
}

// rawString renders a string-or-number id as a string.
func rawString(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
