package quiz

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by StateError.
var (
	ErrNoQuestion  = errors.New("no question loaded")
	ErrNoSelection = errors.New("no option selected")
)

// NetworkError indicates the fetch failed in transport or returned a non-2xx status.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError indicates the body could not be decoded into a question.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse question payload: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// EmptyResultError indicates the endpoint answered but had no usable question.
type EmptyResultError struct {
	Reason string
}

func (e *EmptyResultError) Error() string {
	return "no question available: " + e.Reason
}

// StateError indicates grading was attempted in a state that does not allow it.
// It is recovered by showing a guidance message, never surfaced as a failure.
type StateError struct {
	Err error
}

func (e *StateError) Error() string {
	return "grade: " + e.Err.Error()
}

func (e *StateError) Unwrap() error { return e.Err }

// IsLoadError reports whether err belongs to the "could not load" class.
func IsLoadError(err error) bool {
	var netErr *NetworkError
	var parseErr *ParseError
	var emptyErr *EmptyResultError
	return errors.As(err, &netErr) || errors.As(err, &parseErr) || errors.As(err, &emptyErr)
}
