package quiz

import (
	"time"

	qz "github.com/cheeselab/cheesequiz/internal/quiz"
)

// questionLoadedMsg is sent when a load or reload finished.
type questionLoadedMsg struct {
	Err error
}

// gradedMsg is sent when grading and log submission finished.
type gradedMsg struct {
	Result qz.Result
	Err    error
}

// spinnerTickMsg is sent at short intervals to animate the loading spinner.
type spinnerTickMsg time.Time
