package quiz

import "strconv"

// DefaultEndpoint is the question endpoint used when Config.Endpoint is empty.
// It points at the companion server started by `cheesequiz serve`.
const DefaultEndpoint = "http://localhost:8080/questions"

// DefaultLimit is the number of questions requested when Config.Limit is unset.
const DefaultLimit = 1

// Fixed user-facing messages.
const (
	MsgLoading     = "loading question..."
	MsgLoadFailed  = "could not load the question"
	MsgLoadFirst   = "load a question first"
	MsgSelectFirst = "select an option first"
	MsgCorrect     = "correct"
	MsgIncorrect   = "incorrect, correct answer was %d"
)

// Config identifies which question to request. It is read once from the
// embedding program and not modified afterwards.
type Config struct {
	ExamKey    string
	Period     string
	Topic      string
	Difficulty string
	Limit      int

	// Endpoint overrides DefaultEndpoint.
	Endpoint string
}

// Choice is one selectable answer option. Empty strings mean absent.
type Choice struct {
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Empty reports whether the choice has neither text nor an image. Such a
// choice still occupies its slot so that numbering stays aligned with the
// correct index.
func (c Choice) Empty() bool {
	return c.Text == "" && c.ImageURL == ""
}

// Question is the canonical question after normalization.
type Question struct {
	ID           string   `json:"id,omitempty"`
	Text         string   `json:"question"`
	Choices      []Choice `json:"choiceObjects"`
	CorrectIndex int      `json:"correctIndex"` // 1-based
	Explanation  string   `json:"explanation,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"`
}

// Label returns the 1-based display number for the 0-based slot i.
// Rendering and grading both go through Label so they cannot disagree.
func Label(i int) int {
	return i + 1
}

// Result is the outcome of grading a single selection.
type Result struct {
	Correct      bool
	Message      string
	Selected     int
	CorrectIndex int
}

// Percent returns the score of a single-question result.
func (r Result) Percent() int {
	if r.Correct {
		return 100
	}
	return 0
}

// LogRecord is the payload forwarded to the log submission capability.
type LogRecord struct {
	QuestionID    string `json:"questionId"`
	SelectedIndex string `json:"selectedIndex"`
	CorrectIndex  string `json:"correctIndex"`
	IsCorrect     bool   `json:"isCorrect"`
	Difficulty    string `json:"difficulty"`
}

// LogSubmission groups the records of one grading with the widget that
// produced them. It is what the log submission capability receives.
type LogSubmission struct {
	SessionID string      `json:"sessionId"`
	ExamKey   string      `json:"examKey"`
	Records   []LogRecord `json:"records"`
}

func newLogRecord(q *Question, r Result) LogRecord {
	return LogRecord{
		QuestionID:    q.ID,
		SelectedIndex: strconv.Itoa(r.Selected),
		CorrectIndex:  strconv.Itoa(r.CorrectIndex),
		IsCorrect:     r.Correct,
		Difficulty:    q.Difficulty,
	}
}
