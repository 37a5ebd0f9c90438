package models

import "time"

// OptionKeys are the four answer slots every question carries
var OptionKeys = []string{"A", "B", "C", "D"}

// Question is an immutable multiple choice question shared by all users
type Question struct {
	ID            int64             `json:"id"`
	Topic         string            `json:"topic"`
	Difficulty    string            `json:"difficulty"`
	QuestionText  string            `json:"question_text"`
	Options       map[string]string `json:"options"`
	CorrectOption string            `json:"-"`
	Explanation   string            `json:"-"`
	CreatedAt     time.Time         `json:"-"`
}

// QuestionDraft is a question that has not been persisted yet
type QuestionDraft struct {
	QuestionText  string            `json:"question_text"`
	Options       map[string]string `json:"options"`
	CorrectOption string            `json:"correct_option"`
	Explanation   string            `json:"explanation"`
}

// QuestionSource names the tier of the fallback chain that satisfied a request
type QuestionSource string

const (
	SourceStored    QuestionSource = "stored"
	SourceGenerated QuestionSource = "generated"
	SourceBuiltin   QuestionSource = "builtin"
	SourcePartial   QuestionSource = "partial"
	SourceNone      QuestionSource = "none"
)

// Resolution is the outcome of resolving questions for a topic and difficulty
type Resolution struct {
	Questions []Question
	Source    QuestionSource
	Message   string
}
