package models

import "time"

// DailyLog aggregates one user's practice for one UTC calendar day
type DailyLog struct {
	ID                 int64  `json:"-"`
	UserID             string `json:"-"`
	Date               string `json:"date"`
	QuestionsAttempted int    `json:"questions_attempted"`
	QuestionsCorrect   int    `json:"questions_correct"`
	StreakMaintained   bool   `json:"streak_maintained"`
}

// UserAttempt records a single answered question
type UserAttempt struct {
	ID          int64
	UserID      string
	QuestionID  int64
	IsCorrect   bool
	TimeTaken   int
	AttemptedAt time.Time
}

// Answer is one entry of a submitted practice batch
type Answer struct {
	QuestionID     int64  `json:"question_id"`
	SelectedOption string `json:"selected_option"`
	TimeTaken      int    `json:"time_taken"`
}

// AnswerResult reports the grading of one answer
type AnswerResult struct {
	QuestionID    int64  `json:"question_id"`
	IsCorrect     bool   `json:"is_correct"`
	CorrectOption string `json:"correct_option"`
	Explanation   string `json:"explanation"`
}

// SubmitResult is the outcome of grading a practice batch
type SubmitResult struct {
	Score            string         `json:"score"`
	StreakMaintained bool           `json:"streak_maintained"`
	CurrentStreak    int            `json:"current_streak"`
	Results          []AnswerResult `json:"results"`
}
