package models

import "time"

// Habit frequencies
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

// Habit is a named recurring activity tracked by a user
type Habit struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Frequency string    `json:"frequency"`
	CreatedAt time.Time `json:"created_at"`
}

// HabitLog marks a habit as completed on a calendar date
type HabitLog struct {
	ID        int64  `json:"id"`
	HabitID   int64  `json:"habit_id"`
	UserID    string `json:"-"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// HabitWithStatus includes today's completion and the current streak
type HabitWithStatus struct {
	Habit
	DoneToday bool `json:"done_today"`
	Streak    int  `json:"streak"`
}
