package models

import "time"

// DefaultDailyTarget applies when a user has not set a goal
const DefaultDailyTarget = 5

// User represents a learner account
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	Timezone         string    `json:"timezone"`
	IsPro            bool      `json:"is_pro"`
	StripeCustomerID string    `json:"-"`
	OAuthProvider    string    `json:"-"`
	OAuthSubject     string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}

// UserGoal is the single active learning goal of a user
type UserGoal struct {
	ID                  int64  `json:"id"`
	UserID              string `json:"-"`
	Topic               string `json:"topic"`
	Difficulty          string `json:"difficulty"`
	DailyQuestionTarget int    `json:"daily_question_target"`
}

// DailyTarget returns the goal's target, or the default when goal is nil
func (g *UserGoal) DailyTarget() int {
	if g == nil || g.DailyQuestionTarget <= 0 {
		return DefaultDailyTarget
	}
	return g.DailyQuestionTarget
}
