package validation

import (
	"regexp"
	"strings"

	"skillsprint/internal/apperr"
	"skillsprint/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const (
	maxNameLength   = 100
	maxDailyTarget  = 50
	maxTopicLength  = 50
	minPasswordSize = 8
)

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperr.ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return apperr.ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return apperr.ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < minPasswordSize {
		return apperr.ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks a habit, skill or topic name
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) > maxNameLength {
		return apperr.ValidationError{Field: "name", Message: "name must be at most 100 characters"}
	}
	return nil
}

// ValidateGoal checks the topic, difficulty and daily target of a learning goal
func ValidateGoal(topic, difficulty string, target int) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return apperr.ValidationError{Field: "topic", Message: "topic is required"}
	}
	if len(topic) > maxTopicLength {
		return apperr.ValidationError{Field: "topic", Message: "topic must be at most 50 characters"}
	}
	if strings.TrimSpace(difficulty) == "" {
		return apperr.ValidationError{Field: "difficulty", Message: "difficulty is required"}
	}
	if target < 1 || target > maxDailyTarget {
		return apperr.ValidationError{Field: "question_count", Message: "question_count must be between 1 and 50"}
	}
	return nil
}

// ValidateFrequency checks a habit frequency
func ValidateFrequency(frequency string) error {
	switch frequency {
	case models.FrequencyDaily, models.FrequencyWeekly:
		return nil
	}
	return apperr.ValidationError{Field: "frequency", Message: "frequency must be daily or weekly"}
}

// ValidateProgress checks a skill completion percentage and topic count
func ValidateProgress(completionPct float64, topicsDone int) error {
	if completionPct < 0 || completionPct > 100 {
		return apperr.ValidationError{Field: "completion_pct", Message: "completion_pct must be between 0 and 100"}
	}
	if topicsDone < 0 {
		return apperr.ValidationError{Field: "topics_done", Message: "topics_done must not be negative"}
	}
	return nil
}
