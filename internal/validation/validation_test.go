package validation

import (
	"errors"
	"strings"
	"testing"

	"skillsprint/internal/apperr"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "valid name",
			input:   "Read 20 pages",
			wantErr: false,
		},
		{
			name:    "single character",
			input:   "J",
			wantErr: false,
		},
		{
			name:    "empty name",
			input:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "name too long",
			input:   strings.Repeat("a", 101),
			wantErr: true,
		},
		{
			name:    "name with hyphen",
			input:   "Mary-Jane",
			wantErr: false,
		},
		{
			name:    "name with apostrophe",
			input:   "O'Brien",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "password123",
			wantErr:  false,
		},
		{
			name:     "password exactly 8 characters",
			password: "pass1234",
			wantErr:  false,
		},
		{
			name:     "password too short",
			password: "pass123",
			wantErr:  true,
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  true,
		},
		{
			name:     "long password",
			password: "thisIsAVeryLongPasswordThatShouldBeValid123",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateGoal(t *testing.T) {
	tests := []struct {
		name       string
		topic      string
		difficulty string
		target     int
		wantField  string
	}{
		{name: "valid goal", topic: "Python", difficulty: "beginner", target: 5},
		{name: "missing topic", topic: " ", difficulty: "beginner", target: 5, wantField: "topic"},
		{name: "missing difficulty", topic: "SQL", difficulty: "", target: 5, wantField: "difficulty"},
		{name: "zero target", topic: "SQL", difficulty: "beginner", target: 0, wantField: "question_count"},
		{name: "target too large", topic: "SQL", difficulty: "beginner", target: 51, wantField: "question_count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGoal(tt.topic, tt.difficulty, tt.target)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("ValidateGoal() unexpected error = %v", err)
				}
				return
			}
			var ve apperr.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("ValidateGoal() error = %v, want ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("ValidateGoal() field = %v, want %v", ve.Field, tt.wantField)
			}
		})
	}
}

func TestValidateFrequency(t *testing.T) {
	for _, frequency := range []string{"daily", "weekly"} {
		if err := ValidateFrequency(frequency); err != nil {
			t.Errorf("ValidateFrequency(%q) error = %v", frequency, err)
		}
	}
	for _, frequency := range []string{"", "monthly", "Daily"} {
		if err := ValidateFrequency(frequency); err == nil {
			t.Errorf("ValidateFrequency(%q) should fail", frequency)
		}
	}
}

func TestValidateProgress(t *testing.T) {
	tests := []struct {
		name    string
		pct     float64
		done    int
		wantErr bool
	}{
		{name: "zero", pct: 0, done: 0},
		{name: "complete", pct: 100, done: 5},
		{name: "over 100", pct: 100.5, done: 5, wantErr: true},
		{name: "negative pct", pct: -1, done: 0, wantErr: true},
		{name: "negative topics", pct: 10, done: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProgress(tt.pct, tt.done)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProgress() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
