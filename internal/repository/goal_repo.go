package repository

import (
	"context"
	"database/sql"
	"fmt"

	"skillsprint/internal/database"
	"skillsprint/internal/models"
)

// GoalRepository handles the single learning goal owned by each user
type GoalRepository struct {
	db database.DBTX
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db database.DBTX) *GoalRepository {
	return &GoalRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *GoalRepository) WithTx(tx database.DBTX) *GoalRepository {
	return &GoalRepository{db: tx}
}

// GetGoal retrieves the user's goal, or nil when none is set
func (r *GoalRepository) GetGoal(ctx context.Context, userID string) (*models.UserGoal, error) {
	query := `
		SELECT id, user_id, topic, difficulty, daily_question_target
		FROM user_goals
		WHERE user_id = ?
	`
	goal := &models.UserGoal{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Topic,
		&goal.Difficulty,
		&goal.DailyQuestionTarget,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return goal, nil
}

// UpsertGoal replaces the user's goal, creating it if needed
func (r *GoalRepository) UpsertGoal(ctx context.Context, goal *models.UserGoal) error {
	existing, err := r.GetGoal(ctx, goal.UserID)
	if err != nil {
		return err
	}

	if existing == nil {
		query := `
			INSERT INTO user_goals (user_id, topic, difficulty, daily_question_target)
			VALUES (?, ?, ?, ?)
		`
		id, err := r.db.ExecReturningID(ctx, query, goal.UserID, goal.Topic, goal.Difficulty, goal.DailyQuestionTarget)
		if err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}
		goal.ID = id
		return nil
	}

	query := `
		UPDATE user_goals
		SET topic = ?, difficulty = ?, daily_question_target = ?
		WHERE id = ?
	`
	if _, err := r.db.ExecContext(ctx, query, goal.Topic, goal.Difficulty, goal.DailyQuestionTarget, existing.ID); err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	goal.ID = existing.ID
	return nil
}

// ReminderTarget is a user with a goal and the state of their log for a given day
type ReminderTarget struct {
	UserID        string
	Email         string
	CurrentStreak int
	Topic         string
	Difficulty    string
	DailyTarget   int
	Maintained    bool
}

// ListReminderTargets returns every user with a goal along with whether their log for date is maintained
func (r *GoalRepository) ListReminderTargets(ctx context.Context, date string) ([]ReminderTarget, error) {
	query := `
		SELECT u.id, u.email, u.current_streak, g.topic, g.difficulty, g.daily_question_target, l.streak_maintained
		FROM users u
		JOIN user_goals g ON g.user_id = u.id
		LEFT JOIN daily_logs l ON l.user_id = u.id AND l.log_date = ?
		ORDER BY u.created_at
	`
	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminder targets: %w", err)
	}
	defer rows.Close()

	var targets []ReminderTarget
	for rows.Next() {
		var t ReminderTarget
		var maintained sql.NullBool
		if err := rows.Scan(&t.UserID, &t.Email, &t.CurrentStreak, &t.Topic, &t.Difficulty, &t.DailyTarget, &maintained); err != nil {
			return nil, fmt.Errorf("failed to scan reminder target: %w", err)
		}
		t.Maintained = maintained.Valid && maintained.Bool
		targets = append(targets, t)
	}

	return targets, rows.Err()
}
