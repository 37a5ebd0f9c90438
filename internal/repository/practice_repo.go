package repository

import (
	"context"
	"database/sql"
	"fmt"

	"skillsprint/internal/database"
	"skillsprint/internal/models"
)

// PracticeRepository handles daily logs and individual answer attempts
type PracticeRepository struct {
	db database.DBTX
}

// NewPracticeRepository creates a new practice repository
func NewPracticeRepository(db database.DBTX) *PracticeRepository {
	return &PracticeRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *PracticeRepository) WithTx(tx database.DBTX) *PracticeRepository {
	return &PracticeRepository{db: tx}
}

// GetDailyLog retrieves the user's log for a date, or nil if none exists
func (r *PracticeRepository) GetDailyLog(ctx context.Context, userID, date string) (*models.DailyLog, error) {
	query := `
		SELECT id, user_id, log_date, questions_attempted, questions_correct, streak_maintained
		FROM daily_logs
		WHERE user_id = ? AND log_date = ?
	`
	log := &models.DailyLog{}
	err := r.db.QueryRowContext(ctx, query, userID, date).Scan(
		&log.ID,
		&log.UserID,
		&log.Date,
		&log.QuestionsAttempted,
		&log.QuestionsCorrect,
		&log.StreakMaintained,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily log: %w", err)
	}

	return log, nil
}

// CreateDailyLog inserts a new daily log and sets its ID
func (r *PracticeRepository) CreateDailyLog(ctx context.Context, log *models.DailyLog) error {
	query := `
		INSERT INTO daily_logs (user_id, log_date, questions_attempted, questions_correct, streak_maintained)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query,
		log.UserID, log.Date, log.QuestionsAttempted, log.QuestionsCorrect, log.StreakMaintained)
	if err != nil {
		return fmt.Errorf("failed to create daily log: %w", err)
	}
	log.ID = id
	return nil
}

// UpdateDailyLog stores the running totals and flag of a daily log
func (r *PracticeRepository) UpdateDailyLog(ctx context.Context, log *models.DailyLog) error {
	query := `
		UPDATE daily_logs
		SET questions_attempted = ?, questions_correct = ?, streak_maintained = ?
		WHERE id = ?
	`
	if _, err := r.db.ExecContext(ctx, query,
		log.QuestionsAttempted, log.QuestionsCorrect, log.StreakMaintained, log.ID); err != nil {
		return fmt.Errorf("failed to update daily log: %w", err)
	}
	return nil
}

// ListDailyLogsSince returns the user's logs on or after the given date, oldest first
func (r *PracticeRepository) ListDailyLogsSince(ctx context.Context, userID, since string) ([]models.DailyLog, error) {
	query := `
		SELECT id, user_id, log_date, questions_attempted, questions_correct, streak_maintained
		FROM daily_logs
		WHERE user_id = ? AND log_date >= ?
		ORDER BY log_date
	`
	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily logs: %w", err)
	}
	defer rows.Close()

	var logs []models.DailyLog
	for rows.Next() {
		var log models.DailyLog
		if err := rows.Scan(
			&log.ID,
			&log.UserID,
			&log.Date,
			&log.QuestionsAttempted,
			&log.QuestionsCorrect,
			&log.StreakMaintained,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// RecordAttempt stores a single graded answer
func (r *PracticeRepository) RecordAttempt(ctx context.Context, attempt *models.UserAttempt) error {
	query := `
		INSERT INTO user_attempts (user_id, question_id, is_correct, time_taken, attempted_at)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query,
		attempt.UserID, attempt.QuestionID, attempt.IsCorrect, attempt.TimeTaken, attempt.AttemptedAt)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	attempt.ID = id
	return nil
}

// CountAttempts returns how many answers the user has recorded
func (r *PracticeRepository) CountAttempts(ctx context.Context, userID string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM user_attempts WHERE user_id = ?"
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return count, nil
}
