package repository

import (
	"context"
	"database/sql"
	"fmt"

	"skillsprint/internal/database"
	"skillsprint/internal/models"
)

// HabitRepository handles database operations for habits and their logs
type HabitRepository struct {
	db database.DBTX
}

// NewHabitRepository creates a new habit repository
func NewHabitRepository(db database.DBTX) *HabitRepository {
	return &HabitRepository{db: db}
}

// CreateHabit inserts a new habit and sets its ID
func (r *HabitRepository) CreateHabit(ctx context.Context, habit *models.Habit) error {
	query := `
		INSERT INTO habits (user_id, name, frequency, created_at)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query, habit.UserID, habit.Name, habit.Frequency, habit.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create habit: %w", err)
	}
	habit.ID = id
	return nil
}

// GetHabit retrieves a habit owned by userID, or nil if it does not exist for that user
func (r *HabitRepository) GetHabit(ctx context.Context, id int64, userID string) (*models.Habit, error) {
	query := `
		SELECT id, user_id, name, frequency, created_at
		FROM habits
		WHERE id = ? AND user_id = ?
	`
	habit := &models.Habit{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&habit.ID,
		&habit.UserID,
		&habit.Name,
		&habit.Frequency,
		&habit.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	return habit, nil
}

// ListHabits returns all habits of a user, oldest first
func (r *HabitRepository) ListHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	query := `
		SELECT id, user_id, name, frequency, created_at
		FROM habits
		WHERE user_id = ?
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		var habit models.Habit
		if err := rows.Scan(&habit.ID, &habit.UserID, &habit.Name, &habit.Frequency, &habit.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, habit)
	}

	return habits, rows.Err()
}

// UpdateHabit stores the name and frequency of a habit
func (r *HabitRepository) UpdateHabit(ctx context.Context, habit *models.Habit) error {
	query := "UPDATE habits SET name = ?, frequency = ? WHERE id = ? AND user_id = ?"
	if _, err := r.db.ExecContext(ctx, query, habit.Name, habit.Frequency, habit.ID, habit.UserID); err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return nil
}

// DeleteHabit removes a habit and its logs
func (r *HabitRepository) DeleteHabit(ctx context.Context, id int64, userID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM habit_logs WHERE habit_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete habit logs: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM habits WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}

// GetHabitLog retrieves the log of a habit for a date, or nil
func (r *HabitRepository) GetHabitLog(ctx context.Context, habitID int64, date string) (*models.HabitLog, error) {
	query := `
		SELECT id, habit_id, user_id, log_date, completed
		FROM habit_logs
		WHERE habit_id = ? AND log_date = ?
	`
	log := &models.HabitLog{}
	err := r.db.QueryRowContext(ctx, query, habitID, date).Scan(
		&log.ID,
		&log.HabitID,
		&log.UserID,
		&log.Date,
		&log.Completed,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit log: %w", err)
	}

	return log, nil
}

// CreateHabitLog inserts a completion record and sets its ID
func (r *HabitRepository) CreateHabitLog(ctx context.Context, log *models.HabitLog) error {
	query := `
		INSERT INTO habit_logs (habit_id, user_id, log_date, completed)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query, log.HabitID, log.UserID, log.Date, log.Completed)
	if err != nil {
		return fmt.Errorf("failed to create habit log: %w", err)
	}
	log.ID = id
	return nil
}

// DeleteHabitLog removes a completion record
func (r *HabitRepository) DeleteHabitLog(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM habit_logs WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete habit log: %w", err)
	}
	return nil
}

// CompletedDates returns, per habit, the set of dates the user completed it
func (r *HabitRepository) CompletedDates(ctx context.Context, userID string) (map[int64]map[string]bool, error) {
	query := `
		SELECT habit_id, log_date
		FROM habit_logs
		WHERE user_id = ? AND completed = ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list habit completions: %w", err)
	}
	defer rows.Close()

	dates := make(map[int64]map[string]bool)
	for rows.Next() {
		var habitID int64
		var date string
		if err := rows.Scan(&habitID, &date); err != nil {
			return nil, fmt.Errorf("failed to scan habit completion: %w", err)
		}
		if dates[habitID] == nil {
			dates[habitID] = make(map[string]bool)
		}
		dates[habitID][date] = true
	}

	return dates, rows.Err()
}

// CompletionCountsSince returns the number of completed habit logs per date on or after since
func (r *HabitRepository) CompletionCountsSince(ctx context.Context, userID, since string) (map[string]int, error) {
	query := `
		SELECT log_date, COUNT(*)
		FROM habit_logs
		WHERE user_id = ? AND log_date >= ? AND completed = ?
		GROUP BY log_date
	`
	rows, err := r.db.QueryContext(ctx, query, userID, since, true)
	if err != nil {
		return nil, fmt.Errorf("failed to count habit completions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var date string
		var count int
		if err := rows.Scan(&date, &count); err != nil {
			return nil, fmt.Errorf("failed to scan habit completion count: %w", err)
		}
		counts[date] = count
	}

	return counts, rows.Err()
}
