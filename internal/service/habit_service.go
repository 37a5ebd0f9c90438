package service

import (
	"context"
	"strings"
	"time"

	"skillsprint/internal/apperr"
	"skillsprint/internal/models"
	"skillsprint/internal/repository"
	"skillsprint/internal/validation"
)

const heatmapDays = 365

// HabitService manages habits, their daily completion toggles and streaks
type HabitService struct {
	habitRepo *repository.HabitRepository
	now       func() time.Time
}

// NewHabitService creates a new habit service
func NewHabitService(habitRepo *repository.HabitRepository) *HabitService {
	return &HabitService{habitRepo: habitRepo, now: time.Now}
}

// HabitStreak counts consecutive completed days ending at asOf
func HabitStreak(completed map[string]bool, asOf time.Time) int {
	streak := 0
	day := models.StartOfDay(asOf)
	for completed[models.FormatDate(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// List returns the user's habits with today's status and current streak
func (s *HabitService) List(ctx context.Context, userID string) ([]models.HabitWithStatus, error) {
	habits, err := s.habitRepo.ListHabits(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.habitRepo.CompletedDates(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := models.FormatDate(now)
	result := make([]models.HabitWithStatus, 0, len(habits))
	for _, h := range habits {
		dates := completed[h.ID]
		result = append(result, models.HabitWithStatus{
			Habit:     h,
			DoneToday: dates[today],
			Streak:    HabitStreak(dates, now),
		})
	}
	return result, nil
}

// Create adds a habit for the user; frequency defaults to daily
func (s *HabitService) Create(ctx context.Context, userID, name, frequency string) (*models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("Missing habit name")
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if frequency == "" {
		frequency = models.FrequencyDaily
	}
	if err := validation.ValidateFrequency(frequency); err != nil {
		return nil, err
	}

	habit := &models.Habit{
		UserID:    userID,
		Name:      name,
		Frequency: frequency,
		CreatedAt: s.now().UTC(),
	}
	if err := s.habitRepo.CreateHabit(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// Update changes the name and/or frequency of one of the user's habits.
// Empty values leave the field unchanged.
func (s *HabitService) Update(ctx context.Context, userID string, habitID int64, name, frequency string) (*models.Habit, error) {
	habit, err := s.owned(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		if err := validation.ValidateName(name); err != nil {
			return nil, err
		}
		habit.Name = name
	}
	if frequency != "" {
		if err := validation.ValidateFrequency(frequency); err != nil {
			return nil, err
		}
		habit.Frequency = frequency
	}

	if err := s.habitRepo.UpdateHabit(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// Delete removes one of the user's habits along with its logs
func (s *HabitService) Delete(ctx context.Context, userID string, habitID int64) error {
	if _, err := s.owned(ctx, userID, habitID); err != nil {
		return err
	}
	return s.habitRepo.DeleteHabit(ctx, habitID, userID)
}

// ToggleToday flips today's completion for a habit and reports the new state
func (s *HabitService) ToggleToday(ctx context.Context, userID string, habitID int64) (bool, error) {
	if _, err := s.owned(ctx, userID, habitID); err != nil {
		return false, err
	}

	today := models.FormatDate(s.now())
	existing, err := s.habitRepo.GetHabitLog(ctx, habitID, today)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := s.habitRepo.DeleteHabitLog(ctx, existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}

	log := &models.HabitLog{
		HabitID:   habitID,
		UserID:    userID,
		Date:      today,
		Completed: true,
	}
	if err := s.habitRepo.CreateHabitLog(ctx, log); err != nil {
		return false, err
	}
	return true, nil
}

// Heatmap returns completion counts per date across all habits for the last year
func (s *HabitService) Heatmap(ctx context.Context, userID string) (map[string]int, error) {
	since := models.FormatDate(s.now().AddDate(0, 0, -heatmapDays))
	return s.habitRepo.CompletionCountsSince(ctx, userID, since)
}

func (s *HabitService) owned(ctx context.Context, userID string, habitID int64) (*models.Habit, error) {
	habit, err := s.habitRepo.GetHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, apperr.NotFound("Habit not found")
	}
	return habit, nil
}
