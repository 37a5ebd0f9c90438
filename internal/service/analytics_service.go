package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"skillsprint/internal/apperr"
	"skillsprint/internal/cache"
	"skillsprint/internal/logger"
	"skillsprint/internal/models"
	"skillsprint/internal/repository"
)

const (
	analyticsWindowDays = 30
	trendDays           = 14
	weeklyWindows       = 4
	dashboardDays       = 7
)

// AnalyticsService derives dashboards and summaries from daily logs.
// Results are cached per user and never invalidated by writes.
type AnalyticsService struct {
	userRepo     *repository.UserRepository
	practiceRepo *repository.PracticeRepository
	cache        cache.Store
	ttl          time.Duration
	log          *logger.Logger
	now          func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(userRepo *repository.UserRepository, practiceRepo *repository.PracticeRepository, store cache.Store, ttl time.Duration, log *logger.Logger) *AnalyticsService {
	if store == nil {
		store = cache.NoopStore{}
	}
	return &AnalyticsService{
		userRepo:     userRepo,
		practiceRepo: practiceRepo,
		cache:        store,
		ttl:          ttl,
		log:          log,
		now:          time.Now,
	}
}

// Summary returns the user's 30 day analytics summary
func (s *AnalyticsService) Summary(ctx context.Context, userID string) (*models.AnalyticsSummary, error) {
	key := "analytics:" + userID
	var cached models.AnalyticsSummary
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	user, logs, today, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := Summarize(user, logs, today)
	s.toCache(ctx, key, summary)
	return &summary, nil
}

// Dashboard returns the user's dashboard stats
func (s *AnalyticsService) Dashboard(ctx context.Context, userID string) (*models.DashboardStats, error) {
	key := "stats:" + userID
	var cached models.DashboardStats
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	user, logs, today, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := DashboardFor(user, logs, today)
	s.toCache(ctx, key, stats)
	return &stats, nil
}

func (s *AnalyticsService) load(ctx context.Context, userID string) (*models.User, []models.DailyLog, time.Time, error) {
	today := models.StartOfDay(s.now())
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, today, err
	}
	if user == nil {
		return nil, nil, today, apperr.NotFound("User not found")
	}
	since := models.FormatDate(today.AddDate(0, 0, -analyticsWindowDays))
	logs, err := s.practiceRepo.ListDailyLogsSince(ctx, userID, since)
	if err != nil {
		return nil, nil, today, err
	}
	return user, logs, today, nil
}

func (s *AnalyticsService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	found, err := cache.GetJSON(ctx, s.cache, key, dest)
	if err != nil {
		s.log.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	return found
}

func (s *AnalyticsService) toCache(ctx context.Context, key string, value interface{}) {
	if err := cache.SetJSON(ctx, s.cache, key, value, s.ttl); err != nil {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
}

// Accuracy is the percentage of correct answers rounded to one decimal, 0 when nothing was attempted
func Accuracy(correct, attempted int) float64 {
	if attempted <= 0 {
		return 0
	}
	return round1(float64(correct) / float64(attempted) * 100)
}

// ProductivityScore blends streak, accuracy and consistency into a 0-100 score
func ProductivityScore(currentStreak int, accuracy float64, activeDays int) float64 {
	streakScore := float64(min(currentStreak*5, 40))
	accuracyScore := accuracy * 0.4
	consistencyScore := float64(min(activeDays*2, 20))
	return math.Min(round1(streakScore+accuracyScore+consistencyScore), 100)
}

// Summarize aggregates logs into the analytics summary as of today
func Summarize(user *models.User, logs []models.DailyLog, today time.Time) models.AnalyticsSummary {
	today = models.StartOfDay(today)
	byDate := make(map[string]models.DailyLog, len(logs))
	summary := models.AnalyticsSummary{
		CurrentStreak: user.CurrentStreak,
		LongestStreak: user.LongestStreak,
		Weekly:        make([]models.WeeklyBucket, 0, weeklyWindows),
		DailyTrend:    make([]models.DailyPoint, 0, trendDays),
	}

	for _, l := range logs {
		byDate[l.Date] = l
		summary.TotalAttempted += l.QuestionsAttempted
		summary.TotalCorrect += l.QuestionsCorrect
		if l.StreakMaintained {
			summary.ActiveDays++
		}
	}
	summary.Accuracy = Accuracy(summary.TotalCorrect, summary.TotalAttempted)

	for i := 0; i < weeklyWindows; i++ {
		start := today.AddDate(0, 0, -((weeklyWindows-1-i)*7 + 6))
		bucket := models.WeeklyBucket{
			Week:  fmt.Sprintf("W%d", i+1),
			Start: models.FormatDate(start),
		}
		for d := 0; d < 7; d++ {
			if l, ok := byDate[models.FormatDate(start.AddDate(0, 0, d))]; ok {
				bucket.Attempted += l.QuestionsAttempted
				bucket.Correct += l.QuestionsCorrect
			}
		}
		bucket.Accuracy = Accuracy(bucket.Correct, bucket.Attempted)
		summary.Weekly = append(summary.Weekly, bucket)
	}

	for i := 0; i < trendDays; i++ {
		day := today.AddDate(0, 0, -(trendDays - 1 - i))
		l := byDate[models.FormatDate(day)]
		summary.DailyTrend = append(summary.DailyTrend, models.DailyPoint{
			Date:      models.FormatDate(day),
			Day:       day.Format("02 Jan"),
			Attempted: l.QuestionsAttempted,
			Correct:   l.QuestionsCorrect,
			Accuracy:  Accuracy(l.QuestionsCorrect, l.QuestionsAttempted),
		})
	}

	summary.ProductivityScore = ProductivityScore(user.CurrentStreak, summary.Accuracy, summary.ActiveDays)
	return summary
}

// DashboardFor builds the dashboard overview as of today
func DashboardFor(user *models.User, logs []models.DailyLog, today time.Time) models.DashboardStats {
	today = models.StartOfDay(today)
	stats := models.DashboardStats{
		CurrentStreak: user.CurrentStreak,
		LongestStreak: user.LongestStreak,
		Heatmap:       make(map[string]int, len(logs)),
		Weekly:        make([]models.WeekDay, 0, dashboardDays),
		IsPro:         user.IsPro,
	}

	byDate := make(map[string]models.DailyLog, len(logs))
	attempted, correct := 0, 0
	for _, l := range logs {
		byDate[l.Date] = l
		attempted += l.QuestionsAttempted
		correct += l.QuestionsCorrect
		if l.StreakMaintained {
			stats.Heatmap[l.Date] = 1
		} else {
			stats.Heatmap[l.Date] = 0
		}
	}
	stats.Accuracy = Accuracy(correct, attempted)

	for i := 0; i < dashboardDays; i++ {
		day := today.AddDate(0, 0, -(dashboardDays - 1 - i))
		l := byDate[models.FormatDate(day)]
		stats.Weekly = append(stats.Weekly, models.WeekDay{
			Day:       day.Format("Mon"),
			Date:      models.FormatDate(day),
			Attempted: l.QuestionsAttempted,
			Correct:   l.QuestionsCorrect,
		})
	}
	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
