package service

import (
	"context"
	"fmt"
	"time"

	"skillsprint/internal/apperr"
	"skillsprint/internal/database"
	"skillsprint/internal/logger"
	"skillsprint/internal/models"
	"skillsprint/internal/repository"
)

// PracticeService grades submitted answers and maintains daily logs and streaks
type PracticeService struct {
	db           *database.DB
	userRepo     *repository.UserRepository
	goalRepo     *repository.GoalRepository
	practiceRepo *repository.PracticeRepository
	questionRepo *repository.QuestionRepository
	log          *logger.Logger
	now          func() time.Time
}

// NewPracticeService creates a new practice service
func NewPracticeService(db *database.DB, log *logger.Logger) *PracticeService {
	return &PracticeService{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		goalRepo:     repository.NewGoalRepository(db),
		practiceRepo: repository.NewPracticeRepository(db),
		questionRepo: repository.NewQuestionRepository(db),
		log:          log,
		now:          time.Now,
	}
}

// Submit grades a batch of answers and updates today's log and the user's streak.
// The user row is locked for the duration so concurrent submissions serialize.
func (s *PracticeService) Submit(ctx context.Context, userID string, answers []models.Answer) (*models.SubmitResult, error) {
	if len(answers) == 0 {
		return nil, apperr.Validation("No answers submitted")
	}

	now := s.now().UTC()
	today := models.FormatDate(now)
	result := &models.SubmitResult{Results: []models.AnswerResult{}}

	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		users := s.userRepo.WithTx(tx)
		practice := s.practiceRepo.WithTx(tx)
		questions := s.questionRepo.WithTx(tx)

		user, err := users.GetUserByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.Unauthorized("User not found")
		}

		correct := 0
		for _, ans := range answers {
			q, err := questions.GetQuestionByID(ctx, ans.QuestionID)
			if err != nil {
				return err
			}
			if q == nil {
				continue
			}

			isCorrect := ans.SelectedOption == q.CorrectOption
			if isCorrect {
				correct++
			}
			result.Results = append(result.Results, models.AnswerResult{
				QuestionID:    q.ID,
				IsCorrect:     isCorrect,
				CorrectOption: q.CorrectOption,
				Explanation:   q.Explanation,
			})

			attempt := &models.UserAttempt{
				UserID:      userID,
				QuestionID:  q.ID,
				IsCorrect:   isCorrect,
				TimeTaken:   ans.TimeTaken,
				AttemptedAt: now,
			}
			if err := practice.RecordAttempt(ctx, attempt); err != nil {
				return err
			}
		}
		counted := len(result.Results)

		goal, err := s.goalRepo.WithTx(tx).GetGoal(ctx, userID)
		if err != nil {
			return err
		}

		log, err := practice.GetDailyLog(ctx, userID, today)
		if err != nil {
			return err
		}
		if log == nil {
			log = &models.DailyLog{UserID: userID, Date: today}
			if err := practice.CreateDailyLog(ctx, log); err != nil {
				return err
			}
		}

		wasMaintained := log.StreakMaintained
		log.QuestionsAttempted += counted
		log.QuestionsCorrect += correct
		if log.QuestionsAttempted >= goal.DailyTarget() {
			log.StreakMaintained = true
		}
		if err := practice.UpdateDailyLog(ctx, log); err != nil {
			return err
		}

		current, longest := AdvanceStreak(user.CurrentStreak, user.LongestStreak, wasMaintained, log.StreakMaintained)
		if current != user.CurrentStreak || longest != user.LongestStreak {
			if err := users.UpdateStreaks(ctx, userID, current, longest); err != nil {
				return err
			}
			s.log.Info("streak advanced", "user_id", userID, "current_streak", current, "longest_streak", longest)
		}

		result.Score = fmt.Sprintf("%d/%d", correct, counted)
		result.StreakMaintained = log.StreakMaintained
		result.CurrentStreak = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// AdvanceStreak applies the edge trigger: the streak grows only when today's
// log flips from not maintained to maintained, and longest follows current.
func AdvanceStreak(current, longest int, wasMaintained, isMaintained bool) (int, int) {
	if !wasMaintained && isMaintained {
		current++
	}
	if current > longest {
		longest = current
	}
	return current, longest
}
