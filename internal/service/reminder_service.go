package service

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"skillsprint/internal/logger"
	"skillsprint/internal/models"
	"skillsprint/internal/repository"
)

// ReminderSender delivers a streak reminder to one user
type ReminderSender interface {
	SendStreakReminder(ctx context.Context, toEmail string, streak int, topic string) error
}

// ReminderTargetLister lists users with goals and the state of their log for a date
type ReminderTargetLister interface {
	ListReminderTargets(ctx context.Context, date string) ([]repository.ReminderTarget, error)
}

// ReminderReport summarises one reminder pass
type ReminderReport struct {
	Checked int
	Sent    int
	Failed  int
}

// ReminderService emails users who have not yet met today's goal
type ReminderService struct {
	targets     ReminderTargetLister
	sender      ReminderSender
	concurrency int
	log         *logger.Logger
	now         func() time.Time
}

// NewReminderService creates a new reminder service
func NewReminderService(targets ReminderTargetLister, sender ReminderSender, concurrency int, log *logger.Logger) *ReminderService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &ReminderService{
		targets:     targets,
		sender:      sender,
		concurrency: concurrency,
		log:         log,
		now:         time.Now,
	}
}

// Run performs one pass. Per-user failures are logged and do not stop the pass.
func (s *ReminderService) Run(ctx context.Context) (ReminderReport, error) {
	today := models.FormatDate(s.now())
	s.log.Info("running daily reminder check", "date", today)

	targets, err := s.targets.ListReminderTargets(ctx, today)
	if err != nil {
		return ReminderReport{}, err
	}

	var sent, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, t := range targets {
		if t.Maintained {
			continue
		}
		g.Go(func() error {
			if err := s.sender.SendStreakReminder(gctx, t.Email, t.CurrentStreak, t.Topic); err != nil {
				failed.Add(1)
				s.log.Error("failed to send reminder", "user_id", t.UserID, "error", err)
				return nil
			}
			sent.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	report := ReminderReport{Checked: len(targets), Sent: int(sent.Load()), Failed: int(failed.Load())}
	s.log.Info("reminder check finished", "checked", report.Checked, "sent", report.Sent, "failed", report.Failed)
	return report, nil
}
