package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"skillsprint/internal/config"
	"skillsprint/internal/database"
	"skillsprint/internal/logger"
	"skillsprint/internal/repository"
	"skillsprint/internal/service"
)

const passTimeout = 30 * time.Minute

func main() {
	once := flag.Bool("once", false, "Run a single reminder pass and exit")
	flag.Parse()

	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv, cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.RunMigrations(ctx); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}

	email, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.FrontendURL, log)
	if err != nil {
		log.Fatal("failed to initialize email service", "error", err)
	}
	if !email.IsEnabled() {
		log.Warn("SES_FROM_EMAIL not set, reminders will only be logged")
	}

	reminders := service.NewReminderService(repository.NewGoalRepository(db), email, cfg.ReminderConcurrency, log)

	runPass := func() {
		passCtx, cancel := context.WithTimeout(ctx, passTimeout)
		defer cancel()

		report, err := reminders.Run(passCtx)
		if err != nil {
			log.Error("reminder pass failed", "error", err)
			return
		}
		log.Info("reminder pass complete", "checked", report.Checked, "sent", report.Sent, "failed", report.Failed)
	}

	if *once {
		runPass()
		return
	}

	scheduler := cron.New(cron.WithLocation(time.UTC))
	if _, err := scheduler.AddFunc(cfg.ReminderSchedule, runPass); err != nil {
		log.Fatal("invalid reminder schedule", "schedule", cfg.ReminderSchedule, "error", err)
	}
	scheduler.Start()
	log.Info("reminder scheduler started", "schedule", cfg.ReminderSchedule)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("reminder scheduler stopping")
	<-scheduler.Stop().Done()
}
