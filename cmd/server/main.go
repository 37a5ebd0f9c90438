package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"

	"skillsprint/internal/cache"
	"skillsprint/internal/config"
	"skillsprint/internal/database"
	"skillsprint/internal/generator"
	"skillsprint/internal/handlers"
	"skillsprint/internal/logger"
	"skillsprint/internal/payments"
	"skillsprint/internal/questionbank"
	"skillsprint/internal/repository"
	"skillsprint/internal/security"
	"skillsprint/internal/service"
)

const (
	stepDatabase   = "Database connection"
	stepMigrations = "Running migrations"
	stepServices   = "Initializing services"
	stepSeed       = "Seeding default skills"

	loginRateLimit  = 10
	loginRateWindow = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv, cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	status := handlers.NewStartupStatus(stepDatabase, stepMigrations, stepServices, stepSeed)

	var handler http.Handler
	db, err := database.InitializeWithConfig(cfg)
	if err == nil {
		status.CompleteStep(stepDatabase)
		log.Info("database connection established", "type", cfg.DatabaseType)
		if err = db.RunMigrations(ctx); err == nil {
			status.CompleteStep(stepMigrations)
		}
	}

	if err != nil {
		log.Error("storage unavailable, serving health only", "error", err)
		if db != nil {
			db.Close()
		}
		status.MarkDegraded("storage unavailable")
		handler = handlers.NewRouter(nil, status, log)
	} else {
		defer db.Close()

		h, cleanup, buildErr := buildHandlers(ctx, cfg, db, log)
		if buildErr != nil {
			log.Fatal("failed to initialize services", "error", buildErr)
		}
		defer cleanup()
		status.CompleteStep(stepServices)

		if n, seedErr := service.NewSkillService(db, log).SeedDefaults(ctx); seedErr != nil {
			log.Warn("failed to seed default skills", "error", seedErr)
		} else if n > 0 {
			log.Info("default skills created", "count", n)
		}
		status.CompleteStep(stepSeed)

		handler = handlers.NewRouter(h, status, log)
		status.MarkReady()
	}

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", addr, "status", status.State())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// buildHandlers wires repositories, services and handlers. The returned
// cleanup releases the cache connection and the rate limiter.
func buildHandlers(ctx context.Context, cfg *config.Config, db *database.DB, log *logger.Logger) (*handlers.Handlers, func(), error) {
	userRepo := repository.NewUserRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	practiceRepo := repository.NewPracticeRepository(db)

	store, err := cache.New(ctx, cache.Options{
		Backend:       cfg.CacheBackend,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
	})
	if err != nil {
		log.Warn("cache unavailable, falling back to memory", "backend", cfg.CacheBackend, "error", err)
		store = cache.NewMemoryStore()
	}

	gen, backend, err := generator.New(ctx, cfg)
	if err != nil {
		log.Warn("question generator unavailable", "error", err)
		gen, backend = generator.Disabled{}, "disabled"
	}
	log.Info("question generator configured", "backend", backend)

	email, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.FrontendURL, log)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	tokens := security.NewTokenIssuer(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, goalRepo, tokens)
	questionService := service.NewQuestionService(repository.NewQuestionRepository(db), gen, questionbank.New(), goalRepo, log)
	questionService.SetGenerateTimeout(cfg.GeneratorTimeout)
	analytics := service.NewAnalyticsService(userRepo, practiceRepo, store, cfg.StatsCacheTTL, log)
	provider := payments.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.FrontendURL, nil)

	limiter := security.NewRateLimiter(loginRateLimit, loginRateWindow)

	var welcome handlers.WelcomeSender
	if email.IsEnabled() {
		welcome = email
	}

	h := &handlers.Handlers{
		Middleware: handlers.NewMiddleware(authService, limiter, log),
		Auth:       handlers.NewAuthHandler(authService, welcome, log),
		OAuth:      handlers.NewOAuthHandler(authService, oauthProviders(cfg), cfg.OAuthRedirectBaseURL, cfg.FrontendURL, log),
		Practice:   handlers.NewPracticeHandler(questionService, service.NewPracticeService(db, log), log),
		Dashboard:  handlers.NewDashboardHandler(analytics, log),
		Habits:     handlers.NewHabitHandler(service.NewHabitService(repository.NewHabitRepository(db)), log),
		Skills:     handlers.NewSkillHandler(service.NewSkillService(db, log), log),
		Payments:   handlers.NewPaymentHandler(service.NewPaymentService(provider, userRepo, log), log),
	}

	cleanup := func() {
		limiter.Stop()
		if err := store.Close(); err != nil {
			log.Warn("failed to close cache", "error", err)
		}
	}
	return h, cleanup, nil
}

func oauthProviders(cfg *config.Config) map[string]handlers.OAuthProvider {
	return map[string]handlers.OAuthProvider{
		"google": {
			Name:  "google",
			Label: "Google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
		"facebook": {
			Name:  "facebook",
			Label: "Facebook",
			Config: &oauth2.Config{
				ClientID:     cfg.FacebookClientID,
				ClientSecret: cfg.FacebookClientSecret,
				Endpoint:     facebook.Endpoint,
				Scopes:       []string{"email", "public_profile"},
			},
			UserInfoURL: "https://graph.facebook.com/me?fields=id,name,email",
		},
	}
}
