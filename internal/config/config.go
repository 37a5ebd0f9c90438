package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	AppEnv     string
	Debug      bool
	ServerPort string

	DatabaseType string
	DatabasePath string
	DatabaseURL  string

	JWTSecretKey string
	TokenTTL     time.Duration

	GeminiAPIKey string
	GeminiModel  string
	LLMURL       string
	LLMModel     string

	GeneratorTimeout time.Duration

	StripeSecretKey     string
	StripeWebhookSecret string
	FrontendURL         string

	CacheBackend  string
	RedisAddr     string
	RedisPassword string
	StatsCacheTTL time.Duration

	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	ReminderSchedule    string
	ReminderConcurrency int

	OAuthRedirectBaseURL string
	GoogleClientID       string
	GoogleClientSecret   string
	FacebookClientID     string
	FacebookClientSecret string
}

// Load reads configuration from the environment (and a .env file when present) with sensible defaults
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		Debug:      getBool("DEBUG", false),
		ServerPort: getEnv("PORT", "5000"),

		DatabaseType: getEnv("DB_TYPE", "sqlite"),
		DatabasePath: getEnv("DB_PATH", "./skillsprint.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		JWTSecretKey: getEnv("JWT_SECRET_KEY", "skill-sprint-jwt-secret"),
		TokenTTL:     getDuration("TOKEN_TTL", 7*24*time.Hour),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMURL:       getEnv("LLM_URL", ""),
		LLMModel:     getEnv("LLM_MODEL", "qwen3-8b"),

		GeneratorTimeout: getDuration("GENERATOR_TIMEOUT", 10*time.Second),

		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		FrontendURL:         getEnv("FRONTEND_URL", "http://localhost:5173"),

		CacheBackend:  getEnv("CACHE_BACKEND", "memory"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		StatsCacheTTL: getDuration("STATS_CACHE_TTL", 5*time.Minute),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "SkillSprint"),

		ReminderSchedule:    getEnv("REMINDER_SCHEDULE", "0 18 * * *"),
		ReminderConcurrency: getInt("REMINDER_CONCURRENCY", 4),

		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", ""),
		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		FacebookClientID:     getEnv("FACEBOOK_CLIENT_ID", ""),
		FacebookClientSecret: getEnv("FACEBOOK_CLIENT_SECRET", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
