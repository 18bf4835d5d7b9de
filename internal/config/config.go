package config

import (
	"os"
	"strconv"

	"taskflow/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string
	FrontendURL string

	// Redis (rate limiting)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// SMTP notifications
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string

	// AI task generation
	AIBaseURL string
	AIAPIKey  string
	AIModel   string

	// Per-user limit on batch/AI endpoints
	MutationRateLimit  int
	MutationRateWindow int
}

// Load reads configuration from the environment (.env supported).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	smtpPort := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			smtpPort = n
		}
	}

	aiBaseURL := os.Getenv("AI_BASE_URL")
	if aiBaseURL == "" {
		aiBaseURL = "https://api.openai.com/v1"
	}

	aiModel := os.Getenv("AI_MODEL")
	if aiModel == "" {
		aiModel = "gpt-4o-mini"
	}

	mutationRateLimit := 10 // batch/AI calls per ->
	if v := os.Getenv("MUTATION_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			mutationRateLimit = n
		}
	}

	mutationRateWindow := 60 // -> 60 seconds
	if v := os.Getenv("MUTATION_RATE_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			mutationRateWindow = n
		}
	}

	return &Config{
		AppPort:            port,
		DatabaseURL:        dbURL,
		JWTSecret:          jwtSecret,
		FrontendURL:        os.Getenv("FRONTEND_URL"),
		RedisAddr:          redisAddr,
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            redisDB,
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           smtpPort,
		SMTPUsername:       os.Getenv("SMTP_USERNAME"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:           os.Getenv("SMTP_FROM"),
		SMTPFromName:       os.Getenv("SMTP_FROM_NAME"),
		AIBaseURL:          aiBaseURL,
		AIAPIKey:           os.Getenv("AI_API_KEY"),
		AIModel:            aiModel,
		MutationRateLimit:  mutationRateLimit,
		MutationRateWindow: mutationRateWindow,
	}
}
