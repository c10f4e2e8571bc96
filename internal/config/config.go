package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	Env         string
	DatabaseDSN string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	JWTTTL      time.Duration
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	EmailFrom   string
	AppURL      string
	FrontendURL string
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Env:         getEnv("APP_ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=usermgmt port=5432 sslmode=disable"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:   getEnv("JWT_SECRET", "change-me"),
		JWTTTL:      getEnvDuration("JWT_TTL", 7*24*time.Hour),
		SMTPHost:    os.Getenv("SMTP_HOST"),
		SMTPPort:    getEnvInt("SMTP_PORT", 587),
		SMTPUser:    os.Getenv("SMTP_USER"),
		SMTPPass:    os.Getenv("SMTP_PASSWORD"),
		EmailFrom:   getEnv("EMAIL_FROM", "no-reply@localhost"),
		AppURL:      getEnv("APP_URL", "http://localhost:8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

// Production reports whether the app runs with production error redaction.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
