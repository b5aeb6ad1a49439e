package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Auth      AuthConfig
	Scheduler SchedulerConfig
	Otel      OtelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	Timezone           string
	LogFilePath        string
	SweepLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	DashboardCacheTTL  time.Duration
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AuthConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	AdminEmail        string
	AdminPasswordHash string
	// LoginRatePerMinute bounds login and self-registration attempts.
	LoginRatePerMinute int
	LoginBurst         int
}

type SchedulerConfig struct {
	Enabled       bool
	SweepSchedule string
	LockTTL       time.Duration
}

type OtelConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			Timezone:           getEnv("APP_TIMEZONE", "Asia/Manila"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			SweepLogFilePath:   getEnv("SWEEP_LOG_FILE_PATH", "logs/sweep.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			DashboardCacheTTL:  getEnvAsDuration("DASHBOARD_CACHE_TTL", 10*time.Second),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Gym Membership"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", "default_secret"),
			TokenTTL:           getEnvAsDuration("JWT_TTL", 24*time.Hour),
			AdminEmail:         getEnv("ADMIN_EMAIL", "admin@gym.local"),
			AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
			LoginRatePerMinute: getEnvAsInt("LOGIN_RATE_PER_MINUTE", 10),
			LoginBurst:         getEnvAsInt("LOGIN_BURST", 5),
		},
		Scheduler: SchedulerConfig{
			Enabled:       getEnvAsBool("SWEEP_ENABLED", true),
			SweepSchedule: getEnv("SWEEP_SCHEDULE", "0 0 * * * *"),
			LockTTL:       getEnvAsDuration("SWEEP_LOCK_TTL", 5*time.Minute),
		},
		Otel: OtelConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "gym-membership-backend"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
