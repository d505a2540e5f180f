package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default notification window
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Config holds the process configuration read from the environment
type Config struct {
	DBType      string
	DatabaseURL string
	SQLitePath  string

	HTTPAddr     string
	CORSOrigins  []string
	SecureCookie bool
	AppURL       string

	JWTSecret   string
	TokenTTL    time.Duration
	AdminSecret string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	TelegramBotToken      string
	EnableScheduler       bool
	NotificationStartHour int
	NotificationEndHour   int

	LogMode  string
	Location *time.Location
}

// Load reads .env (when present) and the environment
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		DBType:      strings.ToLower(getEnv("DB_TYPE", "sqlite")),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", "data/synapz.db"),

		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		AppURL:      strings.TrimSuffix(getEnv("APP_URL", ""), "/"),

		SecureCookie: getEnvBool("COOKIE_SECURE", false),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenTTL:    getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		AdminSecret: getEnv("ADMIN_SECRET", ""),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		TelegramBotToken:      getEnv("TELEGRAM_BOT_TOKEN", ""),
		EnableScheduler:       getEnvBool("ENABLE_SCHEDULER", true),
		NotificationStartHour: getEnvHour("NOTIFICATION_START_HOUR", DefaultNotificationStartHour),
		NotificationEndHour:   getEnvHour("NOTIFICATION_END_HOUR", DefaultNotificationEndHour),

		LogMode: getEnv("LOG_MODE", "development"),
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DSN returns the connection string for the configured database
func (c *Config) DSN() string {
	if c.DBType == "postgres" {
		return c.DatabaseURL
	}
	return c.SQLitePath
}

func (c *Config) validate() error {
	switch c.DBType {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_TYPE=postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", c.DBType)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	if c.NotificationStartHour > c.NotificationEndHour {
		return fmt.Errorf("NOTIFICATION_START_HOUR %d is after NOTIFICATION_END_HOUR %d",
			c.NotificationStartHour, c.NotificationEndHour)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getEnvDuration accepts Go durations ("36h") and whole days ("7d")
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if days, ok := strings.CutSuffix(v, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil && n > 0 {
			return time.Duration(n) * 24 * time.Hour
		}
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getEnvHour(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
