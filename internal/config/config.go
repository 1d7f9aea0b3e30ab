package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Security
	JWTSecret string

	// Payment provider
	MollieAPIKey   string
	MollieBaseURL  string
	PublicBaseURL  string // where the provider reaches us for webhooks
	CheckoutReturn string // where the shopper lands after paying

	// Leaderboard cache
	RedisAddr     string
	RedisPassword string

	// Notifications
	BotToken     string
	NotifyChatID int64

	// Application
	AppEnv   string
	AppPort  string
	LogLevel string

	// Rate Limiting
	RateLimitPerUser int
	RateLimitPerIP   int
	RateLimitWindow  int // seconds

	// Storefront
	LeaderboardSize   int
	LeaderboardTTLSec int
	ShowcaseLimit     int
	ProviderTimeout   int // seconds
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "buynothing"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "buynothing_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET_KEY", ""),

		MollieAPIKey:   getEnv("MOLLIE_API_KEY", ""),
		MollieBaseURL:  getEnv("MOLLIE_BASE_URL", "https://api.mollie.com/v2"),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", ""),
		CheckoutReturn: getEnv("CHECKOUT_RETURN_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		BotToken:     getEnv("BOT_TOKEN", ""),
		NotifyChatID: getEnvInt64("NOTIFY_CHAT_ID", 0),

		AppEnv:   getEnv("APP_ENV", "development"),
		AppPort:  getEnv("APP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		RateLimitPerUser: getEnvInt("RATE_LIMIT_PER_USER", 30),
		RateLimitPerIP:   getEnvInt("RATE_LIMIT_PER_IP", 100),
		RateLimitWindow:  getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),

		LeaderboardSize:   getEnvInt("LEADERBOARD_SIZE", 100),
		LeaderboardTTLSec: getEnvInt("LEADERBOARD_TTL_SECONDS", 60),
		ShowcaseLimit:     getEnvInt("SHOWCASE_LIMIT", 3),
		ProviderTimeout:   getEnvInt("PROVIDER_TIMEOUT_SECONDS", 15),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
	}
	if c.MollieAPIKey == "" {
		return fmt.Errorf("MOLLIE_API_KEY is required")
	}
	if c.PublicBaseURL == "" {
		return fmt.Errorf("PUBLIC_BASE_URL is required for payment webhooks")
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if c.AppEnv != "production" {
		return nil
	}

	if c.DBSSLMode != "require" {
		return fmt.Errorf("DB_SSLMODE must be 'require' in production")
	}
	if c.JWTSecret == "your_jwt_secret_minimum_32_chars_here_change_this" {
		return fmt.Errorf("JWT_SECRET_KEY must be changed from default in production")
	}
	if len(c.MollieAPIKey) >= 5 && c.MollieAPIKey[:5] == "test_" {
		return fmt.Errorf("MOLLIE_API_KEY must be a live key in production")
	}
	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) GetRateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindow) * time.Second
}

func (c *Config) GetLeaderboardTTL() time.Duration {
	return time.Duration(c.LeaderboardTTLSec) * time.Second
}

func (c *Config) GetProviderTimeout() time.Duration {
	return time.Duration(c.ProviderTimeout) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}
