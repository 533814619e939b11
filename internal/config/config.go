package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Logging configuration
	LogLevel  string
	LogFormat string // text or json

	// Session configuration
	SessionCookie string
	SessionTTL    time.Duration

	// Demo data
	SeedDemo      bool
	DemoUserEmail string

	// Simulated integrations
	SimulatedDelay  time.Duration
	SlackHistoryTTL time.Duration

	// Protection
	RateLimitMax int
	BcryptCost   int
}

// Load loads configuration from an optional .env file and environment variables
func Load() (*Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	environment := strings.ToLower(getEnv("ENVIRONMENT", "development"))
	defaultDelay := time.Duration(0)
	if environment == "production" {
		defaultDelay = 800 * time.Millisecond
	}

	cfg := &Config{
		Port:            getEnv("PORT", "3000"),
		Environment:     environment,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		SessionCookie:   getEnv("SESSION_COOKIE", "expie_session"),
		SessionTTL:      getEnvAsDuration("SESSION_TTL", 24*time.Hour),
		SeedDemo:        getEnvAsBool("SEED_DEMO", true),
		DemoUserEmail:   getEnv("DEMO_USER_EMAIL", "sarah@expiestack.com"),
		SimulatedDelay:  getEnvAsDuration("SIMULATED_DELAY", defaultDelay),
		SlackHistoryTTL: getEnvAsDuration("SLACK_HISTORY_TTL", 24*time.Hour),
		RateLimitMax:    getEnvAsInt("RATE_LIMIT_MAX", 200),
		BcryptCost:      getEnvAsInt("BCRYPT_COST", 10),
	}

	// Validate fields
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", cfg.BcryptCost)
	}
	if cfg.RateLimitMax <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be positive")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
