package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the static record of game identity, model credentials, and
// runtime settings. Immutable after Load.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Game identity
	Domain             string
	GameType           string
	Subject            string
	Topic              string
	TargetAgeMin       int
	TargetAgeMax       int
	LearningObjectives []string

	// Model configuration
	LLMProvider         string // "gemini", "anthropic" or "mock"
	GeminiAPIKey        string
	AnthropicAPIKey     string
	PrimaryModel        string // higher-capability tier
	FastModel           string // routine tier
	ComplexityThreshold float64
	MaxActionRounds     int

	// Asset generation service (pipeline internals live elsewhere)
	AssetEndpoint string
	AssetAPIKey   string

	// Session persistence
	RedisURL   string
	SessionTTL time.Duration
}

// Load reads configuration from the environment, filling defaults for
// anything unset. A .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		Domain:       getEnv("GAME_DOMAIN", "educational_games"),
		GameType:     getEnv("GAME_TYPE", "multiplication_runner"),
		Subject:      getEnv("GAME_SUBJECT", "mathematics"),
		Topic:        getEnv("GAME_TOPIC", "multiplication"),
		TargetAgeMin: getEnvInt("TARGET_AGE_MIN", 8),
		TargetAgeMax: getEnvInt("TARGET_AGE_MAX", 12),
		LearningObjectives: []string{
			"Master multiplication facts 2-12",
			"Improve calculation speed and accuracy",
			"Build confidence in mathematical problem solving",
		},

		LLMProvider:         getEnv("LLM_PROVIDER", "gemini"),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		AnthropicAPIKey:     getEnv("ANTHROPIC_API_KEY", ""),
		PrimaryModel:        getEnv("PRIMARY_MODEL", "gemini-2.0-pro"),
		FastModel:           getEnv("FAST_MODEL", "gemini-2.0-flash"),
		ComplexityThreshold: getEnvFloat("COMPLEXITY_THRESHOLD", 0.6),
		MaxActionRounds:     getEnvInt("MAX_ACTION_ROUNDS", 1),

		AssetEndpoint: getEnv("ASSET_ENDPOINT", ""),
		AssetAPIKey:   getEnv("ASSET_API_KEY", ""),

		RedisURL:   getEnv("REDIS_URL", "localhost:6379"),
		SessionTTL: getEnvDuration("SESSION_TTL", time.Hour),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks bounded fields.
func (c *Config) Validate() error {
	if c.ComplexityThreshold < 0 || c.ComplexityThreshold > 1 {
		return fmt.Errorf("complexity threshold must be between 0.0 and 1.0, got %.2f", c.ComplexityThreshold)
	}
	if c.MaxActionRounds < 0 {
		return fmt.Errorf("max action rounds cannot be negative, got %d", c.MaxActionRounds)
	}
	if c.TargetAgeMin > c.TargetAgeMax {
		return fmt.Errorf("target age range is inverted: %d-%d", c.TargetAgeMin, c.TargetAgeMax)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
