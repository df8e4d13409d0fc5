package planner

import (
	"os"
	"strconv"
	"time"
)

// Supported model providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config carries the process-wide generation settings. It is read-only after
// initialization and shared by every concurrent request; per-request state
// lives in the session each request creates for itself.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string

	MaxDays int

	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int

	RequestTimeout time.Duration
	RetryBackoff   time.Duration
}

// LoadConfig builds a Config from the environment. The sampling parameters
// are fixed: the session primer was recorded against them and changing them
// degrades the odds of schema-shaped replies.
func LoadConfig() Config {
	provider := getEnv("MODEL_PROVIDER", ProviderGemini)

	keyVar := "GEMINI_API_KEY"
	model := "gemini-1.5-flash"
	if provider == ProviderOpenAI {
		keyVar = "OPENAI_API_KEY"
		model = "gpt-5-mini"
	}

	return Config{
		Provider:        provider,
		Model:           getEnv("TRIP_MODEL", model),
		APIKey:          os.Getenv(keyVar),
		BaseURL:         os.Getenv("TRIP_MODEL_BASE_URL"),
		MaxDays:         getEnvAsInt("TRIP_MAX_DAYS", DefaultMaxDays),
		Temperature:     1,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 8192,
		RequestTimeout:  getEnvAsDuration("TRIP_MODEL_TIMEOUT", 45*time.Second),
		RetryBackoff:    getEnvAsDuration("TRIP_RETRY_BACKOFF", 2*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
