package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration read from the environment (and .env if present).
type Config struct {
	DatabaseURL    string
	ServerPort     string
	AllowedOrigins string
	LogLevel       string
	OpenAIAPIKey   string
	BaseCurrency   string
	RateCacheTTL   time.Duration
	MaxBodyBytes   int64
}

// Load reads .env files (missing files are ignored) and then the environment.
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		BaseCurrency:   strings.ToUpper(getEnv("BASE_CURRENCY", "TRY")),
		RateCacheTTL:   time.Hour,
		MaxBodyBytes:   1 << 20,
	}

	if v := os.Getenv("RATE_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_CACHE_TTL %q: %w", v, err)
		}
		cfg.RateCacheTTL = d
	}

	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MAX_BODY_BYTES %q", v)
		}
		cfg.MaxBodyBytes = n
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
