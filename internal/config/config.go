package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	BaseURL            string
	FrontendURL        string
	GoogleClientID     string
	GoogleClientSecret string
	SessionSecret      string
	DatabaseURL        string
	RedisURL           string
	AIProvider         string
	AIKey              string
	EnrichConcurrency  int
	LogFile            string
	Env                string
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:               GetEnv("PORT", "8080"),
		BaseURL:            GetEnv("BASE_URL", "http://localhost:8080"),
		FrontendURL:        GetEnv("FRONTEND_URL", "http://localhost:8080"),
		GoogleClientID:     GetEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: GetEnv("GOOGLE_CLIENT_SECRET", ""),
		SessionSecret:      GetEnv("SESSION_SECRET", "b3a7f6db-46a2-4c11-9de2-5e0f2d1c8a94"),
		DatabaseURL:        GetEnv("DATABASE_URL", ""),
		RedisURL:           GetEnv("REDIS_URL", ""),
		AIProvider:         GetEnv("AI_PROVIDER", "huggingface"),
		AIKey:              GetEnv("AI_API_KEY", ""),
		EnrichConcurrency:  GetEnvInt("ENRICH_CONCURRENCY", 4),
		LogFile:            GetEnv("LOG_FILE", ""),
		Env:                GetEnv("ENV", "development"),
	}, nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvInt reads a positive integer variable, falling back to the default
// when the value is missing, malformed, or non-positive.
func GetEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.GoogleClientID == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID is required")
	}
	if c.GoogleClientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_SECRET is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.AIKey == "" {
		return fmt.Errorf("AI_API_KEY is required")
	}
	return nil
}
