package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	SupabaseUrl       string
	SupabaseJWTSecret string
	FrontendURL       string
	GinMode           string
	// Logging
	LogLevel  string
	LogFormat string
	// Redis (optional). Empty RedisURL disables the match cache and keeps rate limits in memory.
	RedisURL      string
	RedisPassword string
	// Matching
	MatchCacheTTLSeconds    int
	MatchDefaultLimit       int
	MatchMaxLimit           int
	MatchStrictCategory     bool
	MatchWeightsFile        string
	MatchRateLimitPerMinute int
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DBUrl:             getEnv("DATABASE_URL", ""),
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		GinMode:           getEnv("GIN_MODE", "debug"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		MatchCacheTTLSeconds:    getEnvInt("MATCH_CACHE_TTL_SECONDS", 300),
		MatchDefaultLimit:       getEnvInt("MATCH_DEFAULT_LIMIT", 10),
		MatchMaxLimit:           getEnvInt("MATCH_MAX_LIMIT", 50),
		MatchStrictCategory:     getEnvBool("MATCH_STRICT_CATEGORY_FILTER", true),
		MatchWeightsFile:        getEnv("MATCH_WEIGHTS_FILE", ""),
		MatchRateLimitPerMinute: getEnvInt("MATCH_RATE_LIMIT_PER_MINUTE", 60),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.SupabaseJWTSecret == "" && cfg.SupabaseUrl == "" {
		log.Println("WARNING: neither SUPABASE_JWT_SECRET nor SUPABASE_URL is set. Authenticated routes will reject every token.")
	}

	return cfg, nil
}

// JWKSURL is the Supabase signing-key endpoint, or "" when SUPABASE_URL is unset.
func (c *Config) JWKSURL() string {
	if c.SupabaseUrl == "" {
		return ""
	}
	return c.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
}

func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
