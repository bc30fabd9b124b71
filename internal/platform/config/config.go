package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server binary reads from the environment,
// so main stays lean.
type Config struct {
	Addr          string
	DatabaseURL   string
	RedisURL      string
	KafkaBrokers  []string
	KafkaTopic    string
	JWTSigningKey string
	JWTIssuer     string
	TokenTTL      time.Duration
	DefaultRegion string
	// SearchRateLimit is requests per minute per account on the search
	// endpoints. Zero disables limiting.
	SearchRateLimit int
	LogLevel        string
}

// FromEnv builds a Config from environment variables, with development
// defaults for everything but the database.
func FromEnv() Config {
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Config{
		Addr:            envOr("TRUEDIAL_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		KafkaBrokers:    brokers,
		KafkaTopic:      envOr("KAFKA_AUDIT_TOPIC", "truedial.audit"),
		JWTSigningKey:   jwtSigningKey,
		JWTIssuer:       envOr("JWT_ISSUER", "truedial"),
		TokenTTL:        envDurationOr("TOKEN_TTL", 24*time.Hour),
		DefaultRegion:   envOr("DEFAULT_PHONE_REGION", "IN"),
		SearchRateLimit: envIntOr("SEARCH_RATE_LIMIT", 60),
		LogLevel:        envOr("LOG_LEVEL", "info"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
