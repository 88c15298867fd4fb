// Package config loads service configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full service configuration.
type Config struct {
	Addr          string
	PostgresURL   string
	Redis         RedisConfig
	Kafka         KafkaConfig
	NLP           NLPConfig
	ResolutionURL string
	JWTSigningKey string
	// AdminKeyHash is the bcrypt hash of the admin API key. Empty disables
	// the admin endpoints.
	AdminKeyHash string
	Parallelism  int
	RateLimit    int
	RateWindow   time.Duration
	Webhook      WebhookConfig
}

// RedisConfig configures the optional latest-profile cache. An empty URL
// disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the event relay. No brokers disables relaying;
// events stay in the outbox until a relay picks them up.
type KafkaConfig struct {
	Brokers []string
}

// NLPConfig points at the text-analysis collaborator.
type NLPConfig struct {
	BaseURL     string
	Engine      string
	MaxAttempts int
	BaseDelay   time.Duration
}

// WebhookConfig configures a single statically-registered webhook receiver.
// An empty URL disables dispatching.
type WebhookConfig struct {
	URL         string
	Secret      string
	MaxAttempts int
	BaseDelay   time.Duration
}

// FromEnv builds a Config from environment variables, with development
// defaults for everything except external collaborators.
func FromEnv() Config {
	return Config{
		Addr:        getenv("AEGIS_ADDR", ":8080"),
		PostgresURL: os.Getenv("AEGIS_POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("AEGIS_REDIS_URL"),
			PoolSize:     getenvInt("AEGIS_REDIS_POOL_SIZE", 10),
			MinIdleConns: getenvInt("AEGIS_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getenvDuration("AEGIS_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getenvDuration("AEGIS_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getenvDuration("AEGIS_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("AEGIS_KAFKA_BROKERS")),
		},
		NLP: NLPConfig{
			BaseURL:     os.Getenv("AEGIS_NLP_URL"),
			Engine:      getenv("AEGIS_NLP_ENGINE", "comprehend"),
			MaxAttempts: getenvInt("AEGIS_NLP_MAX_ATTEMPTS", 3),
			BaseDelay:   getenvDuration("AEGIS_NLP_BASE_DELAY", 250*time.Millisecond),
		},
		ResolutionURL: os.Getenv("AEGIS_RESOLUTION_URL"),
		JWTSigningKey: getenv("AEGIS_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		AdminKeyHash:  os.Getenv("AEGIS_ADMIN_KEY_HASH"),
		Parallelism:   getenvInt("AEGIS_SCORE_PARALLELISM", 8),
		RateLimit:     getenvInt("AEGIS_RATE_LIMIT", 60),
		RateWindow:    getenvDuration("AEGIS_RATE_WINDOW", time.Minute),
		Webhook: WebhookConfig{
			URL:         os.Getenv("AEGIS_WEBHOOK_URL"),
			Secret:      os.Getenv("AEGIS_WEBHOOK_SECRET"),
			MaxAttempts: getenvInt("AEGIS_WEBHOOK_MAX_ATTEMPTS", 3),
			BaseDelay:   getenvDuration("AEGIS_WEBHOOK_BASE_DELAY", 500*time.Millisecond),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitNonEmpty(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
