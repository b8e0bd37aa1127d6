// Package config builds process configuration from environment variables so
// main stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server and collaborator configuration.
type Server struct {
	Addr          string
	JWTSigningKey string

	// PostgresDSN enables the postgres draft store when set.
	PostgresDSN string

	// DraftEncryptionKey is a hex-encoded 32-byte key. When set, draft
	// payloads are sealed at rest in the postgres and redis stores.
	DraftEncryptionKey string

	Redis RedisConfig

	// KafkaBrokers enables the Kafka audit publisher when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	// Collaborator base URLs. Empty values disable the corresponding adapter
	// and the service degrades to local-only behavior.
	EntityLookupURL    string
	RemoteValidatorURL string
	SubmissionURL      string
}

// RedisConfig captures Redis connection settings. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DraftTTL     time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("FILING_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	topic := os.Getenv("FILING_KAFKA_TOPIC")
	if topic == "" {
		topic = "filing.audit"
	}

	return Server{
		Addr:               addr,
		JWTSigningKey:      os.Getenv("FILING_JWT_SIGNING_KEY"),
		PostgresDSN:        os.Getenv("FILING_POSTGRES_DSN"),
		DraftEncryptionKey: os.Getenv("FILING_DRAFT_KEY"),
		Redis:              redisFromEnv(),
		KafkaBrokers:       splitList(os.Getenv("FILING_KAFKA_BROKERS")),
		KafkaTopic:         topic,
		EntityLookupURL:    os.Getenv("FILING_ENTITY_LOOKUP_URL"),
		RemoteValidatorURL: os.Getenv("FILING_REMOTE_VALIDATOR_URL"),
		SubmissionURL:      os.Getenv("FILING_SUBMISSION_URL"),
	}
}

func redisFromEnv() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("FILING_REDIS_URL"),
		PoolSize:     intFromEnv("FILING_REDIS_POOL_SIZE", 10),
		MinIdleConns: intFromEnv("FILING_REDIS_MIN_IDLE", 2),
		DialTimeout:  durationFromEnv("FILING_REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  durationFromEnv("FILING_REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: durationFromEnv("FILING_REDIS_WRITE_TIMEOUT", 3*time.Second),
		DraftTTL:     durationFromEnv("FILING_REDIS_DRAFT_TTL", 24*time.Hour),
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func intFromEnv(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil {
			return v
		}
	}
	return fallback
}
