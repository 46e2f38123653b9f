package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr         string
	Environment  string
	LogLevel     string
	Database     DatabaseConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	Blob         BlobConfig
	Auth         AuthConfig
	Disclosure   DisclosureConfig
	Review       ReviewConfig
	Notification NotificationConfig
}

// DatabaseConfig selects the document database. An empty DSN keeps every
// store in memory.
type DatabaseConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration
}

// RedisConfig backs the share-token revocation list. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig backs the notification transport. No brokers means notifications
// are only logged.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	ClientID     string
	WriteTimeout time.Duration
}

// BlobConfig backs download-handle resolution.
type BlobConfig struct {
	ConnectionString string
	ContainerName    string
	HandleTTL        time.Duration
	Timeout          time.Duration
}

// AuthConfig verifies bearer credentials issued by the identity provider.
type AuthConfig struct {
	JWTSigningKey string
	Issuer        string
	Audience      string
	AdminToken    string
}

// DisclosureConfig tunes share grants.
type DisclosureConfig struct {
	DefaultGrantTTL time.Duration
	MaxGrantTTL     time.Duration
}

// ReviewConfig toggles the strict approval policy.
type ReviewConfig struct {
	StrictPolicy bool
}

// NotificationConfig tunes the best-effort dispatcher.
type NotificationConfig struct {
	BufferSize       int
	RetryInterval    time.Duration
	SendTimeout      time.Duration
	FailureThreshold int
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:        envString("PROOFPACK_ADDR", ":8080"),
		Environment: envString("PROOFPACK_ENV", "development"),
		LogLevel:    envString("PROOFPACK_LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			DSN:             os.Getenv("PROOFPACK_DB_DSN"),
			MaxOpenConns:    envInt("PROOFPACK_DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("PROOFPACK_DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("PROOFPACK_DB_CONN_MAX_LIFETIME", 15*time.Minute),
			QueryTimeout:    envDuration("PROOFPACK_DB_QUERY_TIMEOUT", 3*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("PROOFPACK_REDIS_URL"),
			PoolSize:     envInt("PROOFPACK_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("PROOFPACK_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("PROOFPACK_REDIS_DIAL_TIMEOUT", 2*time.Second),
			ReadTimeout:  envDuration("PROOFPACK_REDIS_READ_TIMEOUT", 500*time.Millisecond),
			WriteTimeout: envDuration("PROOFPACK_REDIS_WRITE_TIMEOUT", 500*time.Millisecond),
		},
		Kafka: KafkaConfig{
			Brokers:      envList("PROOFPACK_KAFKA_BROKERS"),
			Topic:        envString("PROOFPACK_KAFKA_TOPIC", "proofpack.notifications"),
			ClientID:     envString("PROOFPACK_KAFKA_CLIENT_ID", "proofpack"),
			WriteTimeout: envDuration("PROOFPACK_KAFKA_WRITE_TIMEOUT", 3*time.Second),
		},
		Blob: BlobConfig{
			ConnectionString: os.Getenv("PROOFPACK_BLOB_CONNECTION_STRING"),
			ContainerName:    envString("PROOFPACK_BLOB_CONTAINER", "proof-documents"),
			HandleTTL:        envDuration("PROOFPACK_BLOB_HANDLE_TTL", 5*time.Minute),
			Timeout:          envDuration("PROOFPACK_BLOB_TIMEOUT", 3*time.Second),
		},
		Auth: AuthConfig{
			// Development default; production must override.
			JWTSigningKey: envString("PROOFPACK_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			Issuer:        envString("PROOFPACK_JWT_ISSUER", "marketplace-identity"),
			Audience:      envString("PROOFPACK_JWT_AUDIENCE", "proofpack"),
			AdminToken:    os.Getenv("PROOFPACK_ADMIN_TOKEN"),
		},
		Disclosure: DisclosureConfig{
			DefaultGrantTTL: envDuration("PROOFPACK_SHARE_DEFAULT_TTL", 14*24*time.Hour),
			MaxGrantTTL:     envDuration("PROOFPACK_SHARE_MAX_TTL", 90*24*time.Hour),
		},
		Review: ReviewConfig{
			StrictPolicy: envBool("PROOFPACK_REVIEW_STRICT_POLICY", true),
		},
		Notification: NotificationConfig{
			BufferSize:       envInt("PROOFPACK_NOTIFY_BUFFER_SIZE", 1000),
			RetryInterval:    envDuration("PROOFPACK_NOTIFY_RETRY_INTERVAL", 5*time.Second),
			SendTimeout:      envDuration("PROOFPACK_NOTIFY_SEND_TIMEOUT", 2*time.Second),
			FailureThreshold: envInt("PROOFPACK_NOTIFY_FAILURE_THRESHOLD", 5),
		},
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
