package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Postgres  PostgresConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Storage   StorageConfig
	OpenAI    OpenAIConfig
	RateLimit RateLimitConfig
	Tracing   TracingConfig
}

type ServerConfig struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type PostgresConfig struct {
	DatabaseURL     string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CartTTL  time.Duration
}

// StorageConfig points at the MinIO (S3 compatible) bucket holding item images.
type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	Region        string
	PublicBaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type RateLimitConfig struct {
	AIRequests int
	AIWindow   time.Duration
}

type TracingConfig struct {
	Enabled bool
}

// Load reads .env outside production and builds the config from the environment.
func Load() *Config {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	return LoadEnv()
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:         getEnv("APP_ENV", "development"),
			Port:           getEnv("PORT", ":8000"),
			AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "https://localhost:3000"}),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOGGER_LEVEL", "info"),
			Encoding: getEnv("LOGGER_ENCODING", "json"),
		},
		Postgres: PostgresConfig{
			DatabaseURL:     getEnv("DATABASE_URL", ""),
			MaxConns:        int32(getEnvInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:        int32(getEnvInt("POSTGRES_MIN_CONNS", 2)),
			MaxConnLifetime: getEnvDuration("POSTGRES_CONN_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", ""),
			Issuer:   getEnv("JWT_ISSUER", ""),
			Audience: getEnv("JWT_AUDIENCE", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CartTTL:  getEnvDuration("CART_TTL", 72*time.Hour),
		},
		Storage: StorageConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", ""),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
			Bucket:        getEnv("MINIO_BUCKET", "cuattro-items"),
			Region:        getEnv("MINIO_REGION", "us-east-1"),
			PublicBaseURL: getEnv("MINIO_PUBLIC_BASE_URL", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4-turbo-preview"),
		},
		RateLimit: RateLimitConfig{
			AIRequests: getEnvInt("AI_RATE_LIMIT", 10),
			AIWindow:   getEnvDuration("AI_RATE_WINDOW", time.Minute),
		},
		Tracing: TracingConfig{
			Enabled: getEnvBool("TRACING_ENABLED", false),
		},
	}
}

// Validate fails fast on settings the API cannot start without.
func (c *Config) Validate() error {
	required := map[string]string{
		"JWT_SECRET":       c.JWT.Secret,
		"DATABASE_URL":     c.Postgres.DatabaseURL,
		"MINIO_ENDPOINT":   c.Storage.Endpoint,
		"MINIO_ACCESS_KEY": c.Storage.AccessKey,
		"MINIO_SECRET_KEY": c.Storage.SecretKey,
	}

	var missing []string
	for _, k := range []string{"JWT_SECRET", "DATABASE_URL", "MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY"} {
		if required[k] == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing env vars: %s", strings.Join(missing, ", "))
	}

	if c.RateLimit.AIRequests <= 0 {
		return errors.New("AI_RATE_LIMIT must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
