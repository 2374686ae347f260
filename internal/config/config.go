package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pg-connect/pkg/logger"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverS3       = "s3"
	StoreDriverRedis    = "redis"
)

type Config struct {
	HTTPPort       string
	Env            string
	AllowedOrigins []string
	MetricsEnabled bool
	Store          StoreConfig
	DB             DBConfig
	Events         EventsConfig
	Auth           AuthConfig
	GenAI          GenAIConfig
	Fees           FeesConfig
}

type StoreConfig struct {
	Driver     string
	KeyPrefix  string
	SQLitePath string
	S3         S3Config
	Redis      RedisConfig
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	PathStyle       bool
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type EventsConfig struct {
	NATSURL       string
	SubjectPrefix string
}

type AuthConfig struct {
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
	SessionTTL        time.Duration
}

type GenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type FeesConfig struct {
	InitialAmount float64
}

func Load(log logger.Logger) (Config, error) {
	err := loadDotEnv(log)
	if err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		Store: StoreConfig{
			Driver:     strings.ToLower(getEnv("STORE_DRIVER", StoreDriverSQLite)),
			KeyPrefix:  getEnv("STORE_KEY_PREFIX", "pg_connect_"),
			SQLitePath: getEnv("SQLITE_PATH", "pg-connect.db"),
			S3: S3Config{
				Bucket:          getEnv("STORE_S3_BUCKET", ""),
				Region:          getEnv("STORE_S3_REGION", "us-east-1"),
				Endpoint:        getEnv("STORE_S3_ENDPOINT", ""),
				PathStyle:       getEnvBool("STORE_S3_PATH_STYLE", false),
				Prefix:          getEnv("STORE_S3_PREFIX", "slots/"),
				AccessKeyID:     getEnv("STORE_S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("STORE_S3_SECRET_ACCESS_KEY", ""),
			},
			Redis: RedisConfig{
				Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
				Password: getEnv("REDIS_PASSWORD", ""),
				DB:       getEnvInt("REDIS_DB", 0),
			},
		},
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "pg_connect"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Events: EventsConfig{
			NATSURL:       getEnv("NATS_URL", ""),
			SubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "pgconnect.slots"),
		},
		Auth: AuthConfig{
			AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
			AdminPassword:     getEnv("ADMIN_PASSWORD", "admin123"),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			SessionTTL:        getEnvDuration("SESSION_TTL", 12*time.Hour),
		},
		GenAI: GenAIConfig{
			APIKey:  getEnv("GENAI_API_KEY", getEnv("GEMINI_API_KEY", getEnv("API_KEY", ""))),
			BaseURL: getEnv("GENAI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/"),
			Model:   getEnv("GENAI_MODEL", "gemini-2.5-flash"),
			Timeout: getEnvDuration("GENAI_TIMEOUT", 30*time.Second),
		},
		Fees: FeesConfig{
			InitialAmount: getEnvFloat("FEES_DEFAULT_AMOUNT", 5000),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory, StoreDriverSQLite, StoreDriverPostgres, StoreDriverRedis:
	case StoreDriverS3:
		if c.Store.S3.Bucket == "" {
			return fmt.Errorf("STORE_S3_BUCKET required for s3 store driver")
		}
		if (c.Store.S3.AccessKeyID == "") != (c.Store.S3.SecretAccessKey == "") {
			return fmt.Errorf("STORE_S3_ACCESS_KEY_ID and STORE_S3_SECRET_ACCESS_KEY must be set together")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Auth.AdminUsername == "" {
		return fmt.Errorf("ADMIN_USERNAME must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
