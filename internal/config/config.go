package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Enabled     bool
	Addr        string
	Password    string
	DB          int
	MaxRetries  int
	DialTimeout int
	Timeout     int
	Prefix      string
}

type StorageConfig struct {
	Driver       string // "local" or "s3"
	ExportDir    string
	PublicPrefix string
	ExternalURL  string
	MaxFileAge   time.Duration
}

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
	Prefix          string
	URLTTL          time.Duration
}

type AppConfig struct {
	Port    string
	Debug   bool
	Seed    bool
	Version string

	InstrumentTypes    []string
	DefaultRate        float64
	UpcomingWindowDays int

	Postgres PostgresConfig
	Redis    RedisConfig
	Storage  StorageConfig
	S3       S3Config
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustAtoi(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int value %q: %v", s, err)
	}
	return i
}

func mustBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Fatalf("invalid bool value %q: %v", s, err)
	}
	return b
}

func mustFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Fatalf("invalid float value %q: %v", s, err)
	}
	return f
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func Load() AppConfig {
	return AppConfig{
		Port:    getenv("APP_PORT", "3000"),
		Debug:   mustBool(getenv("APP_DEBUG", "false")),
		Seed:    mustBool(getenv("APP_SEED", "true")),
		Version: getenv("APP_VERSION", "2.0.0"),

		InstrumentTypes:    splitList(getenv("INSTRUMENT_TYPES", "CHECK,PROMISSORY_NOTE,INVOICE")),
		DefaultRate:        mustFloat(getenv("DEFAULT_INTEREST_RATE", "5.0")),
		UpcomingWindowDays: mustAtoi(getenv("UPCOMING_WINDOW_DAYS", "7")),

		Postgres: PostgresConfig{
			Host:     getenv("PG_HOST", "127.0.0.1"),
			Port:     mustAtoi(getenv("PG_PORT", "5432")),
			User:     getenv("PG_USER", "root"),
			Password: getenv("PG_PASSWORD", "hello-world"),
			DBName:   getenv("PG_DB", "collections"),
			SSLMode:  getenv("PG_SSLMODE", "disable"),

			MaxOpenConns:    mustAtoi(getenv("PG_MAX_OPEN_CONNS", "20")),
			MaxIdleConns:    mustAtoi(getenv("PG_MAX_IDLE_CONNS", "5")),
			ConnMaxLifetime: time.Duration(mustAtoi(getenv("PG_CONN_MAX_LIFETIME", "300"))) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:     mustBool(getenv("REDIS_ENABLED", "true")),
			Addr:        getenv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:    getenv("REDIS_PASSWORD", ""),
			DB:          mustAtoi(getenv("REDIS_DB", "0")),
			MaxRetries:  mustAtoi(getenv("REDIS_MAX_RETRIES", "5")),
			DialTimeout: mustAtoi(getenv("REDIS_DIAL_TIMEOUT", "10")),
			Timeout:     mustAtoi(getenv("REDIS_TIMEOUT", "5")),
			Prefix:      getenv("REDIS_PREFIX", "collections_"),
		},
		Storage: StorageConfig{
			Driver:       strings.ToLower(getenv("STORAGE_DRIVER", "local")),
			ExportDir:    getenv("EXPORT_DIR", "./exports"),
			PublicPrefix: getenv("FILES_PUBLIC_PREFIX", "/files"),
			ExternalURL:  getenv("EXTERNAL_URL", ""),
			MaxFileAge:   time.Duration(mustAtoi(getenv("EXPORT_MAX_AGE_MINUTES", "30"))) * time.Minute,
		},
		S3: S3Config{
			Endpoint:        getenv("S3_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getenv("S3_ACCESS_KEY", "minio"),
			SecretAccessKey: getenv("S3_SECRET_KEY", "minio123"),
			Bucket:          getenv("S3_BUCKET", "exports"),
			Region:          getenv("S3_REGION", "us-east-1"),
			UseSSL:          mustBool(getenv("S3_USE_SSL", "false")),
			Prefix:          getenv("S3_PREFIX", ""),
			URLTTL:          time.Duration(mustAtoi(getenv("S3_URL_TTL_HOURS", "48"))) * time.Hour,
		},
	}
}
