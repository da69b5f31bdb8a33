package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	RunModeLocal  = "local"
	RunModeLambda = "lambda"

	defaultIdempotencyTTL   = 24 * time.Hour
	defaultFlushSchedule    = "@every 1m"
	defaultPlaceholderImage = "assets/placeholder.jpg"
	defaultAWSRegion        = "us-east-1"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	AppPort    string
	AppEnv     string
	RunMode    string
	LogFile    string

	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	AWSRegion            string
	IdempotencyTable     string
	IdempotencyTTL       time.Duration
	OrdersQueueURL       string
	MetricsNamespace     string
	MetricsFlushSchedule string

	OrderStatusPolicy string
	PlaceholderImage  string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		AppPort:    getEnv("APP_PORT", "8080"),
		AppEnv:     os.Getenv("APP_ENV"),
		RunMode:    getEnv("RUN_MODE", RunModeLocal),
		LogFile:    os.Getenv("LOG_FILE"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		AWSRegion:            getEnv("AWS_REGION", defaultAWSRegion),
		IdempotencyTable:     os.Getenv("IDEMPOTENCY_TABLE"),
		IdempotencyTTL:       getDuration("IDEMPOTENCY_TTL", defaultIdempotencyTTL),
		OrdersQueueURL:       os.Getenv("ORDERS_QUEUE_URL"),
		MetricsNamespace:     os.Getenv("METRICS_NAMESPACE"),
		MetricsFlushSchedule: getEnv("METRICS_FLUSH_SCHEDULE", defaultFlushSchedule),

		OrderStatusPolicy: getEnv("ORDER_STATUS_POLICY", "strict"),
		PlaceholderImage:  getEnv("PLACEHOLDER_IMAGE", defaultPlaceholderImage),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration falls back on unset or unparsable values.
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
