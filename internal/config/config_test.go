package config

import (
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("ADMIN_EMAIL", "admin@kisan.in")
		t.Setenv("ADMIN_PASSWORD", "admin123")
		t.Setenv("IDEMPOTENCY_TABLE", "orders-idem")
		t.Setenv("IDEMPOTENCY_TTL", "10m")
		t.Setenv("ORDERS_QUEUE_URL", "https://sqs.local/orders")
		t.Setenv("ORDER_STATUS_POLICY", "permissive")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "secret", cfg.JWTSecret)
		assert.Equal(t, "admin@kisan.in", cfg.AdminEmail)
		assert.Equal(t, "admin123", cfg.AdminPassword)
		assert.Equal(t, "orders-idem", cfg.IdempotencyTable)
		assert.Equal(t, 10*time.Minute, cfg.IdempotencyTTL)
		assert.Equal(t, "https://sqs.local/orders", cfg.OrdersQueueURL)
		assert.Equal(t, "permissive", cfg.OrderStatusPolicy)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("APP_PORT", "")
		t.Setenv("RUN_MODE", "")
		t.Setenv("AWS_REGION", "")
		t.Setenv("IDEMPOTENCY_TTL", "not-a-duration")
		t.Setenv("ORDER_STATUS_POLICY", "")
		t.Setenv("PLACEHOLDER_IMAGE", "")
		t.Setenv("METRICS_FLUSH_SCHEDULE", "")

		cfg := LoadConfig()

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, RunModeLocal, cfg.RunMode)
		assert.Equal(t, "us-east-1", cfg.AWSRegion)
		assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
		assert.Equal(t, "strict", cfg.OrderStatusPolicy)
		assert.Equal(t, "assets/placeholder.jpg", cfg.PlaceholderImage)
		assert.Equal(t, "@every 1m", cfg.MetricsFlushSchedule)
	})
}

func TestLoadConfig_MissingDBHost(t *testing.T) {
	if os.Getenv("BE_CRASHER") == "1" {
		os.Setenv("DB_HOST", "")
		LoadConfig()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestLoadConfig_MissingDBHost")
	cmd.Env = append(os.Environ(), "BE_CRASHER=1")
	err := cmd.Run()

	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		return
	}
	t.Fatalf("process ran with err %v, want exit status 1", err)
}
