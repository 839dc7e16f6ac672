package config_test

import (
	"testing"
	"time"

	"go-employee/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"PORT", "DB_HOST", "DB_MAX_RETRIES", "REDIS_ADDR", "KAFKA_BROKER", "OUTBOX_POLL_INTERVAL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
			t.Setenv(k, "")
		}

		cfg, err := config.Load()

		assert.NoError(t, err)
		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5, cfg.Database.MaxRetries)
		assert.Equal(t, 3*time.Second, cfg.OutboxPollInterval)
		assert.Equal(t, float64(20), cfg.RateLimit.RPS)
		assert.Equal(t, 40, cfg.RateLimit.Burst)
		assert.Empty(t, cfg.RedisAddr)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("DB_HOST", "db")
		t.Setenv("DB_NAME", "hr")
		t.Setenv("OUTBOX_POLL_INTERVAL", "10s")
		t.Setenv("REDIS_ADDR", "redis:6379")

		cfg, err := config.Load()

		assert.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 10*time.Second, cfg.OutboxPollInterval)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
		assert.Contains(t, cfg.Database.DSN(), "host=db")
		assert.Contains(t, cfg.Database.DSN(), "dbname=hr")
	})

	t.Run("invalid number", func(t *testing.T) {
		t.Setenv("DB_MAX_RETRIES", "many")

		_, err := config.Load()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "DB_MAX_RETRIES")
	})
}
