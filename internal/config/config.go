package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	MaxRetries int
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type Config struct {
	Port               string
	Database           DatabaseConfig
	RedisAddr          string
	KafkaBroker        string
	OutboxPollInterval time.Duration
	RateLimit          RateLimitConfig
}

// Load reads .env when present and then the process environment. Values that
// fail to parse are reported instead of silently falling back.
func Load() (Config, error) {
	_ = godotenv.Load()

	maxRetries, err := getInt("DB_MAX_RETRIES", 5)
	if err != nil {
		return Config{}, err
	}
	poll, err := getDuration("OUTBOX_POLL_INTERVAL", 3*time.Second)
	if err != nil {
		return Config{}, err
	}
	rps, err := getFloat("RATE_LIMIT_RPS", 20)
	if err != nil {
		return Config{}, err
	}
	burst, err := getInt("RATE_LIMIT_BURST", 40)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port: getEnv("PORT", "3000"),
		Database: DatabaseConfig{
			Host:       getEnv("DB_HOST", "localhost"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", "postgres"),
			Name:       getEnv("DB_NAME", "employees"),
			Port:       getEnv("DB_PORT", "5432"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			MaxRetries: maxRetries,
		},
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		OutboxPollInterval: poll,
		RateLimit: RateLimitConfig{
			RPS:   rps,
			Burst: burst,
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
