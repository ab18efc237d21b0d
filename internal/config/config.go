package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Payroll  PayrollConfig
	Storage  StorageConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker             string
	PayslipGroupID     string
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
}

type JWTConfig struct {
	Secret string
}

// PayrollConfig seeds the statutory rates used until a settings row exists.
type PayrollConfig struct {
	DefaultEPFPercentage float64
	DefaultETFPercentage float64
	PreviewConcurrency   int
}

type StorageConfig struct {
	FilesDir     string
	FilesBaseURL string
}

// Load reads the environment, optionally seeded from a .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "dairy_erp"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: KafkaConfig{
			Broker:         getEnv("KAFKA_BROKER", ""),
			PayslipGroupID: getEnv("KAFKA_PAYSLIP_GROUP_ID", "dairy-erp-payslip"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		Storage: StorageConfig{
			FilesDir:     getEnv("FILES_DIR", "storage"),
			FilesBaseURL: getEnv("FILES_BASE_URL", "http://localhost:3000/files"),
		},
	}

	var err error
	if cfg.Database.MaxRetries, err = getEnvInt("DB_MAX_RETRIES", 5); err != nil {
		return nil, err
	}
	if cfg.Kafka.OutboxPollInterval, err = getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.Kafka.OutboxBatchSize, err = getEnvInt("OUTBOX_BATCH_SIZE", 50); err != nil {
		return nil, err
	}
	if cfg.Kafka.OutboxBatchSize < 1 {
		return nil, fmt.Errorf("invalid OUTBOX_BATCH_SIZE: must be at least 1")
	}
	if cfg.Payroll.DefaultEPFPercentage, err = getEnvPercentage("PAYROLL_DEFAULT_EPF", 8); err != nil {
		return nil, err
	}
	if cfg.Payroll.DefaultETFPercentage, err = getEnvPercentage("PAYROLL_DEFAULT_ETF", 3); err != nil {
		return nil, err
	}
	if cfg.Payroll.PreviewConcurrency, err = getEnvInt("PAYROLL_PREVIEW_CONCURRENCY", 8); err != nil {
		return nil, err
	}
	if cfg.Payroll.PreviewConcurrency < 1 {
		return nil, fmt.Errorf("invalid PAYROLL_PREVIEW_CONCURRENCY: must be at least 1")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return v, nil
}

func getEnvPercentage(key string, fallback float64) (float64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("invalid %s: must be between 0 and 100", key)
	}
	return v, nil
}
