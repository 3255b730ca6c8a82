package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full runtime configuration: connection settings come from the
// environment, tuning knobs from an optional TOML file.
type Config struct {
	Env         string
	Port        int
	DatabaseURL string
	JWTSecret   string

	Redis RedisConfig
	Minio MinioConfig

	Reorder ReorderConfig `toml:"reorder"`
	Jobs    JobsConfig    `toml:"jobs"`
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// ReorderConfig tunes the replenishment policy. RestockMultiplier m means a
// triggered order requests enough stock to reach m*minimum_quantity.
type ReorderConfig struct {
	RestockMultiplier int `toml:"restock_multiplier"`
}

// JobsConfig tunes background job cadence.
type JobsConfig struct {
	SweepIntervalMinutes        int `toml:"sweep_interval_minutes"`
	TokenCleanupIntervalMinutes int `toml:"token_cleanup_interval_minutes"`
}

// SweepInterval returns the reorder sweep cadence.
func (j JobsConfig) SweepInterval() time.Duration {
	return time.Duration(j.SweepIntervalMinutes) * time.Minute
}

// TokenCleanupInterval returns the expired token cleanup cadence.
func (j JobsConfig) TokenCleanupInterval() time.Duration {
	return time.Duration(j.TokenCleanupIntervalMinutes) * time.Minute
}

// Load reads environment variables and, when STOCKTRACK_CONFIG points at a
// TOML file (or ./stocktrack.toml exists), merges the tuning sections.
func Load() (*Config, error) {
	cfg := &Config{
		Env:         envOr("APP_ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Redis: RedisConfig{
			Addr:     envOr("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envIntOr("REDIS_DB", 0),
		},
		Minio: MinioConfig{
			Endpoint:  envOr("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: envOr("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: envOr("MINIO_SECRET_KEY", "minioadmin"),
			UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
			Bucket:    envOr("MINIO_BUCKET", "stocktrack-shipments"),
		},
		Reorder: ReorderConfig{RestockMultiplier: 2},
		Jobs: JobsConfig{
			SweepIntervalMinutes:        30,
			TokenCleanupIntervalMinutes: 60,
		},
	}

	cfg.Port = envIntOr("PORT", 8080)

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	path := os.Getenv("STOCKTRACK_CONFIG")
	if path == "" {
		if _, err := os.Stat("stocktrack.toml"); err == nil {
			path = "stocktrack.toml"
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if cfg.Reorder.RestockMultiplier < 1 {
		return nil, fmt.Errorf("reorder.restock_multiplier must be at least 1")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
