package configs

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"doktor.link/configs/configslog"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config process-wide settings read from the environment.
type Config struct {
	Env          string
	Host         string
	Port         string
	SecretKey    string
	DatabaseURL  string
	SessionStore string
	RedisURL     string
	SessionTTL   time.Duration
	LoginRate    float64
	LoginBurst   int
	BcryptCost   int
}

// IsProduction reports whether APP_ENV is "production".
func (c Config) IsProduction() bool { return c.Env == "production" }

// Addr listen address for the HTTP server.
func (c Config) Addr() string { return c.Host + ":" + c.Port }

// LoadEnv reads .env when present. A missing file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Debug(".env file not found, using process environment")
	}
}

// LoadConfig builds Config from the environment and validates required keys.
func LoadConfig() (Config, error) {
	cfg := Config{
		Env:          GetEnvWithDefault("APP_ENV", "development"),
		Host:         GetEnvWithDefault("APP_HOST", "0.0.0.0"),
		Port:         GetEnvWithDefault("APP_PORT", "3000"),
		SecretKey:    os.Getenv("SECRET_KEY"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SessionStore: GetEnvWithDefault("SESSION_STORE", SessionStoreMemory),
		RedisURL:     GetEnvWithDefault("REDIS_URL", "redis://localhost:6379/0"),
	}

	var err error
	if cfg.SessionTTL, err = time.ParseDuration(GetEnvWithDefault("SESSION_TTL", "24h")); err != nil {
		return cfg, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if cfg.LoginRate, err = strconv.ParseFloat(GetEnvWithDefault("LOGIN_RATE", "1"), 64); err != nil {
		return cfg, fmt.Errorf("LOGIN_RATE: %w", err)
	}
	if cfg.LoginBurst, err = strconv.Atoi(GetEnvWithDefault("LOGIN_BURST", "5")); err != nil {
		return cfg, fmt.Errorf("LOGIN_BURST: %w", err)
	}
	if cfg.BcryptCost, err = strconv.Atoi(GetEnvWithDefault("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost))); err != nil {
		return cfg, fmt.Errorf("BCRYPT_COST: %w", err)
	}

	if cfg.SecretKey == "" {
		return cfg, errors.New("SECRET_KEY is required")
	}
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}
	if cfg.SessionStore != SessionStoreMemory && cfg.SessionStore != SessionStoreRedis {
		return cfg, fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionStoreMemory, SessionStoreRedis, cfg.SessionStore)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return cfg, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return cfg, nil
}

// GetEnvWithDefault returns the variable or fallback when it is unset or empty.
func GetEnvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
