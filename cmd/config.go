package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"storefront/internal/adapters/out/security"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	AppEnv     string

	TokenSecret string
	TokenTTL    time.Duration
	TokenIssuer string
	Pepper      string
	SaltRounds  int

	LoginRateLimit     float64
	LoginRateBurst     int
	StoreProbeSchedule string
}

// LoadConfig reads .env from path when it exists, then the process
// environment. Variables already set in the environment win over the file.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	cfg := Config{
		HTTPPort:           envOr("HTTP_PORT", "8080"),
		DBHost:             envOr("DB_HOST", "localhost"),
		DBPort:             envOr("DB_PORT", "5432"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBSslMode:          envOr("DB_SSLMODE", "disable"),
		AppEnv:             envOr("APP_ENV", "production"),
		TokenSecret:        os.Getenv("TOKEN_SECRET"),
		TokenIssuer:        envOr("TOKEN_ISSUER", "storefront"),
		Pepper:             os.Getenv("BCRYPT_PASSWORD"),
		StoreProbeSchedule: os.Getenv("STORE_PROBE_SCHEDULE"),
	}

	var err error
	if cfg.TokenTTL, err = durationEnv("TOKEN_TTL", security.DefaultTokenTTL); err != nil {
		return Config{}, err
	}
	if cfg.SaltRounds, err = intEnv("SALT_ROUNDS", security.DefaultHashCost); err != nil {
		return Config{}, err
	}
	if cfg.LoginRateLimit, err = floatEnv("LOGIN_RATE_LIMIT", 1); err != nil {
		return Config{}, err
	}
	if cfg.LoginRateBurst, err = intEnv("LOGIN_RATE_BURST", 5); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the libpq-style connection string understood by gorm's postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) Development() bool {
	return c.AppEnv == "development"
}

// Security returns the settings for the credential hasher and token authority.
// An empty TokenSecret is passed through; token operations report it at use.
func (c Config) Security() security.Config {
	return security.Config{
		TokenSecret: c.TokenSecret,
		Pepper:      c.Pepper,
		HashCost:    c.SaltRounds,
		TokenTTL:    c.TokenTTL,
		Issuer:      c.TokenIssuer,
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
