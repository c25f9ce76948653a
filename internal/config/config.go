// Package config loads server settings from the environment.
package config

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"powerpump/internal/domain/account"
)

// Store backends accepted by GYM_STORE.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// EnvProduction is the GYM_ENV value that enables production behaviour.
const EnvProduction = "production"

// Config holds every setting the server reads at startup.
type Config struct {
	Env               string `env:"GYM_ENV"                 envDefault:"development"`
	Addr              string `env:"GYM_ADDR"                envDefault:":8080"`
	Store             string `env:"GYM_STORE"               envDefault:"sqlite"`
	DBPath            string `env:"GYM_DB_PATH"             envDefault:"powerpump.db"`
	RedisAddr         string `env:"GYM_REDIS_ADDR"          envDefault:"localhost:6379"`
	RedisPassword     string `env:"GYM_REDIS_PASSWORD"`
	RedisPrefix       string `env:"GYM_REDIS_PREFIX"        envDefault:"powerpump:"`
	Timezone          string `env:"GYM_TIMEZONE"`
	AdminEmail        string `env:"GYM_ADMIN_EMAIL"         envDefault:"admin@powerpump.local"`
	AdminPasswordHash string `env:"GYM_ADMIN_PASSWORD_HASH"`
	AdminPassword     string `env:"GYM_ADMIN_PASSWORD"`
	CSRFKey           string `env:"GYM_CSRF_KEY"`
	ResendKey         string `env:"GYM_RESEND_KEY"`
	EmailFrom         string `env:"GYM_EMAIL_FROM"          envDefault:"Power Pump <noreply@powerpump.local>"`
	SlowQueryMS       int    `env:"GYM_SLOW_QUERY_MS"       envDefault:"50"`
	SlowRequestMS     int    `env:"GYM_SLOW_REQUEST_MS"     envDefault:"500"`
	LogLevel          string `env:"GYM_LOG_LEVEL"           envDefault:"info"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadFrom parses settings from the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("GYM_STORE %q: want sqlite, redis or memory", c.Store)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.CSRFKeyBytes(); err != nil {
		return err
	}
	if c.SlowQueryMS < 0 || c.SlowRequestMS < 0 {
		return errors.New("slow thresholds must not be negative")
	}
	return nil
}

// IsProduction reports whether GYM_ENV is production.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Location resolves GYM_TIMEZONE. An empty value means the host's local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("GYM_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// CSRFKeyBytes decodes GYM_CSRF_KEY as 32 bytes of hex or base64.
// An empty key returns nil; callers generate a per-process key.
func (c Config) CSRFKeyBytes() ([]byte, error) {
	if c.CSRFKey == "" {
		return nil, nil
	}
	if b, err := hex.DecodeString(c.CSRFKey); err == nil && len(b) == 32 {
		return b, nil
	}
	if b, err := base64.StdEncoding.DecodeString(c.CSRFKey); err == nil && len(b) == 32 {
		return b, nil
	}
	return nil, errors.New("GYM_CSRF_KEY must be 32 bytes, hex or base64 encoded")
}

// SlowQuery returns the storage slow-query threshold.
func (c Config) SlowQuery() time.Duration {
	return time.Duration(c.SlowQueryMS) * time.Millisecond
}

// SlowRequest returns the HTTP slow-request threshold.
func (c Config) SlowRequest() time.Duration {
	return time.Duration(c.SlowRequestMS) * time.Millisecond
}

// SlogLevel parses GYM_LOG_LEVEL, falling back to info.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// NewLogger builds the process logger: JSON in production, text otherwise.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// ErrNoAdminCredential is returned in production when neither admin password setting is present.
var ErrNoAdminCredential = errors.New("GYM_ADMIN_PASSWORD_HASH or GYM_ADMIN_PASSWORD must be set in production")

// AdminAccount builds the single admin account.
// A configured hash wins over a plaintext password. Outside production a
// random password is generated when neither is set; generated is then non-empty
// so the caller can print it once.
// POST: returned Admin passes Validate
func (c Config) AdminAccount() (admin account.Admin, generated string, err error) {
	admin.Email = strings.TrimSpace(c.AdminEmail)
	switch {
	case c.AdminPasswordHash != "":
		admin.PasswordHash = c.AdminPasswordHash
	case c.AdminPassword != "":
		admin.PasswordHash, err = account.HashPassword(c.AdminPassword)
		if err != nil {
			return account.Admin{}, "", fmt.Errorf("hash admin password: %w", err)
		}
	case c.IsProduction():
		return account.Admin{}, "", ErrNoAdminCredential
	default:
		generated, err = randomPassword()
		if err != nil {
			return account.Admin{}, "", err
		}
		admin.PasswordHash, err = account.HashPassword(generated)
		if err != nil {
			return account.Admin{}, "", fmt.Errorf("hash generated password: %w", err)
		}
	}
	if err := admin.Validate(); err != nil {
		return account.Admin{}, "", err
	}
	return admin, generated, nil
}

func randomPassword() (string, error) {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate admin password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
