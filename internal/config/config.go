// Package config reads server settings from the environment.
//
// A .env file in the working directory is loaded first if present. Variables
// already set in the real environment win over the file, so production
// deployments never need one.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port int
	// DBPath is the sqlite file for sessions. ":memory:" keeps sessions for
	// the life of the process only.
	DBPath string
	// SessionSecret signs session cookies. Empty means "generate one per
	// process"; the caller decides what to do about that.
	SessionSecret string
	SessionTTL    time.Duration
	SweepInterval time.Duration
	CookieSecure  bool
	// CatalogPath points at a YAML catalog. Empty uses the embedded one.
	CatalogPath string
	LogLevel    slog.Level
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Port:          8080,
		DBPath:        ":memory:",
		SessionTTL:    24 * time.Hour,
		SweepInterval: 10 * time.Minute,
		LogLevel:      slog.LevelDebug,
	}
}

// Load reads .env (if any) and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: reading .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, starting from Default.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("config: invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	cfg.SessionSecret = getenv("SESSION_SECRET")
	cfg.CatalogPath = getenv("CATALOG_PATH")

	var err error
	if cfg.SessionTTL, err = duration(getenv, "SESSION_TTL", cfg.SessionTTL); err != nil {
		return Config{}, err
	}
	if cfg.SweepInterval, err = duration(getenv, "SWEEP_INTERVAL", cfg.SweepInterval); err != nil {
		return Config{}, err
	}

	if v := getenv("COOKIE_SECURE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid COOKIE_SECURE %q", v)
		}
		cfg.CookieSecure = b
	}

	if v := getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("config: invalid LOG_LEVEL %q", v)
		}
	}

	return cfg, nil
}

func duration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("config: invalid %s %q", key, v)
	}
	return d, nil
}
