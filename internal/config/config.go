package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config holds process-level configuration. DATABASE_URL is read separately
// by db.Connect so commands that only need the database don't have to carry
// the whole config.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// MediaDir is the root for uploaded files (profile photos, certificates).
	MediaDir string

	// LoginRatePerMinute caps login attempts per client IP.
	LoginRatePerMinute int

	// LoginBurst is the token-bucket burst for login attempts.
	LoginBurst int
}

var ErrMissingMediaDir = errors.New("MEDIA_DIR must not be empty")

// LoadFromEnv loads configuration from environment variables.
//
// Environment variables:
//   - PORT: HTTP listen port (default: "5050")
//   - MEDIA_DIR: directory for uploaded media (default: "media")
//   - LOGIN_RATE_PER_MINUTE: login attempts allowed per IP per minute (default: 10)
//   - LOGIN_BURST: login attempt burst size (default: 5)
func LoadFromEnv() Config {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "5050"
	}

	mediaDir := strings.TrimSpace(os.Getenv("MEDIA_DIR"))
	if mediaDir == "" {
		mediaDir = "media"
	}

	return Config{
		Port:               port,
		MediaDir:           mediaDir,
		LoginRatePerMinute: envInt("LOGIN_RATE_PER_MINUTE", 10),
		LoginBurst:         envInt("LOGIN_BURST", 5),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.MediaDir == "" {
		return ErrMissingMediaDir
	}
	if c.LoginRatePerMinute <= 0 {
		return errors.New("LOGIN_RATE_PER_MINUTE must be positive")
	}
	if c.LoginBurst <= 0 {
		return errors.New("LOGIN_BURST must be positive")
	}
	return nil
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
