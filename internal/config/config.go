// Package config provides configuration loading and validation for the
// service and CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the service configuration, read from the environment.
type Config struct {
	// GeminiAPIKey authenticates calls to the Gemini API. Required.
	GeminiAPIKey string

	// DatabaseURL is the PostgreSQL connection URL for profile storage.
	// When empty, profiles are stored as JSON files under ProfileDir.
	DatabaseURL string

	// ProfileDir is the directory for file-based profile storage.
	ProfileDir string

	// Port is the HTTP listen port.
	Port int

	// UseBrowser enables headless-browser rendering for job postings
	// that do not serve their content in the initial HTML.
	UseBrowser bool

	JWT      *JWTConfig
	Password *PasswordConfig
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		ProfileDir:   os.Getenv("PROFILE_DIR"),
		Port:         8080,
		UseBrowser:   os.Getenv("USE_BROWSER") == "true",
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required but not set")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("PORT out of range: %d", port)
		}
		cfg.Port = port
	}

	if cfg.ProfileDir == "" {
		cfg.ProfileDir = "profiles"
	}

	jwtCfg, err := NewJWTConfig()
	if err != nil {
		return nil, err
	}
	cfg.JWT = jwtCfg

	pwCfg, err := NewPasswordConfig()
	if err != nil {
		return nil, err
	}
	cfg.Password = pwCfg

	return cfg, nil
}
