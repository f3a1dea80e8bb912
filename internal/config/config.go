// Package config resolves the bridge configuration once at startup.
//
// Configuration comes from three layers, later layers winning:
// built-in defaults, an optional YAML file, and the X64DBG_URL
// environment variable. The resulting Config is immutable and passed
// explicitly to the components that need it.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is where the x64dbg HTTP plugin listens by default.
	DefaultBaseURL = "http://127.0.0.1:8888"

	// DefaultTimeoutSeconds bounds every backend round trip.
	DefaultTimeoutSeconds = 5

	// EnvBaseURL overrides the backend address when set.
	EnvBaseURL = "X64DBG_URL"
)

// Config holds the resolved bridge settings.
type Config struct {
	// BaseURL is the address of the x64dbg HTTP plugin.
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds is the per-request timeout for backend calls.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Debug enables verbose logging.
	Debug bool `yaml:"debug"`
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load resolves the configuration. path may be empty, in which case
// only defaults and the environment are consulted. A missing file at a
// non-empty path is an error; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Config{
		BaseURL:        DefaultBaseURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if env := strings.TrimSpace(os.Getenv(EnvBaseURL)); env != "" {
		cfg.BaseURL = env
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}

	// Trailing slash would double up when endpoint paths are appended.
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return cfg, nil
}
