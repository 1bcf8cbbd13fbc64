// Package config provides application-wide configuration loaded from env vars
// and an optional YAML file. The two Sundry API keys have no defaults and no
// file fallback: if either is absent the process must not start.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for sundry-mcp.
type Config struct {
	// Credentials — required, env-only.
	UserAPIKey        string // SUNDRY_USER_API_KEY
	ApplicationAPIKey string // SUNDRY_APPLICATION_API_KEY

	// Backend
	BaseURL        string        // SUNDRY_BASE_URL — default: "http://127.0.0.1:3002/v1"
	RequestTimeout time.Duration // request_timeout in YAML — default: 30s

	// Serving
	LogLevel string // SUNDRY_LOG_LEVEL — default: "info"
	HTTPAddr string // SUNDRY_HTTP_ADDR — default: "127.0.0.1:8080" (HTTP mode only)
}

const (
	envKeyUserAPIKey        = "SUNDRY_USER_API_KEY"
	envKeyApplicationAPIKey = "SUNDRY_APPLICATION_API_KEY"
	envKeyBaseURL           = "SUNDRY_BASE_URL"
	envKeyLogLevel          = "SUNDRY_LOG_LEVEL"
	envKeyHTTPAddr          = "SUNDRY_HTTP_ADDR"
)

const (
	defaultBaseURL        = "http://127.0.0.1:3002/v1"
	defaultLogLevel       = "info"
	defaultHTTPAddr       = "127.0.0.1:8080"
	defaultRequestTimeout = 30 * time.Second
)

// fileConfig is the YAML shape of the optional config file. Secrets are
// deliberately absent: API keys never come from a file.
type fileConfig struct {
	BaseURL        string `yaml:"base_url"`
	LogLevel       string `yaml:"log_level"`
	HTTPAddr       string `yaml:"http_addr"`
	RequestTimeout string `yaml:"request_timeout"` // Go duration string, e.g. "45s"
}

// Load reads configuration from the optional YAML file at path (ignored when
// path is empty) and the environment. Env vars win over file values.
// Returns an error if either required API key is missing or empty.
func Load(path string) (Config, error) {
	cfg := Config{
		BaseURL:        defaultBaseURL,
		LogLevel:       defaultLogLevel,
		HTTPAddr:       defaultHTTPAddr,
		RequestTimeout: defaultRequestTimeout,
	}

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	cfg.BaseURL = envOr(envKeyBaseURL, cfg.BaseURL)
	cfg.LogLevel = envOr(envKeyLogLevel, cfg.LogLevel)
	cfg.HTTPAddr = envOr(envKeyHTTPAddr, cfg.HTTPAddr)

	cfg.UserAPIKey = os.Getenv(envKeyUserAPIKey)
	if cfg.UserAPIKey == "" {
		return Config{}, fmt.Errorf("required environment variable %s is not set", envKeyUserAPIKey)
	}
	cfg.ApplicationAPIKey = os.Getenv(envKeyApplicationAPIKey)
	if cfg.ApplicationAPIKey == "" {
		return Config{}, fmt.Errorf("required environment variable %s is not set", envKeyApplicationAPIKey)
	}

	return cfg, nil
}

// applyFile overlays non-empty values from the YAML file at path onto cfg.
func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.HTTPAddr != "" {
		cfg.HTTPAddr = fc.HTTPAddr
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("parse config file %s: invalid request_timeout: %w", path, err)
		}
		cfg.RequestTimeout = d
	}

	return nil
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
