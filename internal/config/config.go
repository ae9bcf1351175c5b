package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the bridge service.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Voyado   VoyadoConfig   `yaml:"voyado"`
	Dixa     DixaConfig     `yaml:"dixa"`
	EventLog EventLogConfig `yaml:"eventlog"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection.
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// VoyadoConfig holds Voyado (loyalty CRM) API configuration.
type VoyadoConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	// CSATSchemaID is the interaction schema used when logging CSAT feedback.
	CSATSchemaID string `yaml:"csat_schema_id"`
	// ReviewSchemaID is the interaction schema queried to enrich product
	// review webhooks.
	ReviewSchemaID string `yaml:"review_schema_id"`
}

// Timeout returns the configured timeout as a duration.
func (c VoyadoConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DixaConfig holds Dixa (support inbox) API configuration.
type DixaConfig struct {
	BaseURL            string `yaml:"base_url"`
	APIToken           string `yaml:"api_token"`
	EmailIntegrationID string `yaml:"email_integration_id"`
	TimeoutSeconds     int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration.
func (c DixaConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// EventLogConfig selects the latest-event sink backend.
type EventLogConfig struct {
	Backend   string `yaml:"backend"` // "memory" or "redis"
	RedisAddr string `yaml:"redis_addr"`
	RedisKey  string `yaml:"redis_key"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	RedactPII *bool  `yaml:"redact_pii"`
}

// RedactEnabled reports whether PII redaction is on (default true).
func (c LoggingConfig) RedactEnabled() bool {
	if c.RedactPII == nil {
		return true
	}
	return *c.RedactPII
}

// Load reads and parses the configuration file. A missing file is not an
// error: the service can run entirely from environment variables, matching
// how the deployment passes secrets.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		// env-only configuration
	default:
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Voyado.TimeoutSeconds == 0 {
		cfg.Voyado.TimeoutSeconds = 30
	}
	if cfg.Voyado.CSATSchemaID == "" {
		cfg.Voyado.CSATSchemaID = "csatFeedback"
	}
	if cfg.Voyado.ReviewSchemaID == "" {
		cfg.Voyado.ReviewSchemaID = "completedProductRating"
	}
	if cfg.Dixa.BaseURL == "" {
		cfg.Dixa.BaseURL = "https://dev.dixa.io/v1"
	}
	if cfg.Dixa.TimeoutSeconds == 0 {
		cfg.Dixa.TimeoutSeconds = 30
	}
	if cfg.EventLog.Backend == "" {
		cfg.EventLog.Backend = "memory"
	}
	if cfg.EventLog.RedisKey == "" {
		cfg.EventLog.RedisKey = "bridge:latest-csat-event"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars in deployment.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if baseURL := os.Getenv("VOYADO_API_BASE_URL"); baseURL != "" {
		cfg.Voyado.BaseURL = baseURL
	}
	if apiKey := os.Getenv("VOYADO_API_KEY"); apiKey != "" {
		cfg.Voyado.APIKey = apiKey
	}
	if schemaID := os.Getenv("VOYADO_CSAT_SCHEMA_ID"); schemaID != "" {
		cfg.Voyado.CSATSchemaID = schemaID
	}
	if schemaID := os.Getenv("VOYADO_REVIEW_SCHEMA_ID"); schemaID != "" {
		cfg.Voyado.ReviewSchemaID = schemaID
	}
	if baseURL := os.Getenv("DIXA_API_BASE_URL"); baseURL != "" {
		cfg.Dixa.BaseURL = baseURL
	}
	if token := os.Getenv("DIXA_API_TOKEN"); token != "" {
		cfg.Dixa.APIToken = token
	}
	if integrationID := os.Getenv("DIXA_EMAIL_INTEGRATION_ID"); integrationID != "" {
		cfg.Dixa.EmailIntegrationID = integrationID
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.EventLog.RedisAddr = addr
		cfg.EventLog.Backend = "redis"
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}

	return cfg, nil
}
