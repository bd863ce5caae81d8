package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"findigest/internal/logger"
)

// Config is the explicit configuration of one digest run, loaded from the
// environment. There is no other configuration source; the --env flag only
// changes which dotenv file seeds the environment before loading.
type Config struct {
	// Accounting server connection
	ServerURL      string `envconfig:"ACCOUNTING_SERVER_URL"`
	ServerUser     string `envconfig:"ACCOUNTING_SERVER_USER"`
	ServerPassword string `envconfig:"ACCOUNTING_SERVER_PASSWORD"`
	Company        string `envconfig:"ACCOUNTING_COMPANY"`

	// SourceName labels the digest output; defaults to the company code.
	SourceName string `envconfig:"SOURCE_NAME"`

	// RequestTimeoutSecs bounds each HTTP call to the accounting server.
	// The digest core itself enforces no timeout.
	RequestTimeoutSecs int `envconfig:"REQUEST_TIMEOUT_SECS" default:"60"`

	// SMTP Configuration (only required when --email is used)
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM"`

	// Logging Configuration
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"LOG_FORMAT" default:"console"`
	LogTimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02T15:04:05Z07:00"`
	LogOutput     string `envconfig:"LOG_OUTPUT" default:"stderr"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("config processing failed: %w", err)
	}

	if config.SourceName == "" {
		config.SourceName = config.Company
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("ACCOUNTING_SERVER_URL is required")
	}
	if c.Company == "" {
		return fmt.Errorf("ACCOUNTING_COMPANY is required")
	}
	if c.RequestTimeoutSecs <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT_SECS must be positive")
	}
	return nil
}

// ValidateSMTP checks the fields needed for sending the digest by email.
// Split from validate so runs without --email never require SMTP settings.
func (c *Config) ValidateSMTP() error {
	if c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST is required to send email")
	}
	if c.SMTPFrom == "" {
		return fmt.Errorf("SMTP_FROM is required to send email")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}
