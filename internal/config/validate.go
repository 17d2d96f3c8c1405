package config

import (
	"fmt"
	"net/url"

	"otctl/internal/services"
)

const component = "config"

// Validate ensures the configuration is usable. Every failure wraps
// services.ErrConfiguration.
func (c *Config) Validate() error {
	if err := c.validateRobot(); err != nil {
		return err
	}
	if err := c.validateRuns(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func invalidField(field, format string, args ...any) error {
	return services.Wrap(services.ErrConfiguration, component, field, fmt.Sprintf(format, args...), nil)
}

func (c *Config) validateRobot() error {
	parsed, err := url.Parse(c.Robot.BaseURL)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, component, "robot.base_url", "parse url", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return invalidField("robot.base_url", "must use http or https, got %q", c.Robot.BaseURL)
	}
	if parsed.Host == "" {
		return invalidField("robot.base_url", "must include a host, got %q", c.Robot.BaseURL)
	}
	if c.Robot.TimeoutSeconds <= 0 {
		return invalidField("robot.timeout_seconds", "must be positive")
	}
	return nil
}

func (c *Config) validateRuns() error {
	if c.Runs.CommandTimeoutMS < 0 {
		return invalidField("runs.command_timeout_ms", "must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return invalidField("logging.format", "must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalidField("logging.level", "must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
