package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRobot()
	c.normalizeRuns()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRobot() {
	if value, ok := os.LookupEnv("OT_ROBOT_URL"); ok && strings.TrimSpace(value) != "" {
		c.Robot.BaseURL = value
	}
	c.Robot.BaseURL = strings.TrimRight(strings.TrimSpace(c.Robot.BaseURL), "/")
	if c.Robot.BaseURL == "" {
		c.Robot.BaseURL = defaultRobotBaseURL
	}
	c.Robot.APIVersion = strings.TrimSpace(c.Robot.APIVersion)
	if c.Robot.APIVersion == "" {
		c.Robot.APIVersion = defaultAPIVersion
	}
}

func (c *Config) normalizeRuns() {
	if value, ok := os.LookupEnv("OT_RUN_ID"); ok && strings.TrimSpace(value) != "" {
		c.Runs.RunID = value
	}
	c.Runs.RunID = strings.TrimSpace(c.Runs.RunID)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
