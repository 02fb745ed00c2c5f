package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/rerun/internal/logger"
)

// ErrEmptyCommand is returned by Validate when no command is configured
var ErrEmptyCommand = errors.New("command is required")

// Config is built once at startup and treated as read-only afterwards
type Config struct {
	Path        string        `yaml:"path"`
	Command     []string      `yaml:"command"`
	Recursive   bool          `yaml:"recursive"`
	Immediate   bool          `yaml:"immediate"`
	StopOnError bool          `yaml:"stop_on_error"`
	RateLimit   time.Duration `yaml:"rate_limit"`
	Notices     bool          `yaml:"notices"`
	Poll        time.Duration `yaml:"poll"`
	Exec        ExecConfig    `yaml:"exec"`
	Logging     LoggingConfig `yaml:"logging"`
}

type ExecConfig struct {
	PTY bool              `yaml:"pty"`
	Dir string            `yaml:"dir"`
	Env map[string]string `yaml:"env"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	if len(c.Command) == 0 || c.Command[0] == "" {
		return ErrEmptyCommand
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative, got %s", c.RateLimit)
	}
	if c.Poll < 0 {
		return fmt.Errorf("poll must not be negative, got %s", c.Poll)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if !logger.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	return nil
}
