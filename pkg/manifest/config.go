package manifest

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Config is the top-level manifest.
type Config struct {
	Server    Server    `toml:"server"`
	Templates Templates `toml:"templates"`
	Pages     []Page    `toml:"page"`
	Auth      *Auth     `toml:"auth"`
}

// Server holds process-level settings. Env vars named in serverfx.Options
// take precedence over these values.
type Server struct {
	Listen   string `toml:"listen"`
	LogDir   string `toml:"log_dir"`
	LogLevel string `toml:"log_level"` // debug, info, warn, error; default info
}

// Templates points at the directory static pages are read from.
type Templates struct {
	Dir string `toml:"dir"`
}

// Validate normalises pages and checks every block.
func (c *Config) Validate() error {
	if c.Server.LogDir == "" {
		c.Server.LogDir = "log"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if _, err := zapcore.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("server.log_level: %w", err)
	}
	if c.Templates.Dir == "" {
		c.Templates.Dir = "templates"
	}
	if err := c.validatePages(); err != nil {
		return err
	}
	if c.Auth != nil {
		if err := c.Auth.validate(); err != nil {
			return err
		}
	}
	return nil
}
