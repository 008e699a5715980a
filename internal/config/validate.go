package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Codec.Library == "" {
		return errors.New("codec.library must be set")
	}
	if c.Codec.Profile == "" {
		return errors.New("codec.profile must be set")
	}
	if c.Codec.Level == "" {
		return errors.New("codec.level must be set")
	}
	if c.Codec.Preset == "" {
		return errors.New("codec.preset must be set")
	}
	if c.Codec.CRF == "" {
		return errors.New("codec.crf must be set")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
