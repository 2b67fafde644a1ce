package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSampling(); err != nil {
		return err
	}
	if err := c.validateClasses(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSampling() error {
	if c.Sampling.Stride != nil && *c.Sampling.Stride < 0 {
		return fmt.Errorf("sampling.stride must be >= 0 (0 extracts every frame), got %d", *c.Sampling.Stride)
	}
	if c.Sampling.JPEGQuality < 0 || c.Sampling.JPEGQuality > 100 {
		return fmt.Errorf("sampling.jpeg_quality must be between 0 and 100 (0 selects the default), got %d", c.Sampling.JPEGQuality)
	}
	return nil
}

func (c *Config) validateClasses() error {
	for name, id := range c.Classes {
		if strings.TrimSpace(name) == "" {
			return errors.New("classes: class names must not be empty")
		}
		if id < 0 {
			return fmt.Errorf("classes.%s: id must be >= 0, got %d", name, id)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
