package config

import "fmt"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateExiftool(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateExiftool() error {
	if c.Exiftool.ChunkSize < 1 {
		return fmt.Errorf("exiftool.chunk_size must be positive, got %d", c.Exiftool.ChunkSize)
	}
	if c.Exiftool.TimeoutSeconds < 1 {
		return fmt.Errorf("exiftool.timeout_seconds must be positive, got %d", c.Exiftool.TimeoutSeconds)
	}
	if c.Exiftool.MaxAttempts < 1 {
		return fmt.Errorf("exiftool.max_attempts must be positive, got %d", c.Exiftool.MaxAttempts)
	}
	return nil
}
