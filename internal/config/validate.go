package config

import (
	"fmt"

	"framescan/internal/filter"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Scan.Workers < 0 {
		return fmt.Errorf("scan.workers must not be negative, got %d", c.Scan.Workers)
	}
	if c.Scan.MinLen < 1 {
		return fmt.Errorf("scan.min_len must be at least 1, got %d", c.Scan.MinLen)
	}
	if _, err := filter.Parse(c.Scan.Filter); err != nil {
		return fmt.Errorf("scan.filter: %w", err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
