package config

import (
	"fmt"
	"slices"
)

// validOutputs lists the accepted output modes.
var validOutputs = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func Validate(c *Config) error {
	if !slices.Contains(validOutputs, c.Output) {
		return fmt.Errorf("invalid output %q (want one of %v)", c.Output, validOutputs)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := c.Lint.Build(); err != nil {
		return fmt.Errorf("invalid lint configuration: %w", err)
	}
	return nil
}
