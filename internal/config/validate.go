package config

import (
	"errors"
	"fmt"
	"slices"
)

var (
	validFormats        = []string{"text", "json"}
	validLogLevels      = []string{"debug", "info", "warn", "error"}
	validFixtureFormats = []string{"auto", "cue", "yaml"}
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(validFormats, c.Format) {
		errs = append(errs, fmt.Errorf("invalid format %q: must be one of %v", c.Format, validFormats))
	}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("invalid log_level %q: must be one of %v", c.LogLevel, validLogLevels))
	}
	if !slices.Contains(validFixtureFormats, c.FixtureFormat) {
		errs = append(errs, fmt.Errorf("invalid fixture_format %q: must be one of %v", c.FixtureFormat, validFixtureFormats))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("invalid workers %d: must not be negative", c.Workers))
	}
	return errors.Join(errs...)
}
