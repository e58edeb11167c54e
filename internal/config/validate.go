package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for missing or contradictory values.
// All problems are reported at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Paths.DataDir == "" {
		problems = append(problems, "paths.data_dir must be set")
	}
	if c.Paths.SocketPath == "" {
		problems = append(problems, "paths.socket_path must be set")
	}
	if c.YouTube.APIKey == "" {
		problems = append(problems, "youtube.api_key must be set")
	}
	if c.Classifier.BaseURL == "" {
		problems = append(problems, "classifier.base_url must be set")
	}
	if c.Generator.BaseURL == "" {
		problems = append(problems, "generator.base_url must be set")
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q is not supported (console, json)", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
