// Package testsupport provides shared helpers for constructing test
// configurations and stores backed by per-test temp directories.
package testsupport

import (
	"path/filepath"
	"testing"

	"ladle/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.SocketPath = filepath.Join(base, "ladled.sock")
	cfg.YouTube.APIKey = "test"
	cfg.Classifier.BaseURL = "https://classifier.invalid"
	cfg.Generator.BaseURL = "https://generator.invalid"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithYouTubeEndpoint points the metadata resolver at a test server.
func WithYouTubeEndpoint(endpoint string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.YouTube.Endpoint = endpoint
	}
}

// WithClassifierBaseURL points the classifier client at a test server.
func WithClassifierBaseURL(base string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Classifier.BaseURL = base
	}
}

// WithGeneratorBaseURL points the generator client at a test server.
func WithGeneratorBaseURL(base string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Generator.BaseURL = base
	}
}
