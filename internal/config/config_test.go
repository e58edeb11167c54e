package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ladle/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Workflow.MaxActivePipelines != 4 {
		t.Fatalf("expected default max_active_pipelines, got %d", cfg.Workflow.MaxActivePipelines)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("expected default console format, got %q", cfg.Logging.Format)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[youtube]
api_key = " yt-key "

[classifier]
base_url = "https://classifier.example/"

[generator]
base_url = "https://generator.example"
timeout_seconds = 30
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.YouTube.APIKey != "yt-key" {
		t.Fatalf("expected trimmed api key, got %q", cfg.YouTube.APIKey)
	}
	if cfg.Classifier.BaseURL != "https://classifier.example" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Classifier.BaseURL)
	}
	if cfg.Generator.TimeoutSeconds != 30 {
		t.Fatalf("expected generator timeout 30, got %d", cfg.Generator.TimeoutSeconds)
	}
	if cfg.Classifier.TimeoutSeconds != 120 {
		t.Fatalf("expected classifier timeout default, got %d", cfg.Classifier.TimeoutSeconds)
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"paths.data_dir", "youtube.api_key", "classifier.base_url", "generator.base_url"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	cfg := config.Default()
	cfg.YouTube.APIKey = "key"
	cfg.Classifier.BaseURL = "https://classifier.example"
	cfg.Generator.BaseURL = "https://generator.example"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected error overwriting existing config")
	}
}
