package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"ladle/internal/config"
	"ladle/internal/pipeline"
	"ladle/internal/services/classifier"
	"ladle/internal/services/generator"
	"ladle/internal/services/youtube"
	"ladle/internal/store"
)

// loadDotEnv loads a .env file from the working directory when present.
// Missing files are not an error; deployments without one use the
// environment as-is.
func loadDotEnv() {
	_ = godotenv.Load()
}

func configPathFromEnv() string {
	return os.Getenv("LADLE_CONFIG")
}

// applyEnvOverrides lets secrets come from the environment instead of the
// config file.
func applyEnvOverrides(cfg *config.Config) {
	if key := os.Getenv("LADLE_YOUTUBE_API_KEY"); key != "" {
		cfg.YouTube.APIKey = key
	}
	if key := os.Getenv("LADLE_CLASSIFIER_API_KEY"); key != "" {
		cfg.Classifier.APIKey = key
	}
	if key := os.Getenv("LADLE_GENERATOR_API_KEY"); key != "" {
		cfg.Generator.APIKey = key
	}
}

func buildPipelineManager(ctx context.Context, cfg *config.Config, st *store.Store, logger *slog.Logger) (*pipeline.Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	var resolverOpts []youtube.Option
	if cfg.YouTube.Endpoint != "" {
		resolverOpts = append(resolverOpts, youtube.WithEndpoint(cfg.YouTube.Endpoint))
	}
	resolver, err := youtube.NewResolver(ctx, cfg.YouTube.APIKey, resolverOpts...)
	if err != nil {
		return nil, fmt.Errorf("build metadata resolver: %w", err)
	}

	verifier := classifier.NewClient(cfg.Classifier.BaseURL, cfg.Classifier.APIKey,
		classifier.WithTimeout(time.Duration(cfg.Classifier.TimeoutSeconds)*time.Second))
	generators := generator.NewClient(cfg.Generator.BaseURL, cfg.Generator.APIKey,
		generator.WithTimeout(time.Duration(cfg.Generator.TimeoutSeconds)*time.Second))

	return pipeline.NewManager(cfg, st, logger, resolver, verifier, generators), nil
}
