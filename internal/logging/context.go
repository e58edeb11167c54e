package logging

import (
	"context"
	"log/slog"

	"ladle/internal/services"
)

// WithContext returns a logger enriched with the pipeline annotations
// carried in ctx: recipe id, stage name, and request id.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	if id, ok := services.RecipeIDFromContext(ctx); ok {
		logger = logger.With(Int64(FieldRecipeID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		logger = logger.With(String(FieldStage, stage))
	}
	if requestID, ok := services.RequestIDFromContext(ctx); ok {
		logger = logger.With(String(FieldRequestID, requestID))
	}
	return logger
}
