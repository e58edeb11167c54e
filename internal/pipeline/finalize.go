package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ladle/internal/logging"
	"ladle/internal/recipe"
	"ladle/internal/services"
	"ladle/internal/store"
)

// Finalization must not be cut short by daemon shutdown, so terminal
// bookkeeping runs against the background context with a bounded timeout.
const finalizeTimeout = 30 * time.Second

func (m *Manager) finalizeSuccess(logger *slog.Logger, rec *recipe.Recipe, artifact recipe.Artifact) {
	ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
	defer cancel()

	if err := m.store.MarkRecipeTerminal(ctx, rec.ID, recipe.StatusSuccess); err != nil {
		logger.Error("failed to mark recipe successful", logging.Error(err))
		return
	}
	m.recordProgress(logger, rec.ID, recipe.StepFinished, recipe.DetailFinished, recipe.StateSuccess)
	m.releaseLock(ctx, logger, rec)
	m.cleanupArtifact(ctx, logger, artifact)
}

// finalizeFailure resolves the recipe to FAILED or BLOCKED depending on the
// error, releases the admission lock so the URL can be resubmitted, and
// discards the processed artifact. Content-row compensation is separate:
// the caller runs it once the surviving generator goroutines have settled.
func (m *Manager) finalizeFailure(logger *slog.Logger, rec *recipe.Recipe, cause error, artifact recipe.Artifact) {
	if cause == nil {
		cause = errors.New("pipeline aborted")
	}
	status := services.TerminalStatus(cause)

	ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
	defer cancel()

	if err := m.store.MarkRecipeTerminal(ctx, rec.ID, status); err != nil && !errors.Is(err, store.ErrInvalidTransition) {
		logger.Error("failed to mark recipe terminal",
			logging.String("status", string(status)),
			logging.Error(err))
	}
	logger.Error("pipeline failed",
		logging.String(logging.FieldEventType, "pipeline_failure"),
		logging.String("status", string(status)),
		logging.Error(cause))

	m.releaseLock(ctx, logger, rec)
	m.cleanupArtifact(ctx, logger, artifact)
}

// compensate removes every content row written for the recipe so a failed
// recipe never exposes partial output. The progress log and the metadata
// snapshot are deliberately kept for diagnosis.
func (m *Manager) compensate(logger *slog.Logger, recipeID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
	defer cancel()
	if err := m.store.DeleteContent(ctx, recipeID); err != nil {
		logger.Error("failed to compensate recipe content", logging.Error(err))
		return
	}
	logger.Info("removed partial recipe content",
		logging.String(logging.FieldEventType, "pipeline_compensation"))
}

func (m *Manager) releaseLock(ctx context.Context, logger *slog.Logger, rec *recipe.Recipe) {
	if err := m.store.ReleaseLock(ctx, rec.SourceURL); err != nil {
		logger.Error("failed to release admission lock", logging.Error(err))
	}
}

func (m *Manager) cleanupArtifact(ctx context.Context, logger *slog.Logger, artifact recipe.Artifact) {
	if artifact.StorageURI == "" {
		return
	}
	if err := m.verifier.Cleanup(ctx, artifact.StorageURI); err != nil {
		logger.Warn("failed to clean up processed artifact", logging.Error(err))
	}
}
