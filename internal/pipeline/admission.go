package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ladle/internal/logging"
	"ladle/internal/recipe"
	"ladle/internal/services"
	"ladle/internal/store"
	"ladle/internal/videourl"
)

// Submit admits a video URL for recipe creation and returns the new
// recipe's id. The synchronous part ends once the admission lock is held
// and the recipe shell exists; generation continues on a worker goroutine
// and is observed through the progress log.
//
// A URL whose latest recipe is SUCCESS or BLOCKED is rejected with the
// matching status error. A FAILED recipe does not block resubmission: the
// new submission starts a fresh pipeline run.
func (m *Manager) Submit(ctx context.Context, rawURL string) (int64, error) {
	runCtx, ok := m.beginPipeline()
	if !ok {
		return 0, errors.New("pipeline manager not running")
	}
	launched := false
	defer func() {
		if !launched {
			m.wg.Done()
		}
	}()

	normalized, err := videourl.Normalize(rawURL)
	if err != nil {
		return 0, err
	}

	existing, err := m.store.FindRecipeByURL(ctx, normalized.URL)
	if err != nil {
		return 0, fmt.Errorf("admission pre-check: %w", err)
	}
	if existing != nil {
		switch existing.Status {
		case recipe.StatusSuccess:
			return 0, services.Wrap(services.ErrAlreadyExists, "admission", "pre-check",
				fmt.Sprintf("recipe %d already created for this video", existing.ID), nil)
		case recipe.StatusBlocked:
			return 0, services.Wrap(services.ErrBlocked, "admission", "pre-check",
				fmt.Sprintf("recipe %d was rejected as non-cooking content", existing.ID), nil)
		case recipe.StatusInProgress:
			return 0, services.Wrap(services.ErrDuplicateInProgress, "admission", "pre-check",
				fmt.Sprintf("recipe %d is still being created", existing.ID), nil)
		}
	}

	if _, err := m.store.AcquireLock(ctx, normalized.URL); err != nil {
		if errors.Is(err, store.ErrLockHeld) {
			return 0, services.Wrap(services.ErrDuplicateInProgress, "admission", "acquire lock",
				"another submission for this video is in flight", nil)
		}
		return 0, fmt.Errorf("admission: %w", err)
	}

	rec, err := m.store.CreateRecipe(ctx, normalized.URL, normalized.VideoID)
	if err != nil {
		if releaseErr := m.store.ReleaseLock(ctx, normalized.URL); releaseErr != nil {
			m.logger.Error("failed to release lock after create failure", logging.Error(releaseErr))
		}
		return 0, fmt.Errorf("create recipe: %w", err)
	}

	workerCtx := services.WithRecipeID(runCtx, rec.ID)
	workerCtx = services.WithRequestID(workerCtx, uuid.NewString())

	launched = true
	go func() {
		defer m.wg.Done()
		m.sem <- struct{}{}
		defer func() { <-m.sem }()

		m.active.Add(1)
		defer m.active.Add(-1)

		m.run(workerCtx, rec)
	}()

	return rec.ID, nil
}
