package store

import (
	"context"
	"fmt"

	"ladle/internal/recipe"
)

// FailStaleInProgress fails recipes left IN_PROGRESS by a previous daemon
// run: each gets a FAILED status, a terminal progress event, and its
// admission lock released so the URL can be resubmitted. Returns the number
// of recipes recovered.
func (s *Store) FailStaleInProgress(ctx context.Context) (int, error) {
	stale, err := s.ListRecipes(ctx, recipe.StatusInProgress)
	if err != nil {
		return 0, fmt.Errorf("list stale recipes: %w", err)
	}

	recovered := 0
	for _, rec := range stale {
		if err := s.MarkRecipeTerminal(ctx, rec.ID, recipe.StatusFailed); err != nil {
			return recovered, fmt.Errorf("fail stale recipe %d: %w", rec.ID, err)
		}
		if err := s.AppendProgress(ctx, rec.ID, recipe.StepFinished, recipe.DetailFinished, recipe.StateFailed); err != nil {
			return recovered, fmt.Errorf("record stale failure %d: %w", rec.ID, err)
		}
		if err := s.DeleteContent(ctx, rec.ID); err != nil {
			return recovered, fmt.Errorf("compensate stale recipe %d: %w", rec.ID, err)
		}
		if err := s.ReleaseLock(ctx, rec.SourceURL); err != nil {
			return recovered, err
		}
		recovered++
	}
	return recovered, nil
}
