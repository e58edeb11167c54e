package store

import (
	"context"
	"fmt"
	"time"

	"ladle/internal/recipe"
)

// AppendProgress appends one event to a recipe's progress log. The log is
// strictly append-only: rows are never updated or deleted.
func (s *Store) AppendProgress(ctx context.Context, recipeID int64, step recipe.ProgressStep, detail recipe.ProgressDetail, state recipe.ProgressState) error {
	if _, err := s.execWithRetry(ctx,
		`INSERT INTO progress_events (recipe_id, step, detail, state, created_at)
         VALUES (?, ?, ?, ?, ?)`,
		recipeID,
		step,
		detail,
		state,
		timestamp(time.Now()),
	); err != nil {
		return fmt.Errorf("append progress: %w", err)
	}
	return nil
}

// ListProgress returns a recipe's progress events in append order.
func (s *Store) ListProgress(ctx context.Context, recipeID int64) ([]recipe.ProgressEvent, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT id, recipe_id, step, detail, state, created_at
         FROM progress_events WHERE recipe_id = ? ORDER BY created_at ASC, id ASC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var events []recipe.ProgressEvent
	for rows.Next() {
		var event recipe.ProgressEvent
		var createdAt string
		if err := rows.Scan(&event.ID, &event.RecipeID, &event.Step, &event.Detail, &event.State, &createdAt); err != nil {
			return nil, fmt.Errorf("scan progress event: %w", err)
		}
		event.CreatedAt = parseTimestamp(createdAt)
		events = append(events, event)
	}
	return events, rows.Err()
}
