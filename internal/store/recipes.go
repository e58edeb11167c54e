package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"ladle/internal/recipe"
)

// CreateRecipe inserts a new recipe shell in IN_PROGRESS for the normalized
// URL, before any external call is made.
func (s *Store) CreateRecipe(ctx context.Context, normalizedURL, videoID string) (*recipe.Recipe, error) {
	normalizedURL = strings.TrimSpace(normalizedURL)
	videoID = strings.TrimSpace(videoID)
	if normalizedURL == "" || videoID == "" {
		return nil, errors.New("create recipe: normalized url and video id required")
	}

	now := timestamp(time.Now())
	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO recipes (source_url, video_id, status, view_count, created_at, updated_at)
         VALUES (?, ?, ?, 0, ?, ?)`,
		normalizedURL,
		videoID,
		recipe.StatusInProgress,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetRecipe(ctx, id)
}

// GetRecipe fetches a recipe by id. Missing recipes yield (nil, nil).
func (s *Store) GetRecipe(ctx context.Context, id int64) (*recipe.Recipe, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT id, source_url, video_id, status, view_count, created_at, updated_at
         FROM recipes WHERE id = ?`, id)
	return scanRecipe(row)
}

// FindRecipeByURL returns the most recent recipe for a normalized URL, or
// (nil, nil) when the URL has never been admitted.
func (s *Store) FindRecipeByURL(ctx context.Context, normalizedURL string) (*recipe.Recipe, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT id, source_url, video_id, status, view_count, created_at, updated_at
         FROM recipes WHERE source_url = ? ORDER BY id DESC LIMIT 1`, normalizedURL)
	return scanRecipe(row)
}

// ListRecipes returns recipes filtered by status, newest first. No statuses
// means all recipes.
func (s *Store) ListRecipes(ctx context.Context, statuses ...recipe.Status) ([]*recipe.Recipe, error) {
	query := `SELECT id, source_url, video_id, status, view_count, created_at, updated_at
              FROM recipes`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = "?"
			args = append(args, status)
		}
		query += " WHERE status IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += " ORDER BY id DESC"

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*recipe.Recipe
	for rows.Next() {
		rec, err := scanRecipeRow(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}
	return recipes, rows.Err()
}

// Stats returns recipe counts keyed by status.
func (s *Store) Stats(ctx context.Context) (map[recipe.Status]int, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT status, COUNT(1) FROM recipes GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("recipe stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[recipe.Status]int)
	for rows.Next() {
		var status recipe.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// MarkRecipeTerminal performs the one-way transition from IN_PROGRESS to a
// terminal status. A recipe that already reached a terminal status is left
// untouched and the call fails with ErrInvalidTransition, which keeps
// terminal states exclusive even when late pipeline goroutines race.
func (s *Store) MarkRecipeTerminal(ctx context.Context, id int64, status recipe.Status) error {
	if !status.Terminal() {
		return fmt.Errorf("mark recipe %d: %q is not a terminal status", id, status)
	}
	res, err := s.execWithRetry(ctx,
		`UPDATE recipes SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		status,
		timestamp(time.Now()),
		id,
		recipe.StatusInProgress,
	)
	if err != nil {
		return fmt.Errorf("mark recipe %d %s: %w", id, status, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark recipe %d %s: rows affected: %w", id, status, err)
	}
	if affected == 0 {
		return fmt.Errorf("mark recipe %d %s: %w", id, status, ErrInvalidTransition)
	}
	return nil
}

// IncrementViewCount bumps a recipe's view counter. Read-side collaborators
// call this; the pipeline never does.
func (s *Store) IncrementViewCount(ctx context.Context, id int64) error {
	if _, err := s.execWithRetry(ctx,
		`UPDATE recipes SET view_count = view_count + 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row *sql.Row) (*recipe.Recipe, error) {
	rec, err := scanRecipeRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func scanRecipeRow(scanner rowScanner) (*recipe.Recipe, error) {
	var rec recipe.Recipe
	var createdAt, updatedAt string
	if err := scanner.Scan(&rec.ID, &rec.SourceURL, &rec.VideoID, &rec.Status, &rec.ViewCount, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan recipe: %w", err)
	}
	rec.CreatedAt = parseTimestamp(createdAt)
	rec.UpdatedAt = parseTimestamp(updatedAt)
	return &rec, nil
}
