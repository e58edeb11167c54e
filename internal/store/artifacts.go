package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ladle/internal/recipe"
)

// SaveCaptions inserts a recipe's caption segments in one transaction.
func (s *Store) SaveCaptions(ctx context.Context, recipeID int64, segments []recipe.CaptionSegment) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		now := timestamp(time.Now())
		for _, segment := range segments {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO captions (recipe_id, start_seconds, end_seconds, text, created_at)
                 VALUES (?, ?, ?, ?, ?)`,
				recipeID, segment.StartSec, segment.EndSec, segment.Text, now); err != nil {
				return fmt.Errorf("insert caption: %w", err)
			}
		}
		return nil
	})
}

// SaveBriefing inserts a recipe's briefing lines, preserving order.
func (s *Store) SaveBriefing(ctx context.Context, recipeID int64, lines []string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		now := timestamp(time.Now())
		for i, line := range lines {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO briefing_lines (recipe_id, position, content, created_at)
                 VALUES (?, ?, ?, ?)`,
				recipeID, i, line, now); err != nil {
				return fmt.Errorf("insert briefing line: %w", err)
			}
		}
		return nil
	})
}

// SaveDetail inserts the detail row, ingredients, and tags in one
// transaction so the structured detail is all-or-nothing.
func (s *Store) SaveDetail(ctx context.Context, recipeID int64, detail recipe.Detail, ingredients []recipe.Ingredient, tags []recipe.Tag) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		now := timestamp(time.Now())
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_details (recipe_id, description, servings, cook_time_minutes, created_at)
             VALUES (?, ?, ?, ?, ?)`,
			recipeID, detail.Description, detail.Servings, detail.CookTimeMinutes, now); err != nil {
			return fmt.Errorf("insert detail: %w", err)
		}
		for _, ingredient := range ingredients {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO ingredients (recipe_id, name, amount, created_at) VALUES (?, ?, ?, ?)`,
				recipeID, ingredient.Name, ingredient.Amount, now); err != nil {
				return fmt.Errorf("insert ingredient: %w", err)
			}
		}
		for _, tag := range tags {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO recipe_tags (recipe_id, name, created_at) VALUES (?, ?, ?)`,
				recipeID, tag.Name, now); err != nil {
				return fmt.Errorf("insert tag: %w", err)
			}
		}
		return nil
	})
}

// SaveSteps inserts a recipe's cooking steps, preserving order.
func (s *Store) SaveSteps(ctx context.Context, recipeID int64, steps []recipe.Step) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		now := timestamp(time.Now())
		for i, step := range steps {
			descriptions, err := json.Marshal(step.Descriptions)
			if err != nil {
				return fmt.Errorf("marshal step descriptions: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO recipe_steps (recipe_id, position, subtitle, start_seconds, descriptions_json, created_at)
                 VALUES (?, ?, ?, ?, ?, ?)`,
				recipeID, i, step.Subtitle, step.StartSec, string(descriptions), now); err != nil {
				return fmt.Errorf("insert step: %w", err)
			}
		}
		return nil
	})
}

// DeleteContent removes every content artifact row written for a recipe.
// Failure compensation uses this so a terminal recipe is either fully
// populated or empty. The progress log and video metadata are kept.
func (s *Store) DeleteContent(ctx context.Context, recipeID int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		tables := []string{"captions", "briefing_lines", "recipe_details", "ingredients", "recipe_tags", "recipe_steps"}
		for _, table := range tables {
			if _, err := tx.ExecContext(ctx,
				"DELETE FROM "+table+" WHERE recipe_id = ?", recipeID); err != nil {
				return fmt.Errorf("delete %s: %w", table, err)
			}
		}
		return nil
	})
}

// ListCaptions returns a recipe's captions in timeline order.
func (s *Store) ListCaptions(ctx context.Context, recipeID int64) ([]recipe.CaptionSegment, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT id, recipe_id, start_seconds, end_seconds, text, created_at
         FROM captions WHERE recipe_id = ? ORDER BY id ASC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list captions: %w", err)
	}
	defer rows.Close()

	var segments []recipe.CaptionSegment
	for rows.Next() {
		var segment recipe.CaptionSegment
		var createdAt string
		if err := rows.Scan(&segment.ID, &segment.RecipeID, &segment.StartSec, &segment.EndSec, &segment.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scan caption: %w", err)
		}
		segment.CreatedAt = parseTimestamp(createdAt)
		segments = append(segments, segment)
	}
	return segments, rows.Err()
}

// ListBriefing returns a recipe's briefing lines in order.
func (s *Store) ListBriefing(ctx context.Context, recipeID int64) ([]recipe.BriefingLine, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT id, recipe_id, position, content, created_at
         FROM briefing_lines WHERE recipe_id = ? ORDER BY position ASC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list briefing: %w", err)
	}
	defer rows.Close()

	var lines []recipe.BriefingLine
	for rows.Next() {
		var line recipe.BriefingLine
		var createdAt string
		if err := rows.Scan(&line.ID, &line.RecipeID, &line.Position, &line.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scan briefing line: %w", err)
		}
		line.CreatedAt = parseTimestamp(createdAt)
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// GetDetail returns a recipe's structured detail, or (nil, nil).
func (s *Store) GetDetail(ctx context.Context, recipeID int64) (*recipe.Detail, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT id, recipe_id, description, servings, cook_time_minutes, created_at
         FROM recipe_details WHERE recipe_id = ? ORDER BY id DESC LIMIT 1`, recipeID)
	var detail recipe.Detail
	var createdAt string
	err := row.Scan(&detail.ID, &detail.RecipeID, &detail.Description, &detail.Servings, &detail.CookTimeMinutes, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan detail: %w", err)
	}
	detail.CreatedAt = parseTimestamp(createdAt)
	return &detail, nil
}

// ListIngredients returns a recipe's ingredients.
func (s *Store) ListIngredients(ctx context.Context, recipeID int64) ([]recipe.Ingredient, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT id, recipe_id, name, amount, created_at
         FROM ingredients WHERE recipe_id = ? ORDER BY id ASC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []recipe.Ingredient
	for rows.Next() {
		var ingredient recipe.Ingredient
		var createdAt string
		if err := rows.Scan(&ingredient.ID, &ingredient.RecipeID, &ingredient.Name, &ingredient.Amount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		ingredient.CreatedAt = parseTimestamp(createdAt)
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, rows.Err()
}

// ListTags returns a recipe's tags.
func (s *Store) ListTags(ctx context.Context, recipeID int64) ([]recipe.Tag, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT id, recipe_id, name, created_at
         FROM recipe_tags WHERE recipe_id = ? ORDER BY id ASC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []recipe.Tag
	for rows.Next() {
		var tag recipe.Tag
		var createdAt string
		if err := rows.Scan(&tag.ID, &tag.RecipeID, &tag.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tag.CreatedAt = parseTimestamp(createdAt)
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// ListSteps returns a recipe's cooking steps in order.
func (s *Store) ListSteps(ctx context.Context, recipeID int64) ([]recipe.Step, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT id, recipe_id, position, subtitle, start_seconds, descriptions_json, created_at
         FROM recipe_steps WHERE recipe_id = ? ORDER BY position ASC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	defer rows.Close()

	var steps []recipe.Step
	for rows.Next() {
		var step recipe.Step
		var descriptions string
		var createdAt string
		if err := rows.Scan(&step.ID, &step.RecipeID, &step.Position, &step.Subtitle, &step.StartSec, &descriptions, &createdAt); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		if err := json.Unmarshal([]byte(descriptions), &step.Descriptions); err != nil {
			return nil, fmt.Errorf("unmarshal step descriptions: %w", err)
		}
		step.CreatedAt = parseTimestamp(createdAt)
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		if err := fn(tx); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}
