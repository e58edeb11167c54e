package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ladle/internal/recipe"
)

// SaveVideoMeta persists the metadata snapshot resolved for a recipe.
func (s *Store) SaveVideoMeta(ctx context.Context, meta *recipe.VideoMeta) (*recipe.VideoMeta, error) {
	if meta == nil || meta.RecipeID == 0 {
		return nil, errors.New("save video meta: recipe id required")
	}
	status := meta.Status
	if status == "" {
		status = recipe.MetaStatusActive
	}

	now := timestamp(time.Now())
	res, err := s.execWithRetry(ctx,
		`INSERT INTO video_meta (recipe_id, video_uri, title, thumbnail_uri, duration_seconds, channel_id, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.RecipeID,
		meta.VideoURI,
		meta.Title,
		meta.ThumbnailURI,
		meta.DurationSeconds,
		meta.ChannelID,
		status,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert video meta: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert video meta: last insert id: %w", err)
	}
	return s.getVideoMetaByID(ctx, id)
}

// GetVideoMeta fetches the metadata snapshot for a recipe, or (nil, nil).
func (s *Store) GetVideoMeta(ctx context.Context, recipeID int64) (*recipe.VideoMeta, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT id, recipe_id, video_uri, title, thumbnail_uri, duration_seconds, channel_id, status, created_at, updated_at
         FROM video_meta WHERE recipe_id = ? ORDER BY id DESC LIMIT 1`, recipeID)
	return scanVideoMeta(row)
}

// SetVideoMetaStatus updates the moderation status of a metadata snapshot.
// This is driven by out-of-band moderation, never by the pipeline.
func (s *Store) SetVideoMetaStatus(ctx context.Context, id int64, status recipe.MetaStatus) error {
	if _, err := s.execWithRetry(ctx,
		`UPDATE video_meta SET status = ?, updated_at = ? WHERE id = ?`,
		status, timestamp(time.Now()), id); err != nil {
		return fmt.Errorf("set video meta status: %w", err)
	}
	return nil
}

func (s *Store) getVideoMetaByID(ctx context.Context, id int64) (*recipe.VideoMeta, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT id, recipe_id, video_uri, title, thumbnail_uri, duration_seconds, channel_id, status, created_at, updated_at
         FROM video_meta WHERE id = ?`, id)
	return scanVideoMeta(row)
}

func scanVideoMeta(row *sql.Row) (*recipe.VideoMeta, error) {
	var meta recipe.VideoMeta
	var createdAt, updatedAt string
	err := row.Scan(&meta.ID, &meta.RecipeID, &meta.VideoURI, &meta.Title, &meta.ThumbnailURI,
		&meta.DurationSeconds, &meta.ChannelID, &meta.Status, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan video meta: %w", err)
	}
	meta.CreatedAt = parseTimestamp(createdAt)
	meta.UpdatedAt = parseTimestamp(updatedAt)
	return &meta, nil
}
