package api

import (
	"strings"

	"ladle/internal/recipe"
)

// FromRecipe converts a stored recipe to its API representation.
func FromRecipe(rec *recipe.Recipe) RecipeSummary {
	if rec == nil {
		return RecipeSummary{}
	}
	dto := RecipeSummary{
		ID:        rec.ID,
		SourceURL: rec.SourceURL,
		VideoID:   rec.VideoID,
		Status:    string(rec.Status),
		ViewCount: rec.ViewCount,
	}
	if !rec.CreatedAt.IsZero() {
		dto.CreatedAt = rec.CreatedAt.UTC().Format(dateTimeFormat)
	}
	if !rec.UpdatedAt.IsZero() {
		dto.UpdatedAt = rec.UpdatedAt.UTC().Format(dateTimeFormat)
	}
	return dto
}

// FromRecipes converts a slice of stored recipes into API DTOs.
func FromRecipes(recs []*recipe.Recipe) []RecipeSummary {
	if len(recs) == 0 {
		return nil
	}
	out := make([]RecipeSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, FromRecipe(rec))
	}
	return out
}

// FromVideoMeta converts a metadata snapshot to its API representation.
func FromVideoMeta(meta *recipe.VideoMeta) *VideoMeta {
	if meta == nil {
		return nil
	}
	return &VideoMeta{
		Title:           meta.Title,
		VideoURI:        meta.VideoURI,
		ThumbnailURI:    meta.ThumbnailURI,
		DurationSeconds: meta.DurationSeconds,
		ChannelID:       meta.ChannelID,
		Status:          string(meta.Status),
	}
}

// FromProgress converts progress events into API entries, append order
// preserved.
func FromProgress(events []recipe.ProgressEvent) []ProgressEntry {
	if len(events) == 0 {
		return nil
	}
	out := make([]ProgressEntry, 0, len(events))
	for _, event := range events {
		entry := ProgressEntry{
			Step:   string(event.Step),
			Detail: string(event.Detail),
			State:  string(event.State),
		}
		if !event.CreatedAt.IsZero() {
			entry.CreatedAt = event.CreatedAt.UTC().Format(dateTimeFormat)
		}
		out = append(out, entry)
	}
	return out
}

// ParseStatuses maps status strings to recipe statuses, skipping any it
// does not recognize. Matching is case-insensitive.
func ParseStatuses(raw []string) []recipe.Status {
	statuses := make([]recipe.Status, 0, len(raw))
	for _, candidate := range raw {
		status := recipe.Status(strings.ToUpper(strings.TrimSpace(candidate)))
		if status.Valid() {
			statuses = append(statuses, status)
		}
	}
	return statuses
}
