package api

import (
	"context"
	"errors"
	"fmt"

	"ladle/internal/pipeline"
	"ladle/internal/recipe"
	"ladle/internal/services"
	"ladle/internal/store"
)

// Service is the read/write surface shared by IPC and CLI callers. Writes
// go through the pipeline manager; reads go straight to the store.
type Service struct {
	store   *store.Store
	manager *pipeline.Manager
}

// NewService constructs the API service.
func NewService(st *store.Store, manager *pipeline.Manager) (*Service, error) {
	if st == nil || manager == nil {
		return nil, errors.New("api service requires store and pipeline manager")
	}
	return &Service{store: st, manager: manager}, nil
}

// Submit admits a video URL and returns the accepted recipe's id. The
// recipe is IN_PROGRESS when Submit returns; callers follow the progress
// log for completion.
func (s *Service) Submit(ctx context.Context, rawURL string) (SubmitResult, error) {
	id, err := s.manager.Submit(ctx, rawURL)
	if err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{RecipeID: id, Status: string(recipe.StatusInProgress)}, nil
}

// Describe returns the full recipe view and counts the read. Successful
// recipes include their generated content; in-flight and failed recipes
// carry whatever metadata and progress exists.
func (s *Service) Describe(ctx context.Context, id int64) (*RecipeView, error) {
	rec, err := s.getRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.IncrementViewCount(ctx, id); err != nil {
		return nil, fmt.Errorf("describe recipe %d: %w", id, err)
	}
	rec.ViewCount++

	view := &RecipeView{Recipe: FromRecipe(rec)}

	meta, err := s.store.GetVideoMeta(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("describe recipe %d: %w", id, err)
	}
	view.Meta = FromVideoMeta(meta)

	events, err := s.store.ListProgress(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("describe recipe %d: %w", id, err)
	}
	view.Progress = FromProgress(events)

	if rec.Status != recipe.StatusSuccess {
		return view, nil
	}
	if err := s.attachContent(ctx, id, view); err != nil {
		return nil, fmt.Errorf("describe recipe %d: %w", id, err)
	}
	return view, nil
}

// Progress returns a recipe's progress log in append order.
func (s *Service) Progress(ctx context.Context, id int64) ([]ProgressEntry, error) {
	if _, err := s.getRecipe(ctx, id); err != nil {
		return nil, err
	}
	events, err := s.store.ListProgress(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("progress for recipe %d: %w", id, err)
	}
	return FromProgress(events), nil
}

// List returns recipe summaries, optionally filtered by status, newest
// first.
func (s *Service) List(ctx context.Context, statuses []string) ([]RecipeSummary, error) {
	recs, err := s.store.ListRecipes(ctx, ParseStatuses(statuses)...)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return FromRecipes(recs), nil
}

// Stats returns recipe counts keyed by status string.
func (s *Service) Stats(ctx context.Context) (map[string]int, error) {
	counts, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("recipe stats: %w", err)
	}
	stats := make(map[string]int, len(counts))
	for status, count := range counts {
		stats[string(status)] = count
	}
	return stats, nil
}

// Active reports how many pipelines are currently running.
func (s *Service) Active() int64 {
	return s.manager.Active()
}

func (s *Service) getRecipe(ctx context.Context, id int64) (*recipe.Recipe, error) {
	if id <= 0 {
		return nil, services.Wrap(services.ErrValidation, "api", "lookup", fmt.Sprintf("invalid recipe id %d", id), nil)
	}
	rec, err := s.store.GetRecipe(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe %d: %w", id, err)
	}
	if rec == nil {
		return nil, services.Wrap(services.ErrNotFound, "api", "lookup", fmt.Sprintf("recipe %d", id), nil)
	}
	return rec, nil
}

func (s *Service) attachContent(ctx context.Context, id int64, view *RecipeView) error {
	lines, err := s.store.ListBriefing(ctx, id)
	if err != nil {
		return err
	}
	for _, line := range lines {
		view.Briefing = append(view.Briefing, line.Content)
	}

	detail, err := s.store.GetDetail(ctx, id)
	if err != nil {
		return err
	}
	if detail != nil {
		view.Detail = &RecipeDetail{
			Description:     detail.Description,
			Servings:        detail.Servings,
			CookTimeMinutes: detail.CookTimeMinutes,
		}
	}

	ingredients, err := s.store.ListIngredients(ctx, id)
	if err != nil {
		return err
	}
	for _, ingredient := range ingredients {
		view.Ingredients = append(view.Ingredients, Ingredient{Name: ingredient.Name, Amount: ingredient.Amount})
	}

	tags, err := s.store.ListTags(ctx, id)
	if err != nil {
		return err
	}
	for _, tag := range tags {
		view.Tags = append(view.Tags, tag.Name)
	}

	steps, err := s.store.ListSteps(ctx, id)
	if err != nil {
		return err
	}
	for _, step := range steps {
		view.Steps = append(view.Steps, RecipeStep{
			Position:     step.Position,
			Subtitle:     step.Subtitle,
			StartSec:     step.StartSec,
			Descriptions: step.Descriptions,
		})
	}

	captions, err := s.store.ListCaptions(ctx, id)
	if err != nil {
		return err
	}
	for _, segment := range captions {
		view.Captions = append(view.Captions, Caption{StartSec: segment.StartSec, EndSec: segment.EndSec, Text: segment.Text})
	}
	return nil
}
