package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"ladle/internal/logging"
	"ladle/internal/pipeline"
	"ladle/internal/recipe"
	"ladle/internal/services"
	"ladle/internal/services/generator"
	"ladle/internal/services/youtube"
	"ladle/internal/store"
	"ladle/internal/testsupport"
)

type stubResolver struct{}

func (stubResolver) Resolve(context.Context, string) (youtube.Metadata, error) {
	return youtube.Metadata{Title: "Bibimbap", DurationSeconds: 300, ChannelID: "chan"}, nil
}

type stubVerifier struct{}

func (stubVerifier) Verify(context.Context, string) (recipe.Artifact, error) {
	return recipe.Artifact{StorageURI: "s3://processed/a.mp4", MediaType: "video/mp4"}, nil
}

func (stubVerifier) Cleanup(context.Context, string) error { return nil }

type stubGenerator struct{}

func (stubGenerator) Caption(context.Context, string) ([]recipe.CaptionSegment, error) {
	return []recipe.CaptionSegment{{StartSec: 0, EndSec: 1, Text: "heat the pan"}}, nil
}

func (stubGenerator) Briefing(context.Context, recipe.Artifact) ([]string, error) {
	return []string{"classic rice bowl"}, nil
}

func (stubGenerator) Detail(context.Context, recipe.Artifact) (generator.DetailResult, error) {
	return generator.DetailResult{
		Detail:      recipe.Detail{Description: "Rice bowl with vegetables", Servings: 1, CookTimeMinutes: 25},
		Ingredients: []recipe.Ingredient{{Name: "rice", Amount: "1 cup"}},
		Tags:        []recipe.Tag{{Name: "Korean"}},
	}, nil
}

func (stubGenerator) Steps(context.Context, recipe.Artifact) ([]recipe.Step, error) {
	return []recipe.Step{{Subtitle: "Cook rice", Descriptions: []string{"Rinse, then simmer"}}}, nil
}

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	mgr := pipeline.NewManager(cfg, st, logging.NewNop(), stubResolver{}, stubVerifier{}, stubGenerator{})
	if err := mgr.Start(context.Background()); err != nil {
		t.Fatalf("start manager: %v", err)
	}
	t.Cleanup(mgr.Stop)

	svc, err := NewService(st, mgr)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, st
}

func submitAndWait(t *testing.T, svc *Service, st *store.Store, url string) int64 {
	t.Helper()

	result, err := svc.Submit(context.Background(), url)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		rec, err := st.GetRecipe(context.Background(), result.RecipeID)
		if err != nil {
			t.Fatalf("get recipe: %v", err)
		}
		if rec != nil && rec.Status.Terminal() {
			return result.RecipeID
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("recipe never settled")
	return 0
}

func TestServiceDescribe(t *testing.T) {
	svc, st := newTestService(t)
	id := submitAndWait(t, svc, st, "https://youtu.be/abc123DEF45")

	view, err := svc.Describe(context.Background(), id)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if view.Recipe.Status != string(recipe.StatusSuccess) {
		t.Fatalf("expected SUCCESS, got %s", view.Recipe.Status)
	}
	if view.Recipe.ViewCount != 1 {
		t.Fatalf("expected view count 1, got %d", view.Recipe.ViewCount)
	}
	if view.Meta == nil || view.Meta.Title != "Bibimbap" {
		t.Fatalf("unexpected meta: %+v", view.Meta)
	}
	if len(view.Briefing) != 1 || len(view.Ingredients) != 1 || len(view.Steps) != 1 || len(view.Captions) != 1 {
		t.Fatalf("incomplete content: %+v", view)
	}
	if len(view.Tags) != 1 || view.Tags[0] != "Korean" {
		t.Fatalf("unexpected tags: %v", view.Tags)
	}
	if len(view.Progress) == 0 {
		t.Fatal("expected progress entries")
	}

	// Each describe counts another read.
	view, err = svc.Describe(context.Background(), id)
	if err != nil {
		t.Fatalf("describe again: %v", err)
	}
	if view.Recipe.ViewCount != 2 {
		t.Fatalf("expected view count 2, got %d", view.Recipe.ViewCount)
	}
}

func TestServiceDescribeNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Describe(context.Background(), 9999); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Describe(context.Background(), 0); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestServiceListAndStats(t *testing.T) {
	svc, st := newTestService(t)
	submitAndWait(t, svc, st, "https://youtu.be/abc123DEF45")
	submitAndWait(t, svc, st, "https://youtu.be/zzz999XYZ01")

	all, err := svc.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(all))
	}

	filtered, err := svc.List(context.Background(), []string{"success"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 successful recipes, got %d", len(filtered))
	}
	none, err := svc.List(context.Background(), []string{"failed"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no failed recipes, got %d", len(none))
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats[string(recipe.StatusSuccess)] != 2 {
		t.Fatalf("unexpected stats: %v", stats)
	}
}

func TestServiceProgress(t *testing.T) {
	svc, st := newTestService(t)
	id := submitAndWait(t, svc, st, "https://youtu.be/abc123DEF45")

	entries, err := svc.Progress(context.Background(), id)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected progress entries")
	}
	last := entries[len(entries)-1]
	if last.Step != string(recipe.StepFinished) || last.State != string(recipe.StateSuccess) {
		t.Fatalf("unexpected final entry: %+v", last)
	}
}
