package store_test

import (
	"context"
	"testing"

	"ladle/internal/recipe"
	"ladle/internal/testsupport"
)

func TestArtifactRoundTrips(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	rec, err := st.CreateRecipe(ctx, testURL, "abc123def45")
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	captions := []recipe.CaptionSegment{
		{StartSec: 0, EndSec: 2.5, Text: "Hi everyone"},
		{StartSec: 2.5, EndSec: 6, Text: "today we make stew"},
	}
	if err := st.SaveCaptions(ctx, rec.ID, captions); err != nil {
		t.Fatalf("SaveCaptions failed: %v", err)
	}
	gotCaptions, err := st.ListCaptions(ctx, rec.ID)
	if err != nil {
		t.Fatalf("ListCaptions failed: %v", err)
	}
	if len(gotCaptions) != 2 || gotCaptions[1].Text != "today we make stew" {
		t.Fatalf("unexpected captions: %#v", gotCaptions)
	}

	if err := st.SaveBriefing(ctx, rec.ID, []string{"Rich kimchi stew", "Ready in 40 minutes"}); err != nil {
		t.Fatalf("SaveBriefing failed: %v", err)
	}
	briefing, err := st.ListBriefing(ctx, rec.ID)
	if err != nil {
		t.Fatalf("ListBriefing failed: %v", err)
	}
	if len(briefing) != 2 || briefing[0].Position != 0 || briefing[1].Content != "Ready in 40 minutes" {
		t.Fatalf("unexpected briefing: %#v", briefing)
	}

	detail := recipe.Detail{Description: "A comforting stew", Servings: 2, CookTimeMinutes: 40}
	ingredients := []recipe.Ingredient{{Name: "kimchi", Amount: "300g"}, {Name: "pork belly", Amount: "200g"}}
	tags := []recipe.Tag{{Name: "Korean"}, {Name: "Stew"}}
	if err := st.SaveDetail(ctx, rec.ID, detail, ingredients, tags); err != nil {
		t.Fatalf("SaveDetail failed: %v", err)
	}
	gotDetail, err := st.GetDetail(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetDetail failed: %v", err)
	}
	if gotDetail == nil || gotDetail.Servings != 2 || gotDetail.CookTimeMinutes != 40 {
		t.Fatalf("unexpected detail: %#v", gotDetail)
	}
	gotIngredients, err := st.ListIngredients(ctx, rec.ID)
	if err != nil {
		t.Fatalf("ListIngredients failed: %v", err)
	}
	if len(gotIngredients) != 2 || gotIngredients[0].Name != "kimchi" {
		t.Fatalf("unexpected ingredients: %#v", gotIngredients)
	}
	gotTags, err := st.ListTags(ctx, rec.ID)
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(gotTags) != 2 || gotTags[1].Name != "Stew" {
		t.Fatalf("unexpected tags: %#v", gotTags)
	}

	steps := []recipe.Step{
		{Subtitle: "Prep", StartSec: 10, Descriptions: []string{"Slice the kimchi", "Cube the pork"}},
		{Subtitle: "Simmer", StartSec: 120, Descriptions: []string{"Simmer for 30 minutes"}},
	}
	if err := st.SaveSteps(ctx, rec.ID, steps); err != nil {
		t.Fatalf("SaveSteps failed: %v", err)
	}
	gotSteps, err := st.ListSteps(ctx, rec.ID)
	if err != nil {
		t.Fatalf("ListSteps failed: %v", err)
	}
	if len(gotSteps) != 2 || gotSteps[0].Position != 0 || len(gotSteps[0].Descriptions) != 2 {
		t.Fatalf("unexpected steps: %#v", gotSteps)
	}
	if gotSteps[1].Subtitle != "Simmer" || gotSteps[1].StartSec != 120 {
		t.Fatalf("unexpected step ordering: %#v", gotSteps)
	}
}

func TestDeleteContentRemovesAllArtifactRows(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	rec, err := st.CreateRecipe(ctx, testURL, "abc123def45")
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	if err := st.SaveCaptions(ctx, rec.ID, []recipe.CaptionSegment{{Text: "hello"}}); err != nil {
		t.Fatalf("SaveCaptions failed: %v", err)
	}
	if err := st.SaveBriefing(ctx, rec.ID, []string{"line"}); err != nil {
		t.Fatalf("SaveBriefing failed: %v", err)
	}
	if err := st.SaveDetail(ctx, rec.ID, recipe.Detail{Description: "d"}, []recipe.Ingredient{{Name: "salt"}}, []recipe.Tag{{Name: "Quick"}}); err != nil {
		t.Fatalf("SaveDetail failed: %v", err)
	}
	if err := st.SaveSteps(ctx, rec.ID, []recipe.Step{{Subtitle: "s", Descriptions: []string{"x"}}}); err != nil {
		t.Fatalf("SaveSteps failed: %v", err)
	}
	if err := st.AppendProgress(ctx, rec.ID, recipe.StepReady, recipe.DetailReady, recipe.StateRunning); err != nil {
		t.Fatalf("AppendProgress failed: %v", err)
	}

	if err := st.DeleteContent(ctx, rec.ID); err != nil {
		t.Fatalf("DeleteContent failed: %v", err)
	}

	if captions, _ := st.ListCaptions(ctx, rec.ID); len(captions) != 0 {
		t.Fatalf("captions survived compensation: %#v", captions)
	}
	if briefing, _ := st.ListBriefing(ctx, rec.ID); len(briefing) != 0 {
		t.Fatalf("briefing survived compensation: %#v", briefing)
	}
	if detail, _ := st.GetDetail(ctx, rec.ID); detail != nil {
		t.Fatalf("detail survived compensation: %#v", detail)
	}
	if ingredients, _ := st.ListIngredients(ctx, rec.ID); len(ingredients) != 0 {
		t.Fatalf("ingredients survived compensation: %#v", ingredients)
	}
	if tags, _ := st.ListTags(ctx, rec.ID); len(tags) != 0 {
		t.Fatalf("tags survived compensation: %#v", tags)
	}
	if steps, _ := st.ListSteps(ctx, rec.ID); len(steps) != 0 {
		t.Fatalf("steps survived compensation: %#v", steps)
	}

	// The progress log is append-only and never compensated.
	events, err := st.ListProgress(ctx, rec.ID)
	if err != nil {
		t.Fatalf("ListProgress failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("progress log should survive compensation, got %d events", len(events))
	}
}

func TestFailStaleInProgress(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	rec, err := st.CreateRecipe(ctx, testURL, "abc123def45")
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}
	if _, err := st.AcquireLock(ctx, testURL); err != nil {
		t.Fatalf("AcquireLock failed: %v", err)
	}
	done, err := st.CreateRecipe(ctx, testURL+"&other=1", "abc123def45")
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}
	if err := st.MarkRecipeTerminal(ctx, done.ID, recipe.StatusSuccess); err != nil {
		t.Fatalf("MarkRecipeTerminal failed: %v", err)
	}

	recovered, err := st.FailStaleInProgress(ctx)
	if err != nil {
		t.Fatalf("FailStaleInProgress failed: %v", err)
	}
	if recovered != 1 {
		t.Fatalf("expected 1 recovered recipe, got %d", recovered)
	}

	fetched, err := st.GetRecipe(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetRecipe failed: %v", err)
	}
	if fetched.Status != recipe.StatusFailed {
		t.Fatalf("expected FAILED after recovery, got %s", fetched.Status)
	}
	held, err := st.LockHeld(ctx, testURL)
	if err != nil {
		t.Fatalf("LockHeld failed: %v", err)
	}
	if held {
		t.Fatal("expected stale lock to be released")
	}
	events, err := st.ListProgress(ctx, rec.ID)
	if err != nil {
		t.Fatalf("ListProgress failed: %v", err)
	}
	last := events[len(events)-1]
	if last.Step != recipe.StepFinished || last.State != recipe.StateFailed {
		t.Fatalf("expected terminal FAILED event, got %#v", last)
	}
}
