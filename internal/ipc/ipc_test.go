package ipc_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"ladle/internal/daemon"
	"ladle/internal/ipc"
	"ladle/internal/logging"
	"ladle/internal/pipeline"
	"ladle/internal/recipe"
	"ladle/internal/services/generator"
	"ladle/internal/services/youtube"
	"ladle/internal/testsupport"
)

type stubResolver struct{}

func (stubResolver) Resolve(context.Context, string) (youtube.Metadata, error) {
	return youtube.Metadata{Title: "Pho", DurationSeconds: 480, ChannelID: "chan"}, nil
}

type stubVerifier struct{}

func (stubVerifier) Verify(context.Context, string) (recipe.Artifact, error) {
	return recipe.Artifact{StorageURI: "s3://processed/pho.mp4", MediaType: "video/mp4"}, nil
}

func (stubVerifier) Cleanup(context.Context, string) error { return nil }

type stubGenerator struct{}

func (stubGenerator) Caption(context.Context, string) ([]recipe.CaptionSegment, error) {
	return []recipe.CaptionSegment{{EndSec: 2, Text: "simmer the broth"}}, nil
}

func (stubGenerator) Briefing(context.Context, recipe.Artifact) ([]string, error) {
	return []string{"slow simmered noodle soup"}, nil
}

func (stubGenerator) Detail(context.Context, recipe.Artifact) (generator.DetailResult, error) {
	return generator.DetailResult{Detail: recipe.Detail{Description: "Beef pho", Servings: 4, CookTimeMinutes: 180}}, nil
}

func (stubGenerator) Steps(context.Context, recipe.Artifact) ([]recipe.Step, error) {
	return []recipe.Step{{Subtitle: "Broth", Descriptions: []string{"Simmer bones for hours"}}}, nil
}

func TestIPCServerClient(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	logger := logging.NewNop()

	mgr := pipeline.NewManager(cfg, st, logger, stubResolver{}, stubVerifier{}, stubGenerator{})
	d, err := daemon.New(cfg, st, logger, mgr)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	if err := d.Start(ctx); err != nil {
		t.Fatalf("daemon start: %v", err)
	}

	srv, err := ipc.NewServer(ctx, cfg.Paths.SocketPath, d, logger)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping IPC server test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(srv.Close)

	client, err := ipc.Dial(cfg.Paths.SocketPath)
	if err != nil {
		t.Fatalf("ipc.Dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	status, err := client.Status()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Running {
		t.Fatal("expected daemon running")
	}
	if status.SocketPath != cfg.Paths.SocketPath {
		t.Fatalf("unexpected socket path %q", status.SocketPath)
	}

	submitted, err := client.Submit("https://youtu.be/abc123DEF45")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitted.RecipeID == 0 || submitted.Status != string(recipe.StatusInProgress) {
		t.Fatalf("unexpected submit response: %+v", submitted)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		progress, err := client.Progress(submitted.RecipeID)
		if err != nil {
			t.Fatalf("progress: %v", err)
		}
		if n := len(progress.Entries); n > 0 {
			last := progress.Entries[n-1]
			if last.Step == string(recipe.StepFinished) {
				break
			}
		}
		if time.Now().After(deadline) {
			t.Fatal("pipeline never finished")
		}
		time.Sleep(10 * time.Millisecond)
	}

	described, err := client.Describe(submitted.RecipeID)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if described.View.Recipe.Status != string(recipe.StatusSuccess) {
		t.Fatalf("expected SUCCESS, got %s", described.View.Recipe.Status)
	}
	if described.View.Meta == nil || described.View.Meta.Title != "Pho" {
		t.Fatalf("unexpected meta: %+v", described.View.Meta)
	}

	listed, err := client.List([]string{"SUCCESS"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(listed.Items))
	}

	if _, err := client.Describe(4242); err == nil {
		t.Fatal("expected error for unknown recipe")
	}

	stopped, err := client.Stop()
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if !stopped.Stopped {
		t.Fatal("expected stopped response")
	}
}
