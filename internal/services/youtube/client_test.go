package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	yt "google.golang.org/api/youtube/v3"

	"ladle/internal/services"
)

func newTestResolver(t *testing.T, handler http.HandlerFunc) *Resolver {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	resolver, err := NewResolver(context.Background(), "test-key",
		WithEndpoint(server.URL), WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}
	return resolver
}

func TestResolveReturnsMetadata(t *testing.T) {
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"items": [{
				"id": "abc123def45",
				"snippet": {
					"title": "Kimchi Stew at Home",
					"channelId": "UC123",
					"thumbnails": {
						"high": {"url": "https://img.example/high.jpg"},
						"maxres": {"url": "https://img.example/maxres.jpg"}
					}
				},
				"contentDetails": {"duration": "PT1H30M"}
			}]
		}`)
	})

	meta, err := resolver.Resolve(context.Background(), "abc123def45")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if meta.Title != "Kimchi Stew at Home" {
		t.Fatalf("unexpected title %q", meta.Title)
	}
	if meta.ThumbnailURI != "https://img.example/maxres.jpg" {
		t.Fatalf("expected maxres thumbnail preferred, got %q", meta.ThumbnailURI)
	}
	if meta.DurationSeconds != 5400 {
		t.Fatalf("expected 5400 seconds, got %d", meta.DurationSeconds)
	}
	if meta.ChannelID != "UC123" {
		t.Fatalf("unexpected channel %q", meta.ChannelID)
	}
}

func TestResolveMissingVideoIsExternalError(t *testing.T) {
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items": []}`)
	})

	if _, err := resolver.Resolve(context.Background(), "missing"); !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected external service error, got %v", err)
	}
}

func TestResolveRemoteFailureIsExternalError(t *testing.T) {
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	})

	if _, err := resolver.Resolve(context.Background(), "abc123def45"); !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected external service error, got %v", err)
	}
}

func TestResolveMalformedDurationIsExternalError(t *testing.T) {
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"items": [{
				"snippet": {"title": "t", "channelId": "c", "thumbnails": {"default": {"url": "https://img.example/d.jpg"}}},
				"contentDetails": {"duration": "ninety minutes"}
			}]
		}`)
	})

	if _, err := resolver.Resolve(context.Background(), "abc123def45"); !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected external service error for malformed duration, got %v", err)
	}
}

func TestResolveMissingThumbnailIsIncompleteMetadata(t *testing.T) {
	resolver := newTestResolver(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"items": [{
				"snippet": {"title": "t", "channelId": "c"},
				"contentDetails": {"duration": "PT5M"}
			}]
		}`)
	})

	if _, err := resolver.Resolve(context.Background(), "abc123def45"); !errors.Is(err, services.ErrMetadataIncomplete) {
		t.Fatalf("expected metadata incomplete error, got %v", err)
	}
}

func TestPickThumbnailPriority(t *testing.T) {
	details := &yt.ThumbnailDetails{
		Default: &yt.Thumbnail{Url: "default.jpg"},
		Medium:  &yt.Thumbnail{Url: "medium.jpg"},
	}
	url, err := pickThumbnail(details)
	if err != nil {
		t.Fatalf("pickThumbnail failed: %v", err)
	}
	if url != "medium.jpg" {
		t.Fatalf("expected medium preferred over default, got %q", url)
	}

	if _, err := pickThumbnail(&yt.ThumbnailDetails{}); !errors.Is(err, services.ErrMetadataIncomplete) {
		t.Fatalf("expected metadata incomplete for empty thumbnails, got %v", err)
	}
	if _, err := pickThumbnail(nil); !errors.Is(err, services.ErrMetadataIncomplete) {
		t.Fatalf("expected metadata incomplete for nil thumbnails, got %v", err)
	}
}
