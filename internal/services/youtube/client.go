// Package youtube resolves source-video metadata through the YouTube Data
// API v3.
package youtube

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"ladle/internal/services"
)

const stageName = "metadata"

// Metadata is the resolved snapshot for one video.
type Metadata struct {
	Title           string
	ThumbnailURI    string
	DurationSeconds int64
	ChannelID       string
}

// Resolver fetches video snippets and content details.
type Resolver struct {
	svc *yt.Service
}

// Option customizes resolver construction.
type Option func(*resolverOptions)

type resolverOptions struct {
	endpoint   string
	httpClient *http.Client
}

// WithEndpoint overrides the API base URL (used in tests).
func WithEndpoint(endpoint string) Option {
	return func(o *resolverOptions) {
		o.endpoint = strings.TrimSpace(endpoint)
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *resolverOptions) {
		o.httpClient = client
	}
}

// NewResolver constructs a resolver authenticated with an API key.
func NewResolver(ctx context.Context, apiKey string, opts ...Option) (*Resolver, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("youtube resolver: api key required")
	}

	options := &resolverOptions{}
	for _, opt := range opts {
		opt(options)
	}

	clientOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if options.httpClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(options.httpClient))
	}
	if options.endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(options.endpoint))
	}

	svc, err := yt.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("youtube resolver: %w", err)
	}
	return &Resolver{svc: svc}, nil
}

// Resolve fetches title, thumbnail, duration, and channel for a video.
// Any transport or API failure classifies as an external service error;
// a response missing required fields classifies as incomplete metadata.
func (r *Resolver) Resolve(ctx context.Context, videoID string) (Metadata, error) {
	var empty Metadata
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return empty, services.Wrap(services.ErrValidation, stageName, "resolve", "video id required", nil)
	}

	resp, err := r.svc.Videos.
		List([]string{"snippet", "contentDetails"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return empty, services.Wrap(services.ErrExternalService, stageName, "videos.list", "request failed", err)
	}
	if len(resp.Items) == 0 {
		return empty, services.Wrap(services.ErrExternalService, stageName, "videos.list",
			fmt.Sprintf("video %q not found", videoID), nil)
	}

	item := resp.Items[0]
	if item.Snippet == nil || item.ContentDetails == nil {
		return empty, services.Wrap(services.ErrMetadataIncomplete, stageName, "videos.list", "response missing snippet or content details", nil)
	}

	thumbnail, err := pickThumbnail(item.Snippet.Thumbnails)
	if err != nil {
		return empty, err
	}

	seconds, err := parseISODuration(item.ContentDetails.Duration)
	if err != nil {
		return empty, services.Wrap(services.ErrExternalService, stageName, "parse duration",
			fmt.Sprintf("malformed duration %q", item.ContentDetails.Duration), err)
	}

	return Metadata{
		Title:           item.Snippet.Title,
		ThumbnailURI:    thumbnail,
		DurationSeconds: seconds,
		ChannelID:       item.Snippet.ChannelId,
	}, nil
}

// pickThumbnail falls through the fixed resolution priority list and fails
// when no variant is present.
func pickThumbnail(details *yt.ThumbnailDetails) (string, error) {
	if details != nil {
		for _, candidate := range []*yt.Thumbnail{
			details.Maxres,
			details.Standard,
			details.High,
			details.Medium,
			details.Default,
		} {
			if candidate != nil && strings.TrimSpace(candidate.Url) != "" {
				return candidate.Url, nil
			}
		}
	}
	return "", services.Wrap(services.ErrMetadataIncomplete, stageName, "pick thumbnail", "no thumbnail available", nil)
}
