// Package generator wraps the external content generation service behind
// one client with a method per content kind. Captions are generated from
// the video identifier; the briefing, detail, and step generators consume
// the processed artifact produced by verification. The four calls are
// mutually independent and safe to run concurrently.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ladle/internal/recipe"
	"ladle/internal/services"
)

const (
	captionPath        = "/v1/generate/captions"
	briefingPath       = "/v1/generate/briefing"
	detailPath         = "/v1/generate/detail"
	stepsPath          = "/v1/generate/steps"
	defaultHTTPTimeout = 120 * time.Second
)

// Client calls the content generation service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option customizes the generator client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs a generator client.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type captionRequest struct {
	VideoID string `json:"video_id"`
}

type captionSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Caption generates timed caption segments from the video identifier.
func (c *Client) Caption(ctx context.Context, videoID string) ([]recipe.CaptionSegment, error) {
	var payload []captionSegment
	if err := c.generate(ctx, "caption", captionPath, captionRequest{VideoID: videoID}, &payload); err != nil {
		return nil, err
	}
	segments := make([]recipe.CaptionSegment, len(payload))
	for i, segment := range payload {
		segments[i] = recipe.CaptionSegment{
			StartSec: segment.Start,
			EndSec:   segment.End,
			Text:     segment.Text,
		}
	}
	return segments, nil
}

type artifactRequest struct {
	StorageURI string `json:"storage_uri"`
	MediaType  string `json:"media_type"`
}

// Briefing generates the short recipe briefing from the processed artifact.
func (c *Client) Briefing(ctx context.Context, artifact recipe.Artifact) ([]string, error) {
	var payload []string
	if err := c.generate(ctx, "briefing", briefingPath, artifactRequest{
		StorageURI: artifact.StorageURI,
		MediaType:  artifact.MediaType,
	}, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

type detailResponse struct {
	Description string `json:"description"`
	Servings    int    `json:"servings"`
	CookTime    int    `json:"cook_time"`
	Ingredients []struct {
		Name   string `json:"name"`
		Amount string `json:"amount"`
	} `json:"ingredients"`
	Tags []string `json:"tags"`
}

// DetailResult bundles the structured detail payload.
type DetailResult struct {
	Detail      recipe.Detail
	Ingredients []recipe.Ingredient
	Tags        []recipe.Tag
}

// Detail generates the structured description, ingredients, and tags from
// the processed artifact. Tags are normalized to title case.
func (c *Client) Detail(ctx context.Context, artifact recipe.Artifact) (DetailResult, error) {
	var payload detailResponse
	if err := c.generate(ctx, "detail", detailPath, artifactRequest{
		StorageURI: artifact.StorageURI,
		MediaType:  artifact.MediaType,
	}, &payload); err != nil {
		return DetailResult{}, err
	}

	result := DetailResult{
		Detail: recipe.Detail{
			Description:     payload.Description,
			Servings:        payload.Servings,
			CookTimeMinutes: payload.CookTime,
		},
	}
	for _, ingredient := range payload.Ingredients {
		result.Ingredients = append(result.Ingredients, recipe.Ingredient{
			Name:   ingredient.Name,
			Amount: ingredient.Amount,
		})
	}
	for _, tag := range normalizeTags(payload.Tags) {
		result.Tags = append(result.Tags, recipe.Tag{Name: tag})
	}
	return result, nil
}

type stepResponse struct {
	Subtitle     string   `json:"subtitle"`
	Start        float64  `json:"start"`
	Descriptions []string `json:"descriptions"`
}

// Steps generates the ordered cooking steps from the processed artifact.
func (c *Client) Steps(ctx context.Context, artifact recipe.Artifact) ([]recipe.Step, error) {
	var payload []stepResponse
	if err := c.generate(ctx, "step", stepsPath, artifactRequest{
		StorageURI: artifact.StorageURI,
		MediaType:  artifact.MediaType,
	}, &payload); err != nil {
		return nil, err
	}
	steps := make([]recipe.Step, len(payload))
	for i, step := range payload {
		steps[i] = recipe.Step{
			Subtitle:     step.Subtitle,
			StartSec:     step.Start,
			Descriptions: step.Descriptions,
		}
	}
	return steps, nil
}

func (c *Client) generate(ctx context.Context, stage, path string, request, response any) error {
	if c.baseURL == "" {
		return services.Wrap(services.ErrExternalService, stage, "generate", "generator base url required", errors.New("empty base url"))
	}
	encoded, err := json.Marshal(request)
	if err != nil {
		return services.Wrap(services.ErrExternalService, stage, "generate", "encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return services.Wrap(services.ErrExternalService, stage, "generate", "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrExternalService, stage, "generate", "request failed", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return services.Wrap(services.ErrExternalService, stage, "generate", "read body", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return services.Wrap(services.ErrExternalService, stage, "generate",
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}
	if err := json.Unmarshal(body, response); err != nil {
		return services.Wrap(services.ErrExternalService, stage, "generate", "decode response", err)
	}
	return nil
}
