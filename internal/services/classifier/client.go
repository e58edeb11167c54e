// Package classifier wraps the external cooking-video classifier service.
// Verification confirms a video is eligible cooking content and yields the
// processed-artifact handle the content generators consume.
package classifier

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
	stageName          = "verification"
	verifyPath         = "/v1/videos/verify"
	cleanupPath        = "/v1/artifacts/cleanup"
	defaultHTTPTimeout = 120 * time.Second
)

// Client calls the classifier service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option customizes the classifier client.
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

// NewClient constructs a classifier client.
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

type verifyRequest struct {
	VideoID string `json:"video_id"`
}

type verifyResponse struct {
	StorageURI string `json:"storage_uri"`
	MediaType  string `json:"media_type"`
}

// Verify asks the classifier to confirm the video is cooking content.
// HTTP 422 is the classifier's content-policy rejection and maps to the
// not-a-cooking-video error; it is never retried. Every other non-success
// response is an external service error.
func (c *Client) Verify(ctx context.Context, videoID string) (recipe.Artifact, error) {
	var empty recipe.Artifact
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return empty, services.Wrap(services.ErrValidation, stageName, "verify", "video id required", nil)
	}

	body, status, err := c.post(ctx, verifyPath, verifyRequest{VideoID: videoID})
	if err != nil {
		return empty, services.Wrap(services.ErrExternalService, stageName, "verify", "request failed", err)
	}
	switch {
	case status == http.StatusUnprocessableEntity:
		return empty, services.Wrap(services.ErrNotCookVideo, stageName, "verify",
			fmt.Sprintf("video %q rejected by classifier", videoID), nil)
	case status >= http.StatusMultipleChoices:
		return empty, services.Wrap(services.ErrExternalService, stageName, "verify",
			fmt.Sprintf("http %d: %s", status, strings.TrimSpace(string(body))), nil)
	}

	var parsed verifyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return empty, services.Wrap(services.ErrExternalService, stageName, "verify", "decode response", err)
	}
	if strings.TrimSpace(parsed.StorageURI) == "" || strings.TrimSpace(parsed.MediaType) == "" {
		return empty, services.Wrap(services.ErrExternalService, stageName, "verify", "response missing artifact handle", nil)
	}
	return recipe.Artifact{StorageURI: parsed.StorageURI, MediaType: parsed.MediaType}, nil
}

type cleanupRequest struct {
	StorageURI string `json:"storage_uri"`
}

// Cleanup deletes the processed artifact. Callers treat failures as
// best-effort: the returned error is logged, never propagated into the
// pipeline's terminal transition.
func (c *Client) Cleanup(ctx context.Context, storageURI string) error {
	storageURI = strings.TrimSpace(storageURI)
	if storageURI == "" {
		return nil
	}

	body, status, err := c.post(ctx, cleanupPath, cleanupRequest{StorageURI: storageURI})
	if err != nil {
		return services.Wrap(services.ErrExternalService, stageName, "cleanup", "request failed", err)
	}
	if status >= http.StatusMultipleChoices {
		return services.Wrap(services.ErrExternalService, stageName, "cleanup",
			fmt.Sprintf("http %d: %s", status, strings.TrimSpace(string(body))), nil)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, int, error) {
	if c.baseURL == "" {
		return nil, 0, errors.New("classifier base url required")
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}
