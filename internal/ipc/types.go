package ipc

import "ladle/internal/api"

// RecipeSummary mirrors the API recipe DTO for IPC callers.
type RecipeSummary = api.RecipeSummary

// RecipeView mirrors the aggregated recipe view.
type RecipeView = api.RecipeView

// ProgressEntry mirrors one progress-log row.
type ProgressEntry = api.ProgressEntry

// SubmitRequest admits a video URL for recipe creation.
type SubmitRequest struct {
	URL string `json:"url"`
}

// SubmitResponse carries the accepted recipe's id and initial status.
type SubmitResponse struct {
	RecipeID int64  `json:"recipe_id"`
	Status   string `json:"status"`
}

// DescribeRequest fetches the full view of a single recipe.
type DescribeRequest struct {
	ID int64 `json:"id"`
}

// DescribeResponse contains the aggregated recipe view.
type DescribeResponse struct {
	View RecipeView `json:"view"`
}

// ProgressRequest fetches a recipe's progress log.
type ProgressRequest struct {
	ID int64 `json:"id"`
}

// ProgressResponse contains progress entries in append order.
type ProgressResponse struct {
	Entries []ProgressEntry `json:"entries"`
}

// ListRequest filters recipe listing by status.
type ListRequest struct {
	Statuses []string `json:"statuses"`
}

// ListResponse contains recipe summaries.
type ListResponse struct {
	Items []RecipeSummary `json:"items"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse represents combined daemon and pipeline status.
type StatusResponse struct {
	Running         bool           `json:"running"`
	PID             int            `json:"pid"`
	DatabasePath    string         `json:"database_path"`
	LockPath        string         `json:"lock_path"`
	SocketPath      string         `json:"socket_path"`
	ActivePipelines int64          `json:"active_pipelines"`
	RecipeStats     map[string]int `json:"recipe_stats"`
}

// StopRequest stops the daemon's pipeline processing.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}
