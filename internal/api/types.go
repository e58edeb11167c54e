package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// RecipeSummary describes a recipe in a transport-friendly format.
type RecipeSummary struct {
	ID        int64  `json:"id"`
	SourceURL string `json:"sourceUrl"`
	VideoID   string `json:"videoId"`
	Status    string `json:"status"`
	ViewCount int64  `json:"viewCount"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// VideoMeta mirrors the resolved metadata snapshot.
type VideoMeta struct {
	Title           string `json:"title"`
	VideoURI        string `json:"videoUri"`
	ThumbnailURI    string `json:"thumbnailUri"`
	DurationSeconds int64  `json:"durationSeconds"`
	ChannelID       string `json:"channelId"`
	Status          string `json:"status"`
}

// ProgressEntry is one row of a recipe's progress log.
type ProgressEntry struct {
	Step      string `json:"step"`
	Detail    string `json:"detail"`
	State     string `json:"state"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Caption is one time-aligned transcript segment.
type Caption struct {
	StartSec float64 `json:"startSec"`
	EndSec   float64 `json:"endSec"`
	Text     string  `json:"text"`
}

// RecipeDetail is the structured summary of a recipe.
type RecipeDetail struct {
	Description     string `json:"description"`
	Servings        int    `json:"servings"`
	CookTimeMinutes int    `json:"cookTimeMinutes"`
}

// Ingredient pairs an ingredient name with its free-form amount.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// RecipeStep is one ordered cooking step.
type RecipeStep struct {
	Position     int      `json:"position"`
	Subtitle     string   `json:"subtitle"`
	StartSec     float64  `json:"startSec"`
	Descriptions []string `json:"descriptions"`
}

// RecipeView aggregates a recipe with its metadata and generated content.
type RecipeView struct {
	Recipe      RecipeSummary   `json:"recipe"`
	Meta        *VideoMeta      `json:"meta,omitempty"`
	Briefing    []string        `json:"briefing,omitempty"`
	Detail      *RecipeDetail   `json:"detail,omitempty"`
	Ingredients []Ingredient    `json:"ingredients,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Steps       []RecipeStep    `json:"steps,omitempty"`
	Captions    []Caption       `json:"captions,omitempty"`
	Progress    []ProgressEntry `json:"progress,omitempty"`
}

// SubmitResult reports the outcome of an admission request.
type SubmitResult struct {
	RecipeID int64  `json:"recipeId"`
	Status   string `json:"status"`
}
