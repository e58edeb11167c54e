// Package recipe defines the domain model shared across the pipeline,
// store, and service layers: recipes, their lifecycle statuses, the
// progress-log vocabulary, and the generated content artifacts.
package recipe

import "time"

// Status is the lifecycle state of a recipe. A recipe is created
// IN_PROGRESS and moves exactly once to one of the terminal states.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusSuccess    Status = "SUCCESS"
	StatusFailed     Status = "FAILED"
	StatusBlocked    Status = "BLOCKED"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusSuccess, StatusFailed, StatusBlocked:
		return true
	}
	return false
}

// Terminal reports whether the status is an end state. Terminal recipes
// never change status again.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusBlocked
}

// MetaStatus is the moderation state of a video metadata snapshot. It is
// independent of the recipe lifecycle and driven by out-of-band review.
type MetaStatus string

const (
	MetaStatusActive  MetaStatus = "ACTIVE"
	MetaStatusBanned  MetaStatus = "BANNED"
	MetaStatusBlocked MetaStatus = "BLOCKED"
)

// ProgressStep identifies which pipeline stage a progress event belongs to.
type ProgressStep string

const (
	StepReady    ProgressStep = "READY"
	StepCaption  ProgressStep = "CAPTION"
	StepBriefing ProgressStep = "BRIEFING"
	StepDetail   ProgressStep = "DETAIL"
	StepStep     ProgressStep = "STEP"
	StepFinished ProgressStep = "FINISHED"
)

// ProgressDetail narrows a step to the concrete activity being performed.
type ProgressDetail string

const (
	DetailReady      ProgressDetail = "READY"
	DetailCaption    ProgressDetail = "CAPTION"
	DetailTag        ProgressDetail = "TAG"
	DetailDetailMeta ProgressDetail = "DETAIL_META"
	DetailIngredient ProgressDetail = "INGREDIENT"
	DetailBriefing   ProgressDetail = "BRIEFING"
	DetailStep       ProgressDetail = "STEP"
	DetailFinished   ProgressDetail = "FINISHED"
)

// ProgressState is the outcome recorded by a progress event.
type ProgressState string

const (
	StateRunning ProgressState = "RUNNING"
	StateSuccess ProgressState = "SUCCESS"
	StateFailed  ProgressState = "FAILED"
)

// Recipe is one admitted video URL and its lifecycle state.
type Recipe struct {
	ID        int64
	SourceURL string
	VideoID   string
	Status    Status
	ViewCount int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VideoMeta is the metadata snapshot resolved from the video platform
// during the READY stage.
type VideoMeta struct {
	ID              int64
	RecipeID        int64
	VideoURI        string
	Title           string
	ThumbnailURI    string
	DurationSeconds int64
	ChannelID       string
	Status          MetaStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProgressEvent is one append-only row in a recipe's progress log.
type ProgressEvent struct {
	ID        int64
	RecipeID  int64
	Step      ProgressStep
	Detail    ProgressDetail
	State     ProgressState
	CreatedAt time.Time
}

// Artifact locates the processed media produced by verification and
// consumed by the content generators.
type Artifact struct {
	StorageURI string
	MediaType  string
}

// CaptionSegment is one time-aligned transcript segment.
type CaptionSegment struct {
	ID        int64
	RecipeID  int64
	StartSec  float64
	EndSec    float64
	Text      string
	CreatedAt time.Time
}

// BriefingLine is one ordered line of the recipe briefing.
type BriefingLine struct {
	ID        int64
	RecipeID  int64
	Position  int
	Content   string
	CreatedAt time.Time
}

// Detail is the structured summary generated for a recipe.
type Detail struct {
	ID              int64
	RecipeID        int64
	Description     string
	Servings        int
	CookTimeMinutes int
	CreatedAt       time.Time
}

// Ingredient is one ingredient with its free-form amount.
type Ingredient struct {
	ID        int64
	RecipeID  int64
	Name      string
	Amount    string
	CreatedAt time.Time
}

// Tag is one normalized classification tag.
type Tag struct {
	ID        int64
	RecipeID  int64
	Name      string
	CreatedAt time.Time
}

// Step is one ordered cooking step. Descriptions carries the step's
// sentences in presentation order.
type Step struct {
	ID           int64
	RecipeID     int64
	Position     int
	Subtitle     string
	StartSec     float64
	Descriptions []string
	CreatedAt    time.Time
}
