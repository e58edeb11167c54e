package services

import (
	"errors"
	"fmt"
	"strings"

	"ladle/internal/recipe"
)

var (
	// ErrValidation marks malformed input rejected synchronously at admission.
	ErrValidation = errors.New("validation error")
	// ErrDuplicateInProgress marks a submission whose URL is already locked.
	ErrDuplicateInProgress = errors.New("creation already in progress")
	// ErrAlreadyExists marks a submission whose recipe already completed.
	ErrAlreadyExists = errors.New("recipe already exists")
	// ErrBlocked marks a submission whose prior recipe was rejected by policy.
	ErrBlocked = errors.New("recipe blocked")
	// ErrNotFound marks a lookup of a recipe that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotCookVideo marks the classifier's content-policy rejection.
	ErrNotCookVideo = errors.New("not a cooking video")
	// ErrMetadataIncomplete marks platform metadata missing required fields.
	ErrMetadataIncomplete = errors.New("metadata incomplete")
	// ErrExternalService marks any other upstream failure.
	ErrExternalService = errors.New("external service error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later status classification. The marker should
// be one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalService
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// TerminalStatus maps a pipeline-stage error to the terminal recipe status
// the orchestrator should persist after the stage fails. A content-policy
// rejection is a BLOCKED outcome; everything else is an infrastructure
// failure and resolves to FAILED.
func TerminalStatus(err error) recipe.Status {
	if errors.Is(err, ErrNotCookVideo) {
		return recipe.StatusBlocked
	}
	return recipe.StatusFailed
}

// Admission reports whether the error belongs to the synchronous admission
// taxonomy surfaced directly to submit callers.
func Admission(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrDuplicateInProgress) ||
		errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrBlocked)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
