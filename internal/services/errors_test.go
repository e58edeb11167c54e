package services_test

import (
	"errors"
	"fmt"
	"testing"

	"ladle/internal/recipe"
	"ladle/internal/services"
)

func TestWrapPreservesMarker(t *testing.T) {
	cause := errors.New("connection refused")
	err := services.Wrap(services.ErrExternalService, "verification", "verify", "classifier unavailable", cause)
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected marker to survive wrapping, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to survive wrapping, got %v", err)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "caption", "generate", "boom", nil)
	if !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected nil marker to default to external service, got %v", err)
	}
}

func TestTerminalStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want recipe.Status
	}{
		{"policy rejection", services.Wrap(services.ErrNotCookVideo, "verification", "verify", "rejected", nil), recipe.StatusBlocked},
		{"external failure", services.Wrap(services.ErrExternalService, "caption", "generate", "http 500", nil), recipe.StatusFailed},
		{"unclassified", fmt.Errorf("surprise"), recipe.StatusFailed},
	}
	for _, tc := range cases {
		if got := services.TerminalStatus(tc.err); got != tc.want {
			t.Fatalf("%s: TerminalStatus = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestAdmission(t *testing.T) {
	for _, err := range []error{
		services.ErrValidation,
		services.ErrDuplicateInProgress,
		services.ErrAlreadyExists,
		services.ErrBlocked,
	} {
		if !services.Admission(fmt.Errorf("wrapped: %w", err)) {
			t.Fatalf("expected %v to classify as admission error", err)
		}
	}
	if services.Admission(services.ErrExternalService) {
		t.Fatal("external service errors are not admission errors")
	}
}
