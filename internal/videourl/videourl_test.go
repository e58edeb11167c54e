package videourl_test

import (
	"errors"
	"testing"

	"ladle/internal/services"
	"ladle/internal/videourl"
)

func TestNormalizeCanonicalForms(t *testing.T) {
	cases := []struct {
		name  string
		input string
		url   string
		id    string
	}{
		{"watch link", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare host watch link", "https://youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"mobile watch link", "https://m.youtube.com/watch?v=dQw4w9WgXcQ&t=42", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?si=share", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := videourl.Normalize(tc.input)
			if err != nil {
				t.Fatalf("Normalize(%q) failed: %v", tc.input, err)
			}
			if got.URL != tc.url {
				t.Fatalf("Normalize(%q).URL = %q, want %q", tc.input, got.URL, tc.url)
			}
			if got.VideoID != tc.id {
				t.Fatalf("Normalize(%q).VideoID = %q, want %q", tc.input, got.VideoID, tc.id)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	first, err := videourl.Normalize("https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	second, err := videourl.Normalize(first.URL)
	if err != nil {
		t.Fatalf("Normalize of normalized url failed: %v", err)
	}
	if second != first {
		t.Fatalf("normalization not idempotent: %#v vs %#v", first, second)
	}
}

func TestNormalizeRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unsupported host", "https://vimeo.com/watch?v=abc"},
		{"wrong path", "https://www.youtube.com/playlist?list=abc"},
		{"missing query parameter", "https://www.youtube.com/watch"},
		{"empty query parameter", "https://www.youtube.com/watch?v="},
		{"short link without id", "https://youtu.be/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := videourl.Normalize(tc.input); !errors.Is(err, services.ErrValidation) {
				t.Fatalf("Normalize(%q) = %v, want validation error", tc.input, err)
			}
		})
	}
}
