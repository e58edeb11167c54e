// Package videourl canonicalizes submitted video URLs so that every
// representation of the same video collides on one normalized form.
package videourl

import (
	"fmt"
	"net/url"
	"strings"

	"ladle/internal/services"
)

const (
	canonicalScheme = "https"
	canonicalHost   = "www.youtube.com"
	watchPath       = "/watch"
	videoParam      = "v"
	shortLinkHost   = "youtu.be"
)

var watchHosts = map[string]struct{}{
	"youtube.com":   {},
	"www.youtube.com": {},
	"m.youtube.com": {},
}

// Normalized is the canonical form of a submitted video URL.
type Normalized struct {
	URL     string
	VideoID string
}

// Normalize parses a submitted URL, validates it references a supported
// video form, and returns the canonical watch URL plus the video id.
// Short links carry the id as the first path segment; watch links carry
// it in the "v" query parameter.
func Normalize(raw string) (Normalized, error) {
	var empty Normalized
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return empty, services.Wrap(services.ErrValidation, "admission", "normalize url", "url required", nil)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return empty, services.Wrap(services.ErrValidation, "admission", "normalize url", "malformed url", err)
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case host == shortLinkHost:
		id := firstPathSegment(parsed.EscapedPath())
		if id == "" {
			return empty, services.Wrap(services.ErrValidation, "admission", "normalize url", "short link missing video id path segment", nil)
		}
		return canonical(id), nil
	case isWatchHost(host):
		if parsed.EscapedPath() != watchPath {
			return empty, services.Wrap(services.ErrValidation, "admission", "normalize url",
				fmt.Sprintf("unexpected path %q", parsed.EscapedPath()), nil)
		}
		id := strings.TrimSpace(parsed.Query().Get(videoParam))
		if id == "" {
			return empty, services.Wrap(services.ErrValidation, "admission", "normalize url",
				fmt.Sprintf("missing %q query parameter", videoParam), nil)
		}
		return canonical(id), nil
	default:
		return empty, services.Wrap(services.ErrValidation, "admission", "normalize url",
			fmt.Sprintf("unsupported host %q", host), nil)
	}
}

func isWatchHost(host string) bool {
	_, ok := watchHosts[host]
	return ok
}

func firstPathSegment(path string) string {
	for _, segment := range strings.Split(path, "/") {
		if segment = strings.TrimSpace(segment); segment != "" {
			return segment
		}
	}
	return ""
}

func canonical(videoID string) Normalized {
	canonicalURL := url.URL{
		Scheme:   canonicalScheme,
		Host:     canonicalHost,
		Path:     watchPath,
		RawQuery: url.Values{videoParam: []string{videoID}}.Encode(),
	}
	return Normalized{URL: canonicalURL.String(), VideoID: videoID}
}
