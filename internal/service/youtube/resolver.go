package youtube

import (
	"net/url"
	"strings"
)

const (
	channelIDPrefix = "UC"
	channelIDLength = 24
)

// IsChannelID reports whether token already has the canonical channel ID
// shape, in which case no lookup is needed.
func IsChannelID(token string) bool {
	return strings.HasPrefix(token, channelIDPrefix) && len(token) == channelIDLength
}

// extractCandidate pulls a channel ID or handle candidate out of a user
// supplied string. Supported URL shapes: /channel/ID, /@handle, /c/name and
// /user/name; anything without a path separator is treated as a bare token.
// Returns "" when the input looks like a URL but matches none of the shapes.
func extractCandidate(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return trimmed
	}

	// Scheme-less inputs like "youtube.com/@handle" parse entirely into Path;
	// strip the host-looking leading segment so the shape rules line up.
	path := u.Path
	if u.Host == "" && strings.Contains(path, "/") {
		segs := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)
		if len(segs) == 2 && strings.Contains(segs[0], ".") {
			path = "/" + segs[1]
		}
	}

	if idx := strings.Index(path, "/channel/"); idx >= 0 {
		return firstSegment(path[idx+len("/channel/"):])
	}

	if idx := strings.Index(path, "/@"); idx >= 0 {
		return firstSegment(path[idx+len("/@"):])
	}

	if strings.Contains(path, "/c/") || strings.Contains(path, "/user/") {
		segments := splitPath(path)
		if len(segments) >= 2 {
			return segments[1]
		}
		return ""
	}

	if !strings.Contains(trimmed, "/") {
		return trimmed
	}

	return ""
}

// firstSegment cuts s at the first path separator.
func firstSegment(s string) string {
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// splitPath returns the non-empty segments of a URL path.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
