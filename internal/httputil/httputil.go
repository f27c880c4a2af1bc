// Package httputil provides small HTTP-related helpers shared by the openapi
// and resolver packages.
package httputil

import "strings"

// IsURL reports whether path is an http or https URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// FormatFromContentType maps a Content-Type header value to a document
// format extension ("json" or "yaml"). It returns "" when the header gives
// no usable signal, in which case callers fall back to the URL suffix.
func FormatFromContentType(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "yaml"), strings.Contains(ct, "yml"):
		return "yaml"
	case strings.Contains(ct, "json"):
		return "json"
	default:
		return ""
	}
}

// FormatFromPath returns the lowercased extension of a path or URL without
// the leading dot, e.g. "json" for "/specs/petstore.json". A path with no
// dot returns "".
func FormatFromPath(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 || idx == len(path)-1 {
		return ""
	}
	return strings.ToLower(path[idx+1:])
}
