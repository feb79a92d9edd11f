package model

import "strings"

// StaticURLPrefix is where the frontend serves uploaded assets from.
const StaticURLPrefix = "/static"

// PublicImageURL normalizes a stored image reference into a URL the frontend
// can use directly. Absolute URLs and data URIs pass through unchanged;
// everything else is rebased under the static prefix. Historical rows mix
// "uploads/x.jpg", "/uploads/x.jpg", "static/x.jpg" and backslash separators,
// so all of those spellings are accepted. An empty input stays empty.
func PublicImageURL(raw string) string {
	s := strings.ReplaceAll(strings.TrimSpace(raw), "\\", "/")
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "data:") {
		return s
	}
	if strings.HasPrefix(s, StaticURLPrefix+"/") {
		return s
	}
	if strings.HasPrefix(s, "static/") {
		return StaticURLPrefix + "/" + strings.TrimPrefix(s, "static/")
	}
	if strings.HasPrefix(s, "/uploads/") {
		return StaticURLPrefix + "/uploads/" + strings.TrimPrefix(s, "/uploads/")
	}
	if strings.HasPrefix(s, "uploads/") {
		return StaticURLPrefix + "/" + s
	}
	return StaticURLPrefix + "/" + strings.TrimLeft(s, "/")
}
