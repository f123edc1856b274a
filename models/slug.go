package models

import (
	"regexp"
	"strings"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces     = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL slug from a title:
// "AI Chat Dashboard!" becomes "ai-chat-dashboard".
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugDisallowed.ReplaceAllString(s, "")
	return slugSpaces.ReplaceAllString(strings.TrimSpace(s), "-")
}
