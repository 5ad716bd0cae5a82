package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	pdfSuffix   = regexp.MustCompile(`(?i)\.pdf$`)
	nonSlugRuns = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify turns a title into a lowercase hyphenated id. Empty input slugs
// to "feature" so every entry gets a usable id.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = pdfSuffix.ReplaceAllString(s, "")
	s = nonSlugRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "feature"
	}
	return s
}

// UniqueID slugifies a title and appends a numeric suffix (starting at 2)
// until the id is free of collisions with used.
func UniqueID(title string, used map[string]bool) string {
	slug := Slugify(title)
	id := slug
	for n := 2; used[id]; n++ {
		id = fmt.Sprintf("%s-%d", slug, n)
	}
	return id
}
