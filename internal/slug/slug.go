// Package slug derives unique, URL-safe identifiers from titles.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	invalidChars  = regexp.MustCompile(`[^a-z0-9\s-]`)
	separatorRuns = regexp.MustCompile(`[\s-]+`)
)

// Make normalizes a title into a slug: lowercase, characters outside
// [a-z0-9\s-] stripped, whitespace and hyphen runs collapsed to a single
// hyphen, leading and trailing hyphens trimmed. Titles that normalize to
// nothing yield "untitled".
func Make(title string) string {
	s := strings.ToLower(title)
	s = invalidChars.ReplaceAllString(s, "")
	s = separatorRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}

// Unique finds the first untaken candidate derived from base: base itself,
// then base-1, base-2, and so on. The probe reports whether a slug is
// already assigned.
//
// The check-then-assign sequence is not atomic against concurrent
// creation; the store's unique index rejects the later of two racing
// writes, which callers surface as a conflict.
func Unique(base string, taken func(string) (bool, error)) (string, error) {
	candidate := base
	for counter := 1; ; counter++ {
		exists, err := taken(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to probe slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
