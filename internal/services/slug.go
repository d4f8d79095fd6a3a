package services

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// makeSlug builds a URL-safe slug from a title with a short random suffix so
// repeated titles never collide on the unique index.
func makeSlug(title string) string {
	base := slugify(title)
	if base == "" {
		base = "untitled"
	}
	return base + "-" + uuid.New().String()[:8]
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
