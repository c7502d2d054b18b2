package literature

import (
	"regexp"
	"strings"
)

// Paper is one candidate publication returned by a provider, before ranking.
type Paper struct {
	Title     string
	Authors   []string
	Abstract  string
	Year      int
	Venue     string
	URL       string
	Citations int
	Source    string
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeTitle reduces a title to its deduplication key: lowercase
// alphanumerics joined by single spaces. The same paper surfaced by two
// providers with differing punctuation or casing collapses to one key.
func NormalizeTitle(title string) string {
	t := strings.ToLower(title)
	t = nonAlnumRe.ReplaceAllString(t, " ")
	return strings.Join(strings.Fields(t), " ")
}
