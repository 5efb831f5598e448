// Package idgen turns artifact titles into directory slugs and computes the
// next available artifact ID within a parent.
package idgen

import (
	"regexp"
	"strings"
	"unicode"
)

// maxSlugLength caps slugs so artifact directory names stay readable.
const maxSlugLength = 46

// stopWords are common words removed from titles during slug generation.
// They carry no meaning in a directory name.
var stopWords = map[string]bool{
	// Articles
	"a": true, "an": true, "the": true,
	// Prepositions
	"in": true, "on": true, "at": true, "to": true, "for": true,
	"of": true, "with": true, "by": true, "from": true, "as": true,
	// Conjunctions
	"and": true, "or": true, "but": true, "nor": true,
	// Common verbs
	"is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true,
	// Other filler
	"this": true, "that": true, "these": true, "those": true,
	"it": true, "its": true,
}

var (
	nonAlphanumericRegex    = regexp.MustCompile(`[^a-z0-9]+`)
	multipleUnderscoreRegex = regexp.MustCompile(`_+`)
)

// Slug converts a title into a lowercase, underscore-separated slug with
// stop words removed, suitable for an artifact directory name.
func Slug(title string) string {
	if strings.TrimSpace(title) == "" {
		return "untitled"
	}

	slug := strings.ToLower(title)
	slug = nonAlphanumericRegex.ReplaceAllString(slug, " ")

	words := strings.Fields(slug)
	filtered := make([]string, 0, len(words))
	for _, word := range words {
		if !stopWords[word] {
			filtered = append(filtered, word)
		}
	}

	// If every word was a stop word, keep the first original word.
	if len(filtered) == 0 && len(words) > 0 {
		filtered = []string{words[0]}
	}

	slug = strings.Join(filtered, "_")

	if len(slug) > 0 && !unicode.IsLetter(rune(slug[0])) {
		slug = "n" + slug
	}

	if len(slug) > maxSlugLength {
		truncated := slug[:maxSlugLength]
		// Prefer a word boundary when one lands in the back half.
		if lastUnderscore := strings.LastIndex(truncated, "_"); lastUnderscore > maxSlugLength/2 {
			truncated = truncated[:lastUnderscore]
		}
		slug = truncated
	}

	slug = strings.Trim(slug, "_")
	slug = multipleUnderscoreRegex.ReplaceAllString(slug, "_")

	if slug == "" {
		return "untitled"
	}
	return slug
}
