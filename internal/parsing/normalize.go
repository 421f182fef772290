// Package parsing extracts weighted keywords from job description text.
package parsing

import (
	"regexp"
	"strings"
)

const minTokenLength = 3

var (
	// Hyphens survive token normalization so terms like "front-end" stay whole.
	tokenCleaner  = regexp.MustCompile(`[^\w\s-]`)
	phraseCleaner = regexp.MustCompile(`[^\w\s]`)
)

// Normalize lowercases text and replaces every character that is not a word character,
// whitespace or a hyphen with a space.
func Normalize(text string) string {
	return tokenCleaner.ReplaceAllString(strings.ToLower(text), " ")
}

// Tokenize splits normalized text on whitespace and drops tokens shorter than three characters.
func Tokenize(normalized string) []string {
	return longWords(strings.Fields(normalized))
}

// phraseWords returns the words used for bigram extraction. Unlike Normalize, hyphens
// are treated as separators here.
func phraseWords(text string) []string {
	clean := phraseCleaner.ReplaceAllString(strings.ToLower(text), " ")
	return longWords(strings.Fields(clean))
}

func longWords(words []string) []string {
	out := words[:0]
	for _, w := range words {
		if len(w) >= minTokenLength {
			out = append(out, w)
		}
	}
	return out
}
