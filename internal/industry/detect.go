// Package industry infers the professional field a job description targets.
package industry

import "github.com/jonathan/resuflux/internal/lexicon"

// Detect returns the industry whose markers occur most often in jdText as whole words,
// case-insensitively. Industries are visited in lexicon order and only a strictly higher
// count replaces the current leader, so earlier industries win ties. Text with no marker
// hits is labelled lexicon.GeneralField.
func Detect(lex *lexicon.Lexicon, jdText string) string {
	best := lexicon.GeneralField
	bestCount := 0

	for _, ind := range lex.Industries() {
		count := 0
		for _, pattern := range lex.MarkerPatterns(ind.Name) {
			count += len(pattern.FindAllStringIndex(jdText, -1))
		}
		if count > bestCount {
			best = ind.Name
			bestCount = count
		}
	}

	return best
}

// Counts returns the marker hit count for every industry, keyed by name.
func Counts(lex *lexicon.Lexicon, jdText string) map[string]int {
	counts := make(map[string]int)
	for _, ind := range lex.Industries() {
		for _, pattern := range lex.MarkerPatterns(ind.Name) {
			counts[ind.Name] += len(pattern.FindAllStringIndex(jdText, -1))
		}
	}
	return counts
}
