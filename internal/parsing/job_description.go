package parsing

import (
	"sort"
	"strings"

	"github.com/jonathan/resuflux/internal/lexicon"
	"github.com/jonathan/resuflux/internal/types"
)

const (
	baseImportance   = 1
	knownTermBoost   = 5
	phraseBoost      = 2
	frequentBoost    = 1
	minPhraseFreq    = 2
	minWordFreq      = 3
	frequentFreq     = 2 // boost applies above this
	veryFrequentFreq = 5 // second boost applies above this
)

// termCounts is a frequency table that remembers discovery order.
type termCounts struct {
	order []string
	freq  map[string]int
}

func newTermCounts() *termCounts {
	return &termCounts{freq: make(map[string]int)}
}

func (c *termCounts) add(term string) {
	if _, seen := c.freq[term]; !seen {
		c.order = append(c.order, term)
	}
	c.freq[term]++
}

// AnalyzeJobDescription extracts the top weighted keywords from a job description.
// Candidate phrases are counted before single words, and that discovery order breaks
// ties between equally important keywords. The field argument is accepted so callers
// can pass the detected industry; the extraction itself does not depend on it.
func AnalyzeJobDescription(lex *lexicon.Lexicon, jdText string, field string) *types.JDProfile {
	normalized := Normalize(jdText)
	counts := newTermCounts()

	for _, phrase := range ExtractPhrases(lex, jdText) {
		counts.add(phrase)
	}
	for _, token := range Tokenize(normalized) {
		if !lex.IsStopword(token) {
			counts.add(token)
		}
	}

	keywords := make([]types.KeywordCandidate, 0, len(counts.order))
	for _, term := range counts.order {
		freq := counts.freq[term]
		if !keep(lex, term, freq) {
			continue
		}
		keywords = append(keywords, types.KeywordCandidate{
			Term:   term,
			Weight: Importance(lex, term, freq),
		})
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Weight > keywords[j].Weight
	})
	if len(keywords) > types.MaxKeywords {
		keywords = keywords[:types.MaxKeywords]
	}

	return &types.JDProfile{
		Keywords:       keywords,
		NormalizedText: normalized,
	}
}

// Importance scores a candidate term seen freq times. Known lexicon terms always outrank
// unknown terms of the same frequency.
func Importance(lex *lexicon.Lexicon, term string, freq int) int {
	importance := baseImportance
	switch {
	case lex.IsKnown(term):
		importance += knownTermBoost
	case isPhrase(term):
		importance += phraseBoost
	}

	if freq > frequentFreq {
		importance += frequentBoost
	}
	if freq > veryFrequentFreq {
		importance += frequentBoost
	}
	return importance
}

func keep(lex *lexicon.Lexicon, term string, freq int) bool {
	if lex.IsStopword(term) {
		return false
	}
	if lex.IsKnown(term) {
		return true
	}
	if isPhrase(term) {
		return freq >= minPhraseFreq
	}
	return freq >= minWordFreq
}

// ExtractPhrases returns adjacent word pairs that look like skill phrases. A pair is
// rejected when either word is a stopword, or when the first word ends in "ing" and the
// pair is not a lexicon term.
func ExtractPhrases(lex *lexicon.Lexicon, text string) []string {
	words := phraseWords(text)
	if len(words) < 2 {
		return nil
	}

	phrases := make([]string, 0, len(words)-1)
	for i := 0; i < len(words)-1; i++ {
		first, second := words[i], words[i+1]
		if lex.IsStopword(first) || lex.IsStopword(second) {
			continue
		}

		phrase := first + " " + second
		if strings.HasSuffix(first, "ing") && !lex.IsKnown(phrase) {
			continue
		}
		phrases = append(phrases, phrase)
	}
	return phrases
}

func isPhrase(term string) bool {
	return strings.Contains(term, " ")
}
