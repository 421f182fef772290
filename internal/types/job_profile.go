// Package types provides type definitions for structured data used throughout the resuflux system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MaxKeywords is the number of JD keywords kept after ranking
const MaxKeywords = 20

// KeywordCandidate is a term extracted from a job description with its importance
type KeywordCandidate struct {
	Term   string `json:"term"`
	Weight int    `json:"weight"`
}

// JDProfile is the ranked keyword model of a single job description.
// Keywords are ordered by weight (descending) and capped at MaxKeywords.
type JDProfile struct {
	Keywords       []KeywordCandidate `json:"keywords"`
	NormalizedText string             `json:"normalized_text"`
}

// Terms returns the keyword terms in ranked order
func (p *JDProfile) Terms() []string {
	terms := make([]string, 0, len(p.Keywords))
	for _, k := range p.Keywords {
		terms = append(terms, k.Term)
	}
	return terms
}

// Contains reports whether term is one of the profile's keywords
func (p *JDProfile) Contains(term string) bool {
	for _, k := range p.Keywords {
		if k.Term == term {
			return true
		}
	}
	return false
}
