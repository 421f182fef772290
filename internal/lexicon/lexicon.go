// Package lexicon holds the read-only vocabulary tables used by the scoring pipeline:
// the weighted skill ontology, the ordered industry markers, and the stopword set.
package lexicon

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/jonathan/resuflux/internal/schemas"
)

// GeneralField is the label used when no industry marker matches.
const GeneralField = "General"

//go:embed default.json
var defaultDocument []byte

//go:embed lexicon.schema.json
var documentSchema string

// Industry is a field label with the markers that vote for it.
type Industry struct {
	Name    string   `json:"name"`
	Markers []string `json:"markers"`
}

// Document is the on-disk representation of a lexicon.
type Document struct {
	Version    string         `json:"version,omitempty"`
	Ontology   map[string]int `json:"ontology"`
	Industries []Industry     `json:"industries"`
	Stopwords  []string       `json:"stopwords"`
}

// Lexicon is an immutable set of lookup tables. A Lexicon is safe for concurrent use.
type Lexicon struct {
	ontology   map[string]int
	industries []Industry
	stopwords  map[string]struct{}
	markers    map[string][]*regexp.Regexp
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
)

// Default returns the built-in lexicon. It panics if the embedded document is malformed,
// which can only happen from a bad build.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		lex, err := Parse(defaultDocument)
		if err != nil {
			panic(fmt.Sprintf("embedded lexicon is invalid: %v", err))
		}
		defaultLex = lex
	})
	return defaultLex
}

// Load reads a lexicon file from disk, validates it against the lexicon schema and builds it.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read lexicon file", Cause: err}
	}
	lex, err := Parse(data)
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		loadErr.Path = path
	}
	return lex, err
}

// Parse validates and builds a lexicon from raw JSON.
func Parse(data []byte) (*Lexicon, error) {
	if err := schemas.ValidateJSONString(documentSchema, string(data)); err != nil {
		return nil, &LoadError{Message: "lexicon does not match schema", Cause: err}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Message: "failed to decode lexicon", Cause: err}
	}
	return New(doc)
}

// New builds a lexicon from an in-memory document. Terms, markers and stopwords are
// lowercased so lookups can use normalized text directly.
func New(doc Document) (*Lexicon, error) {
	if len(doc.Industries) == 0 {
		return nil, &LoadError{Message: "lexicon must define at least one industry"}
	}

	lex := &Lexicon{
		ontology:   make(map[string]int, len(doc.Ontology)),
		industries: make([]Industry, 0, len(doc.Industries)),
		stopwords:  make(map[string]struct{}, len(doc.Stopwords)),
		markers:    make(map[string][]*regexp.Regexp, len(doc.Industries)),
	}

	for term, weight := range doc.Ontology {
		if weight < 1 || weight > 3 {
			return nil, &LoadError{Message: fmt.Sprintf("weight for %q must be between 1 and 3, got %d", term, weight)}
		}
		lex.ontology[strings.ToLower(term)] = weight
	}

	for _, word := range doc.Stopwords {
		lex.stopwords[strings.ToLower(word)] = struct{}{}
	}

	for _, ind := range doc.Industries {
		if ind.Name == "" || len(ind.Markers) == 0 {
			return nil, &LoadError{Message: "industry entries need a name and at least one marker"}
		}
		if _, dup := lex.markers[ind.Name]; dup {
			return nil, &LoadError{Message: fmt.Sprintf("industry %q defined twice", ind.Name)}
		}

		markers := make([]string, len(ind.Markers))
		patterns := make([]*regexp.Regexp, len(ind.Markers))
		for i, marker := range ind.Markers {
			markers[i] = strings.ToLower(marker)
			patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(markers[i]) + `\b`)
		}
		lex.industries = append(lex.industries, Industry{Name: ind.Name, Markers: markers})
		lex.markers[ind.Name] = patterns
	}

	return lex, nil
}

// Weight returns the ontology weight of term, or 0 if the term is unknown.
func (l *Lexicon) Weight(term string) int {
	return l.ontology[term]
}

// IsKnown reports whether term is an ontology entry.
func (l *Lexicon) IsKnown(term string) bool {
	_, ok := l.ontology[term]
	return ok
}

// IsStopword reports whether word is excluded from keyword consideration.
func (l *Lexicon) IsStopword(word string) bool {
	_, ok := l.stopwords[word]
	return ok
}

// Industries returns a copy of the industries in detection order.
func (l *Lexicon) Industries() []Industry {
	out := make([]Industry, len(l.industries))
	for i, ind := range l.industries {
		out[i] = Industry{Name: ind.Name, Markers: append([]string(nil), ind.Markers...)}
	}
	return out
}

// MarkerPatterns returns the compiled whole-word patterns for an industry.
// The returned slice must not be modified.
func (l *Lexicon) MarkerPatterns(industry string) []*regexp.Regexp {
	return l.markers[industry]
}

// Size returns the number of ontology terms.
func (l *Lexicon) Size() int {
	return len(l.ontology)
}
