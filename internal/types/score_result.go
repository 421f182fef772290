package types

// MaxMissingTerms caps the number of missing keywords reported per comparison
const MaxMissingTerms = 5

// CoverageResult is the weighted overlap between JD keywords and a résumé
type CoverageResult struct {
	Score   int      `json:"score"`
	Matches []string `json:"matches"`
	Missing []string `json:"missing"`
}

// KeywordData is the keyword section of a ScoreResult
type KeywordData struct {
	Matches []string `json:"matches"`
	Missing []string `json:"missing"`
	Score   int      `json:"score"`
}

// ScoreResult is the output of scoring one résumé against one job description.
// JSON field names follow the camelCase shape consumed by the extension popup.
type ScoreResult struct {
	Total       int             `json:"total"`
	Field       string          `json:"field,omitempty"`
	KeywordData KeywordData     `json:"keywordData"`
	Suggestions []string        `json:"suggestions"`
	Details     *CoverageResult `json:"details,omitempty"`
}

// AdviceSuggestion is an enriched, located piece of advice
type AdviceSuggestion struct {
	Tip      string `json:"tip"`
	Reason   string `json:"reason"`
	Location string `json:"location"`
}
