package advice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resuflux/internal/types"
)

func TestGenerateSuggestions(t *testing.T) {
	tests := []struct {
		name     string
		coverage types.CoverageResult
		resume   string
		field    string
		expected []string
	}{
		{
			name:     "technology without github and one gap",
			coverage: types.CoverageResult{Score: 63, Missing: []string{"kubernetes"}},
			resume:   "i have 5 years of react and aws experience.",
			field:    "Technology",
			expected: []string{TechnologyTip, "Consider adding: Kubernetes"},
		},
		{
			name:     "low coverage comes first",
			coverage: types.CoverageResult{Score: 20, Missing: []string{"figma", "user research"}},
			resume:   "my portfolio",
			field:    "Design",
			expected: []string{LowRelevanceTip, "Consider adding: Figma, User research"},
		},
		{
			name:     "design without portfolio",
			coverage: types.CoverageResult{Score: 100},
			resume:   "figma",
			field:    "Design",
			expected: []string{DesignTip},
		},
		{
			name:     "medical without license",
			coverage: types.CoverageResult{Score: 70},
			resume:   "registered nurse",
			field:    "Medical",
			expected: []string{MedicalTip},
		},
		{
			name:     "medical licensed counts as license",
			coverage: types.CoverageResult{Score: 70},
			resume:   "licensed nurse",
			field:    "Medical",
			expected: []string{},
		},
		{
			name:     "general field has no field tip",
			coverage: types.CoverageResult{Score: 50},
			resume:   "anything",
			field:    "General",
			expected: []string{},
		},
		{
			name:     "score just below threshold is low relevance",
			coverage: types.CoverageResult{Score: 49},
			resume:   "github",
			field:    "Technology",
			expected: []string{LowRelevanceTip},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cov := tt.coverage
			got := GenerateSuggestions(&cov, &types.ResumeProfile{NormalizedText: tt.resume}, tt.field)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Kubernetes", capitalize("kubernetes"))
	assert.Equal(t, "Machine learning", capitalize("machine learning"))
	assert.Equal(t, "Éclair", capitalize("éclair"))
	assert.Equal(t, "", capitalize(""))
}
