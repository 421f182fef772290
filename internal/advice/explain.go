package advice

import (
	"fmt"
	"strings"

	"github.com/jonathan/resuflux/internal/types"
)

const gapClusterSize = 3

// NoGapsMessage is returned by ExplainSkillGaps when nothing is missing.
const NoGapsMessage = "No critical skill gaps identified. Your resume is perfectly aligned with the JD keywords."

// ExplainScore describes the total score in one of four bands.
func ExplainScore(result *types.ScoreResult) string {
	switch {
	case result.Total >= 85:
		return fmt.Sprintf("Outstanding match. ResuFlux detects that you have over %d key attributes required for this %s role. You are in the top tier of candidates.",
			len(result.KeywordData.Matches), result.Field)
	case result.Total >= 70:
		return fmt.Sprintf("Strong alignment. You are a highly qualified candidate for this %s position. A few targeted tweaks to your skills section could push this to 90+.",
			result.Field)
	case result.Total >= 40:
		return "Fair relevance. You have the foundational skills, but your resume uses different terminology than the job description. Semantic alignment is missing."
	default:
		return fmt.Sprintf("Weak match. ResuFlux identifies a major mismatch between your current resume and the requirements for this %s role. A significant rewrite may be needed to pass automated filters.",
			result.Field)
	}
}

// ExplainSkillGaps names up to three missing keywords as the candidate's gap cluster.
func ExplainSkillGaps(result *types.ScoreResult) string {
	missing := result.KeywordData.Missing
	if len(missing) == 0 {
		return NoGapsMessage
	}
	if len(missing) > gapClusterSize {
		missing = missing[:gapClusterSize]
	}
	return fmt.Sprintf("ResuFlux's intelligence engine flagged a gap in your \"%s\" portfolio. Specifically, the absence of keywords like **%s** suggests you might be focusing too much on execution and not enough on the strategic requirements of this role.",
		result.Field, strings.Join(missing, ", "))
}
