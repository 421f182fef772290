package types

// ResumeProfile holds the lowercased résumé text and its structural completeness score.
// StructureScore is not clamped; the final total absorbs out-of-range values.
type ResumeProfile struct {
	NormalizedText string `json:"normalized_text"`
	StructureScore int    `json:"structure_score"`
}
