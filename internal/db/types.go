package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Resume is a stored résumé
type Resume struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ResumeSummary is a listing view of a résumé without its text
type ResumeSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Comparison is the stored score of one résumé against one JD
type Comparison struct {
	ResumeID  uuid.UUID       `json:"resume_id"`
	JDHash    string          `json:"jd_hash"`
	ATSScore  int             `json:"ats_score"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DefaultListLimit bounds ListResumes when no limit is given
const DefaultListLimit = 50
