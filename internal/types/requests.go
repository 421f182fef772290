package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// validate is safe for concurrent use and caches struct metadata
var validate = validator.New()

// ScoreRequest is the body of a score or explain request.
// Empty texts are allowed; the scorer answers them with the empty result.
type ScoreRequest struct {
	ResumeText string `json:"resume_text" validate:"max=200000"`
	JobText    string `json:"job_text" validate:"max=200000"`
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	return validate.Struct(r)
}

// CompareResume is one résumé slot in a comparison request
type CompareResume struct {
	ID   *uuid.UUID `json:"id,omitempty"`
	Name string     `json:"name" validate:"required,max=255"`
	Text string     `json:"text" validate:"required,max=200000"`
}

// CompareRequest scores several résumés against one job description
type CompareRequest struct {
	JobText string          `json:"job_text" validate:"required,max=200000"`
	Resumes []CompareResume `json:"resumes" validate:"required,min=1,dive"`
}

// Validate validates the CompareRequest using the validator.
func (r *CompareRequest) Validate() error {
	return validate.Struct(r)
}

// CreateResumeRequest stores a résumé's extracted text
type CreateResumeRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Text string `json:"text" validate:"required,min=50,max=200000"`
}

// Validate validates the CreateResumeRequest using the validator.
func (r *CreateResumeRequest) Validate() error {
	return validate.Struct(r)
}

// ComparisonRequest scores a stored résumé against a job description
type ComparisonRequest struct {
	JobText string `json:"job_text" validate:"required,max=200000"`
}

// Validate validates the ComparisonRequest using the validator.
func (r *ComparisonRequest) Validate() error {
	return validate.Struct(r)
}

// ScrapeRequest asks the server to fetch a job posting page
type ScrapeRequest struct {
	URL        string `json:"url" validate:"required,http_url"`
	UseBrowser bool   `json:"use_browser,omitempty"`
}

// Validate validates the ScrapeRequest using the validator.
func (r *ScrapeRequest) Validate() error {
	return validate.Struct(r)
}

// EmailRequest carries the values substituted into the application email template.
// When TopSkill is empty and both texts are given, the top skill is taken from their score.
type EmailRequest struct {
	Role          string `json:"role,omitempty" validate:"max=255"`
	Company       string `json:"company,omitempty" validate:"max=255"`
	CandidateName string `json:"candidate_name,omitempty" validate:"max=255"`
	TopSkill      string `json:"top_skill,omitempty" validate:"max=255"`
	ResumeText    string `json:"resume_text,omitempty" validate:"max=200000"`
	JobText       string `json:"job_text,omitempty" validate:"max=200000"`
}

// Validate validates the EmailRequest using the validator.
func (r *EmailRequest) Validate() error {
	return validate.Struct(r)
}
