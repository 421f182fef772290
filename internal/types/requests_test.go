//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCompareRequest_Validation(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		request CompareRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid request",
			request: CompareRequest{
				JobText: "We need a Go engineer",
				Resumes: []CompareResume{{Name: "a.pdf", Text: "Go engineer"}},
			},
		},
		{
			name: "valid request with stored resume id",
			request: CompareRequest{
				JobText: "We need a Go engineer",
				Resumes: []CompareResume{{ID: &id, Name: "a.pdf", Text: "Go engineer"}},
			},
		},
		{
			name:    "missing job text",
			request: CompareRequest{Resumes: []CompareResume{{Name: "a.pdf", Text: "x"}}},
			wantErr: true,
			errMsg:  "JobText",
		},
		{
			name:    "no resumes",
			request: CompareRequest{JobText: "jd"},
			wantErr: true,
			errMsg:  "Resumes",
		},
		{
			name: "resume without text",
			request: CompareRequest{
				JobText: "jd",
				Resumes: []CompareResume{{Name: "a.pdf"}},
			},
			wantErr: true,
			errMsg:  "Text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateResumeRequest_Validation(t *testing.T) {
	valid := CreateResumeRequest{Name: "resume.pdf", Text: strings.Repeat("a", 60)}
	assert.NoError(t, valid.Validate())

	short := CreateResumeRequest{Name: "resume.pdf", Text: "too short"}
	err := short.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "min")

	unnamed := CreateResumeRequest{Text: strings.Repeat("a", 60)}
	assert.Error(t, unnamed.Validate())
}

func TestScoreRequest_AllowsEmptyTexts(t *testing.T) {
	req := ScoreRequest{}
	assert.NoError(t, req.Validate(), "empty texts are handled by the scorer, not rejected")
}

func TestScrapeRequest_Validation(t *testing.T) {
	assert.NoError(t, (&ScrapeRequest{URL: "https://boards.greenhouse.io/acme/jobs/1"}).Validate())
	assert.Error(t, (&ScrapeRequest{URL: "not a url"}).Validate())
	assert.Error(t, (&ScrapeRequest{URL: "ftp://host/x"}).Validate())
	assert.Error(t, (&ScrapeRequest{}).Validate())
}

func TestJDProfile_TermsAndContains(t *testing.T) {
	profile := JDProfile{Keywords: []KeywordCandidate{
		{Term: "kubernetes", Weight: 7},
		{Term: "react", Weight: 6},
	}}

	assert.Equal(t, []string{"kubernetes", "react"}, profile.Terms())
	assert.True(t, profile.Contains("react"))
	assert.False(t, profile.Contains("java"))
}
