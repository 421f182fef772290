package email

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resuflux/internal/types"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name        string
		data        Data
		wantSubject string
		wantInBody  []string
	}{
		{
			name:        "all values provided",
			data:        Data{Role: "Backend Engineer", Company: "Acme", CandidateName: "Sam Lee", TopSkill: "Go"},
			wantSubject: "Application for Backend Engineer - Sam Lee",
			wantInBody:  []string{"the Backend Engineer position at Acme.", "background in Go,", "Best regards,\nSam Lee"},
		},
		{
			name:        "empty values use fallbacks",
			data:        Data{},
			wantSubject: "Application for this position - Candidate",
			wantInBody:  []string{"the this position position at your company.", "background in relevant skills,"},
		},
		{
			name:        "whitespace counts as empty",
			data:        Data{Role: "  ", Company: "Acme"},
			wantSubject: "Application for this position - Candidate",
			wantInBody:  []string{"at Acme."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(DefaultTemplate(), tt.data)
			assert.Equal(t, tt.wantSubject, got.Subject)
			for _, want := range tt.wantInBody {
				assert.Contains(t, got.Body, want)
			}
			assert.NotContains(t, got.Body, "[")
		})
	}
}

func TestRender_ReplacesEveryOccurrence(t *testing.T) {
	tpl := Template{Subject: "[Role]/[Role]", Body: "[Company] [Company] [Candidate Name]"}
	got := Render(tpl, Data{Role: "Dev", Company: "Acme", CandidateName: "Ana"})

	assert.Equal(t, "Dev/Dev", got.Subject)
	assert.Equal(t, "Acme Acme Ana", got.Body)
}

func TestRender_ValuesAreNotRescanned(t *testing.T) {
	got := Render(Template{Subject: "[Role] at [Company]"}, Data{Role: "[Company]", Company: "Acme"})
	assert.Equal(t, "[Company] at Acme", got.Subject)
}

func TestLoadTemplate_MissingFileReturnsDefault(t *testing.T) {
	tpl, err := LoadTemplate(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTemplate(), tpl)
}

func TestSaveAndLoadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "template.json")
	custom := Template{Subject: "Hi [Company]", Body: "I am [Candidate Name]."}

	require.NoError(t, SaveTemplate(path, custom))

	got, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, custom, got)
}

func TestLoadTemplate_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := LoadTemplate(path)
	assert.Error(t, err)
}

func TestTopSkill(t *testing.T) {
	assert.Equal(t, "", TopSkill(nil))
	assert.Equal(t, "", TopSkill(&types.ScoreResult{}))
	assert.Equal(t, "react", TopSkill(&types.ScoreResult{
		KeywordData: types.KeywordData{Matches: []string{"react", "aws"}},
	}))
}

func TestDataFromRequest(t *testing.T) {
	req := &types.EmailRequest{Role: "Dev", Company: "Acme", CandidateName: "Ana", TopSkill: "Go"}
	assert.Equal(t, Data{Role: "Dev", Company: "Acme", CandidateName: "Ana", TopSkill: "Go"}, DataFromRequest(req))
}
