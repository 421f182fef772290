package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resuflux/internal/types"
)

const personSchema = `{
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer", "minimum": 0}
  }
}`

func TestValidateJSONString(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		wantValid bool
	}{
		{"valid document", `{"name": "Ada", "age": 36}`, true},
		{"missing required field", `{"age": 36}`, false},
		{"wrong type", `{"name": 42}`, false},
		{"below minimum", `{"name": "Ada", "age": -1}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONString(personSchema, tt.document)
			if tt.wantValid {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "error should be ValidationError, got %v", err)
			assert.NotEmpty(t, ve.Errors)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(personSchema, `{not json`)
	var le *SchemaLoadError
	require.True(t, errors.As(err, &le))
	assert.Error(t, le.Unwrap())
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"name": "Ada"}`), 0o644))

	assert.NoError(t, ValidateFile(personSchema, good))

	err := ValidateFile(personSchema, filepath.Join(dir, "missing.json"))
	var le *SchemaLoadError
	require.True(t, errors.As(err, &le))
	assert.Contains(t, err.Error(), "cannot read document")
}

func TestValidateScoreResult(t *testing.T) {
	valid := &types.ScoreResult{
		Total:       57,
		Field:       "Technology",
		KeywordData: types.KeywordData{Matches: []string{"react"}, Missing: []string{"kubernetes"}, Score: 63},
		Suggestions: []string{"Consider adding: Kubernetes"},
	}
	assert.NoError(t, ValidateScoreResult(valid))

	empty := &types.ScoreResult{
		KeywordData: types.KeywordData{Matches: []string{}, Missing: []string{}},
		Suggestions: []string{"Please provide both resume and job description."},
	}
	assert.NoError(t, ValidateScoreResult(empty))

	outOfRange := *valid
	outOfRange.Total = 120
	assert.Error(t, ValidateScoreResult(&outOfRange))

	tooManyMissing := *valid
	tooManyMissing.KeywordData.Missing = []string{"a", "b", "c", "d", "e", "f"}
	assert.Error(t, ValidateScoreResult(&tooManyMissing))

	assert.Error(t, ValidateScoreResult(nil))
}
