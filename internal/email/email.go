// Package email renders the application email sent alongside a résumé.
package email

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resuflux/internal/types"
)

// Placeholders recognised in subject and body
const (
	PlaceholderRole      = "[Role]"
	PlaceholderCompany   = "[Company]"
	PlaceholderCandidate = "[Candidate Name]"
	PlaceholderTopSkill  = "[My Top Skill]"
)

// Fallbacks used when a value is empty
const (
	FallbackRole      = "this position"
	FallbackCompany   = "your company"
	FallbackCandidate = "Candidate"
	FallbackTopSkill  = "relevant skills"
)

const defaultSubject = "Application for [Role] - [Candidate Name]"

const defaultBody = `Dear Hiring Manager,

I am writing to express my strong interest in the [Role] position at [Company].

With my background in [My Top Skill], I am confident that I can contribute effectively to your team. Please find my resume attached.

Best regards,
[Candidate Name]`

// Template is an email subject and body with placeholders
type Template struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Data holds the values substituted into a Template
type Data struct {
	Role          string
	Company       string
	CandidateName string
	TopSkill      string
}

// DataFromRequest converts an API request into render data
func DataFromRequest(req *types.EmailRequest) Data {
	return Data{
		Role:          req.Role,
		Company:       req.Company,
		CandidateName: req.CandidateName,
		TopSkill:      req.TopSkill,
	}
}

// DefaultTemplate returns the built-in template
func DefaultTemplate() Template {
	return Template{Subject: defaultSubject, Body: defaultBody}
}

// Render substitutes every placeholder. Substituted values are not rescanned.
func Render(tpl Template, data Data) Template {
	r := strings.NewReplacer(
		PlaceholderRole, orDefault(data.Role, FallbackRole),
		PlaceholderCompany, orDefault(data.Company, FallbackCompany),
		PlaceholderCandidate, orDefault(data.CandidateName, FallbackCandidate),
		PlaceholderTopSkill, orDefault(data.TopSkill, FallbackTopSkill),
	)
	return Template{
		Subject: r.Replace(tpl.Subject),
		Body:    r.Replace(tpl.Body),
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// LoadTemplate reads a template from a JSON file. A missing file yields the default.
func LoadTemplate(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultTemplate(), nil
	}
	if err != nil {
		return Template{}, fmt.Errorf("failed to read email template %s: %w", path, err)
	}

	var tpl Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return Template{}, fmt.Errorf("failed to parse email template %s: %w", path, err)
	}
	if tpl.Subject == "" && tpl.Body == "" {
		return DefaultTemplate(), nil
	}
	return tpl, nil
}

// SaveTemplate writes a template as JSON, creating parent directories
func SaveTemplate(path string, tpl Template) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create template directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(tpl, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode email template: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write email template %s: %w", path, err)
	}
	return nil
}

// TopSkill returns the first matched keyword of a score, or "" when none matched
func TopSkill(result *types.ScoreResult) string {
	if result == nil || len(result.KeywordData.Matches) == 0 {
		return ""
	}
	return result.KeywordData.Matches[0]
}
