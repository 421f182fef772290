// Package ingestion turns uploaded résumé files and scraped job postings into clean text.
package ingestion

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxJobTextLength caps job description text taken from a page.
	MaxJobTextLength = 20000
	// MinResumeLength is the shortest extracted résumé text accepted.
	MinResumeLength = 50
	// MinBulkTextLength is the shortest text bulk upload will store.
	MinBulkTextLength = 10
)

// ErrEmptyDocument is returned when a résumé yields too little text to score.
var ErrEmptyDocument = errors.New("empty or unreadable file")

var (
	inlineSpace = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankRuns   = regexp.MustCompile(`\n{3,}`)
	bulletMarks = regexp.MustCompile(`^[•·▪◦]\s*`)
)

// CleanText normalizes line endings, collapses runs of inline whitespace, turns unicode
// bullets into "- " and keeps at most one blank line between paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimSpace(inlineSpace.ReplaceAllString(line, " "))
	return bulletMarks.ReplaceAllString(line, "- ")
}

// TruncateJobText limits text to MaxJobTextLength characters without splitting a rune.
func TruncateJobText(text string) string {
	if utf8.RuneCountInString(text) <= MaxJobTextLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxJobTextLength])
}

// ValidateResumeText rejects text shorter than MinResumeLength characters after
// trimming surrounding whitespace.
func ValidateResumeText(text string) error {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinResumeLength {
		return ErrEmptyDocument
	}
	return nil
}
