// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resuflux/internal/ingestion"
	"github.com/jonathan/resuflux/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the number of cells in a score bar
	barWidth = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to exactly width runes
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		return string(runes[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// bar renders a 0-100 score as a fixed-width bar
func bar(score int) string {
	score = max(0, min(100, score))
	filled := score * barWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintScore outputs the total, its components and the keyword overview of a result.
func (p *Printer) PrintScore(result *types.ScoreResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	field := result.Field
	if field == "" {
		field = "-"
	}
	sb.WriteString(fmt.Sprintf("Field:     %s\n", field))
	sb.WriteString(fmt.Sprintf("ATS score: %3d %s\n", result.Total, bar(result.Total)))
	sb.WriteString(fmt.Sprintf("Keywords:  %3d %s\n", result.KeywordData.Score, bar(result.KeywordData.Score)))
	sb.WriteString("\n")

	writeTerms(&sb, "Matched", result.KeywordData.Matches)
	writeTerms(&sb, "Missing", result.KeywordData.Missing)

	if len(result.Suggestions) > 0 {
		sb.WriteString("Suggestions:\n")
		for _, s := range result.Suggestions {
			sb.WriteString(fmt.Sprintf("  • %s\n", s))
		}
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

func writeTerms(sb *strings.Builder, label string, terms []string) {
	if len(terms) == 0 {
		sb.WriteString(fmt.Sprintf("%s: none\n\n", label))
		return
	}
	sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(terms)))
	count := min(len(terms), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", terms[i]))
	}
	if len(terms) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(terms)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintAdvice outputs located improvement advice.
func (p *Printer) PrintAdvice(advice []types.AdviceSuggestion) {
	if len(advice) == 0 {
		p.printBox("ADVICE", "No advice available")
		return
	}

	var sb strings.Builder
	for i, a := range advice {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, a.Tip))
		if a.Reason != "" {
			sb.WriteString(fmt.Sprintf("   Why:   %s\n", a.Reason))
		}
		if a.Location != "" {
			sb.WriteString(fmt.Sprintf("   Where: %s\n", a.Location))
		}
	}

	p.printBox("ADVICE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobMetadata outputs where a scraped job description came from.
func (p *Printer) PrintJobMetadata(meta *ingestion.Metadata) {
	if meta == nil {
		return
	}

	var sb strings.Builder
	rows := []struct{ label, value string }{
		{"Title", meta.Title},
		{"Company", meta.Company},
		{"Location", meta.Location},
		{"Salary", meta.Salary},
		{"URL", meta.URL},
		{"Strategy", meta.Strategy},
	}
	for _, row := range rows {
		if row.value != "" {
			sb.WriteString(fmt.Sprintf("%-9s %s\n", row.label+":", row.value))
		}
	}
	sb.WriteString(fmt.Sprintf("%-9s %d chars", "Length:", meta.Length))
	if meta.Browser {
		sb.WriteString(" (rendered)")
	}

	p.printBox("JOB POSTING", sb.String())
}

// PrintFieldSignals outputs the industry marker hit counts behind field detection,
// highest first.
func (p *Printer) PrintFieldSignals(counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name, n := range counts {
		if n > 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		p.printBox("FIELD SIGNALS", "No industry markers found")
		return
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("%-12s %3d hits\n", name+":", counts[name]))
	}
	p.printBox("FIELD SIGNALS", strings.TrimSuffix(sb.String(), "\n"))
}
