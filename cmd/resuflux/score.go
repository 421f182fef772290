package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resuflux/internal/industry"
	"github.com/jonathan/resuflux/internal/observability"
	"github.com/jonathan/resuflux/internal/schemas"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a résumé against a job description",
	Long: "Extract the text of a résumé (pdf, docx or text), score it against a job description " +
		"file or URL, and print the result as JSON or write it to --out.",
	RunE: runScore,
}

var (
	resumeFile string
	jobFile    string
	jobURL     string
	outFile    string
	useBrowser bool
	verbose    bool
)

func init() {
	scoreCmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to the résumé file (pdf, docx or text)")
	scoreCmd.Flags().StringVarP(&jobFile, "job", "j", "", "Path to the job description file")
	scoreCmd.Flags().StringVarP(&jobURL, "job-url", "u", "", "URL to scrape the job description from")
	scoreCmd.Flags().StringVarP(&outFile, "out", "o", "", "Output file for the score JSON (default stdout)")
	scoreCmd.Flags().BoolVar(&useBrowser, "browser", false, "Render the job page in headless Chrome when it holds too little text")
	scoreCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print a summary box to stderr")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	log := newLogger(settings)
	defer func() { _ = log.Sync() }()

	resumeText, err := readResume(firstNonEmpty(resumeFile, settings.Resume))
	if err != nil {
		return err
	}
	jobPath, jobLink := jobSource(settings)
	jdText, err := readJob(cmd.Context(), jobPath, jobLink, useBrowser || settings.UseBrowser, log)
	if err != nil {
		return err
	}

	scorer, err := newScorer(settings)
	if err != nil {
		return err
	}
	result := scorer.ScoreResume(resumeText, jdText)
	if err := schemas.ValidateScoreResult(result); err != nil {
		return fmt.Errorf("score result failed schema validation: %w", err)
	}

	if verbose || settings.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintFieldSignals(industry.Counts(scorer.Lexicon(), jdText))
		printer.PrintScore(result)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal score: %w", err)
	}

	out := firstNonEmpty(outFile, settings.Out)
	if out == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := schemas.ValidateFile(schemas.ScoreResultSchema(), out); err != nil {
		return fmt.Errorf("output file failed schema validation: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully scored resume\n")
	fmt.Fprintf(cmd.OutOrStdout(), "ATS score: %d (%s)\n", result.Total, result.Field)
	fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", out)
	return nil
}
