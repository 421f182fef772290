package main

import (
	"fmt"

	"github.com/jonathan/resuflux/internal/advice"
	"github.com/jonathan/resuflux/internal/logger"
	"github.com/jonathan/resuflux/internal/observability"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Explain a score and suggest improvements",
	Long:  "Score a résumé against a job description, then print the score narrative, the skill-gap narrative and advisor tips.",
	RunE:  runExplain,
}

var advisorMode string

func init() {
	explainCmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to the résumé file (pdf, docx or text)")
	explainCmd.Flags().StringVarP(&jobFile, "job", "j", "", "Path to the job description file")
	explainCmd.Flags().StringVarP(&jobURL, "job-url", "u", "", "URL to scrape the job description from")
	explainCmd.Flags().BoolVar(&useBrowser, "browser", false, "Render the job page in headless Chrome when it holds too little text")
	explainCmd.Flags().StringVar(&advisorMode, "advisor", "", "Advisor mode: heuristic, llm or placeholder")

	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	settings.Advisor = firstNonEmpty(advisorMode, settings.Advisor)
	if err := settings.Validate(); err != nil {
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

	advisor, closeAdvisor, err := newAdvisor(cmd.Context(), settings, log)
	if err != nil {
		return err
	}
	defer closeAdvisor()

	tips, err := advisor.Suggest(cmd.Context(), result)
	if err != nil {
		log.Warn("advisor failed", logger.Fields{"error": err.Error()})
		tips = nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, advice.ExplainScore(result))
	fmt.Fprintln(out)
	fmt.Fprintln(out, advice.ExplainSkillGaps(result))
	fmt.Fprintln(out)
	observability.NewPrinter(out).PrintAdvice(tips)
	return nil
}
