package main

import (
	"fmt"

	"github.com/jonathan/resuflux/internal/config"
	"github.com/jonathan/resuflux/internal/email"
	"github.com/spf13/cobra"
)

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Render the job application email",
	Long: "Fill the application email template with the role, company, candidate name and top skill. " +
		"Empty values fall back to generic wording.",
	RunE: runEmail,
}

var (
	emailRole         string
	emailCompany      string
	emailName         string
	emailSkill        string
	emailTemplatePath string
	emailInitTemplate bool
)

func init() {
	emailCmd.Flags().StringVar(&emailRole, "role", "", "Role applied for")
	emailCmd.Flags().StringVar(&emailCompany, "company", "", "Company name")
	emailCmd.Flags().StringVar(&emailName, "name", "", "Candidate name")
	emailCmd.Flags().StringVar(&emailSkill, "skill", "", "Top matched skill")
	emailCmd.Flags().StringVarP(&emailTemplatePath, "template", "t", "", "Path to a JSON template with subject and body")
	emailCmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Résumé file used to prefill --skill")
	emailCmd.Flags().StringVarP(&jobFile, "job", "j", "", "Job description file used to prefill --skill")
	emailCmd.Flags().StringVarP(&jobURL, "job-url", "u", "", "Job description URL used to prefill --skill")
	emailCmd.Flags().BoolVar(&emailInitTemplate, "init-template", false, "Write the default template to --template and exit")

	rootCmd.AddCommand(emailCmd)
}

func runEmail(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	path := firstNonEmpty(emailTemplatePath, settings.EmailTemplate)

	if emailInitTemplate {
		if path == "" {
			return fmt.Errorf("--init-template requires --template")
		}
		if err := email.SaveTemplate(path, email.DefaultTemplate()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default template to %s\n", path)
		return nil
	}

	tpl := email.DefaultTemplate()
	if path != "" {
		tpl, err = email.LoadTemplate(path)
		if err != nil {
			return err
		}
	}

	skill := emailSkill
	if skill == "" && resumeFile != "" && (jobFile != "" || jobURL != "") {
		if skill, err = topSkill(cmd, settings); err != nil {
			return err
		}
	}

	rendered := email.Render(tpl, email.Data{
		Role:          emailRole,
		Company:       emailCompany,
		CandidateName: emailName,
		TopSkill:      skill,
	})
	fmt.Fprintf(cmd.OutOrStdout(), "Subject: %s\n\n%s\n", rendered.Subject, rendered.Body)
	return nil
}

// topSkill scores the --resume file against the job flags and returns the first matched keyword.
func topSkill(cmd *cobra.Command, settings config.Config) (string, error) {
	log := newLogger(settings)
	defer func() { _ = log.Sync() }()

	resumeText, err := readResume(resumeFile)
	if err != nil {
		return "", err
	}
	jdText, err := readJob(cmd.Context(), jobFile, jobURL, settings.UseBrowser, log)
	if err != nil {
		return "", err
	}
	scorer, err := newScorer(settings)
	if err != nil {
		return "", err
	}
	return email.TopSkill(scorer.ScoreResume(resumeText, jdText)), nil
}
