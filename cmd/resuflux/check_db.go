package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/jonathan/resuflux/internal/db"
	"github.com/spf13/cobra"
)

var checkDBCmd = &cobra.Command{
	Use:   "check-db",
	Short: "Check the résumé store connection",
	Long:  "Connect to PostgreSQL, list one stored résumé and fetch its text.",
	RunE:  runCheckDB,
}

func init() {
	rootCmd.AddCommand(checkDBCmd)
}

func runCheckDB(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if settings.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, settings.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "✓ Connected to database")

	summaries, err := database.ListResumes(ctx, 1)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No resumes stored yet")
		return nil
	}

	resume, err := database.GetResume(ctx, summaries[0].ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Fetched resume %q (%s, %d characters)\n", resume.Name, resume.ID, utf8.RuneCountInString(resume.Text))
	return nil
}
