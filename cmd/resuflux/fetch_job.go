package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resuflux/internal/fetch"
	"github.com/jonathan/resuflux/internal/observability"
	"github.com/spf13/cobra"
)

var fetchJobCmd = &cobra.Command{
	Use:   "fetch-job",
	Short: "Scrape a job description from a URL",
	Long:  "Fetch a job page, extract the job description, and print the cleaned text followed by its metadata.",
	RunE:  runFetchJob,
}

var (
	fetchURL string
	fetchOut string
)

func init() {
	fetchJobCmd.Flags().StringVarP(&fetchURL, "url", "u", "", "URL of the job posting (required)")
	fetchJobCmd.Flags().StringVarP(&fetchOut, "out", "o", "", "Output file for the job JSON (default stdout)")
	fetchJobCmd.Flags().BoolVar(&useBrowser, "browser", false, "Render the page in headless Chrome when it holds too little text")
	fetchJobCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print a metadata box to stderr")

	if err := fetchJobCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}

	rootCmd.AddCommand(fetchJobCmd)
}

func runFetchJob(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	log := newLogger(settings)
	defer func() { _ = log.Sync() }()

	job, err := fetch.NewScraper(log).ScrapeJob(cmd.Context(), fetchURL, useBrowser || settings.UseBrowser)
	if err != nil {
		return err
	}

	if verbose || settings.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintJobMetadata(job.Metadata)
	}

	if fetchOut == "" {
		fmt.Fprintln(cmd.OutOrStdout(), job.Text)
		fmt.Fprintln(cmd.OutOrStdout())
		meta, err := json.MarshalIndent(job.Metadata, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(meta))
		return nil
	}

	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	if err := os.WriteFile(fetchOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Successfully fetched job description (%d characters)\n", job.Metadata.Length)
	fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", fetchOut)
	return nil
}
