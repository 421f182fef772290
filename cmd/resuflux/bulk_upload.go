package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonathan/resuflux/internal/config"
	"github.com/jonathan/resuflux/internal/db"
	"github.com/jonathan/resuflux/internal/ingestion"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var bulkUploadCmd = &cobra.Command{
	Use:   "bulk-upload",
	Short: "Store every résumé in a folder",
	Long:  "Extract every non-hidden file in a folder and insert it into the résumé store. Files with almost no text are skipped.",
	RunE:  runBulkUpload,
}

var (
	uploadDir   string
	concurrency int
)

func init() {
	bulkUploadCmd.Flags().StringVarP(&uploadDir, "dir", "d", "", "Folder holding the résumé files (required)")
	bulkUploadCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "Files processed in parallel (default 4)")

	if err := bulkUploadCmd.MarkFlagRequired("dir"); err != nil {
		panic(fmt.Sprintf("failed to mark dir flag as required: %v", err))
	}

	rootCmd.AddCommand(bulkUploadCmd)
}

// resumeInserter is the part of the résumé store bulk upload needs.
type resumeInserter interface {
	InsertResume(ctx context.Context, name, text string) (uuid.UUID, error)
}

// uploadStatus is the outcome for one file.
type uploadStatus string

const (
	uploadStored  uploadStatus = "stored"
	uploadSkipped uploadStatus = "skipped"
	uploadFailed  uploadStatus = "failed"
)

type uploadResult struct {
	Name   string
	Status uploadStatus
	ID     uuid.UUID
	Err    error
}

func runBulkUpload(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if settings.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	workers := concurrency
	if workers <= 0 {
		workers = settings.Concurrency
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, settings.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()
	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	results, err := uploadFolder(ctx, database, uploadDir, workers)
	if err != nil {
		return err
	}
	return reportUploads(cmd.OutOrStdout(), results)
}

// uploadFolder inserts every non-hidden regular file in dir, at most workers at a time.
// Per-file failures are reported in the results rather than aborting the run.
func uploadFolder(ctx context.Context, store resumeInserter, dir string, workers int) ([]uploadResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}
	if workers <= 0 {
		workers = config.DefaultConcurrency
	}

	var (
		mu      sync.Mutex
		results []uploadResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, entry := range entries {
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		g.Go(func() error {
			res := uploadFile(gctx, store, filepath.Join(dir, entry.Name()))
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}

func uploadFile(ctx context.Context, store resumeInserter, path string) uploadResult {
	res := uploadResult{Name: filepath.Base(path)}

	text, err := ingestion.ExtractFile(path)
	if err != nil {
		res.Status, res.Err = uploadFailed, err
		return res
	}
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < ingestion.MinBulkTextLength {
		res.Status = uploadSkipped
		return res
	}

	id, err := store.InsertResume(ctx, res.Name, text)
	if err != nil {
		res.Status, res.Err = uploadFailed, err
		return res
	}
	res.Status, res.ID = uploadStored, id
	return res
}

// reportUploads prints one line per file and returns an error when any file failed.
func reportUploads(w io.Writer, results []uploadResult) error {
	var stored, skipped, failed int
	for _, r := range results {
		switch r.Status {
		case uploadStored:
			stored++
			fmt.Fprintf(w, "✓ %s (%s)\n", r.Name, r.ID)
		case uploadSkipped:
			skipped++
			fmt.Fprintf(w, "- %s: too little text, skipped\n", r.Name)
		case uploadFailed:
			failed++
			fmt.Fprintf(w, "✗ %s: %v\n", r.Name, r.Err)
		}
	}
	fmt.Fprintf(w, "\nStored %d, skipped %d, failed %d\n", stored, skipped, failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to upload", failed, len(results))
	}
	return nil
}
