package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resuflux/internal/ingestion"
	"github.com/jonathan/resuflux/internal/logger"
)

func newPageServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestScraper_ScrapeJob(t *testing.T) {
	page := `<html><head><title>Data Engineer</title></head><body>
		<div id="job-description"><p>` + longParagraph + `</p></div></body></html>`
	server := newPageServer(t, page)

	scraper := NewScraper(logger.NewTestLogger(t))
	scraper.render = func(context.Context, string, time.Duration) (string, error) {
		t.Fatal("browser must not run when useBrowser is false")
		return "", nil
	}

	job, err := scraper.ScrapeJob(context.Background(), server.URL, false)
	require.NoError(t, err)
	assert.Contains(t, job.Text, "distributed services in Go")
	assert.Equal(t, StrategyContainer, job.Metadata.Strategy)
	assert.Equal(t, "Data Engineer", job.Metadata.Title)
	assert.Equal(t, ingestion.HashText(job.Text), job.Metadata.Hash)
	assert.False(t, job.Metadata.Browser)
}

func TestScraper_BrowserFallback(t *testing.T) {
	server := newPageServer(t, `<html><body><div id="root">Loading...</div></body></html>`)

	scraper := NewScraper(logger.NewTestLogger(t))
	var renderedURL string
	scraper.render = func(_ context.Context, url string, _ time.Duration) (string, error) {
		renderedURL = url
		return `<html><body><div class="job-description"><p>` + longParagraph + `</p></div></body></html>`, nil
	}

	job, err := scraper.ScrapeJob(context.Background(), server.URL, true)
	require.NoError(t, err)
	assert.Equal(t, server.URL, renderedURL)
	assert.True(t, job.Metadata.Browser)
	assert.Contains(t, job.Text, "distributed services")
}

func TestScraper_BrowserFailureKeepsPlainText(t *testing.T) {
	server := newPageServer(t, `<html><body><p>Loading the job posting, please wait while we fetch details for you.</p></body></html>`)

	scraper := NewScraper(logger.NewTestLogger(t))
	scraper.render = func(context.Context, string, time.Duration) (string, error) {
		return "", errors.New("chrome not installed")
	}

	job, err := scraper.ScrapeJob(context.Background(), server.URL, true)
	require.NoError(t, err)
	assert.False(t, job.Metadata.Browser)
	assert.Contains(t, job.Text, "Loading the job posting")
}

func TestScraper_TruncatesLongText(t *testing.T) {
	huge := strings.Repeat("<p>"+longParagraph+"</p>", 80)
	server := newPageServer(t, `<html><body><div class="job-description">`+huge+`</div></body></html>`)

	job, err := NewScraper(nil).ScrapeJob(context.Background(), server.URL, false)
	require.NoError(t, err)
	assert.Equal(t, ingestion.MaxJobTextLength, len([]rune(job.Text)))
	assert.Equal(t, ingestion.MaxJobTextLength, job.Metadata.Length)
}

func TestScrapeJob_HTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := ScrapeJob(context.Background(), server.URL, false)
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "403")
}
