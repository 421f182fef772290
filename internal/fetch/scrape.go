package fetch

import (
	"context"
	"time"

	"github.com/jonathan/resuflux/internal/ingestion"
	"github.com/jonathan/resuflux/internal/logger"
)

// Job is a scraped job description ready for scoring.
type Job struct {
	Text     string              `json:"text"`
	Metadata *ingestion.Metadata `json:"metadata"`
}

// Scraper fetches job pages and falls back to a headless browser when the plain HTML
// holds too little text.
type Scraper struct {
	Options        *Options
	BrowserTimeout time.Duration
	Log            logger.Logger

	// render is WithBrowser unless replaced in tests.
	render func(ctx context.Context, url string, timeout time.Duration) (string, error)
}

// NewScraper returns a scraper with default options.
func NewScraper(log logger.Logger) *Scraper {
	if log == nil {
		log = logger.NewNop()
	}
	return &Scraper{
		Options:        DefaultOptions(),
		BrowserTimeout: DefaultBrowserTimeout,
		Log:            log,
		render:         WithBrowser,
	}
}

// ScrapeJob fetches url and extracts its job description. With useBrowser set, a page
// whose text is shorter than MinContentLength is rendered in headless Chrome and
// extracted again; a failed render keeps the plain result. Text is capped at
// ingestion.MaxJobTextLength characters.
func (s *Scraper) ScrapeJob(ctx context.Context, url string, useBrowser bool) (*Job, error) {
	platform := DetectPlatform(url)
	log := s.Log.WithFields(logger.Fields{"url": url, "platform": string(platform)})

	page, err := URL(ctx, url, s.Options)
	if err != nil {
		return nil, err
	}
	posting, err := ExtractJobPosting(page.HTML, platform)
	if err != nil {
		return nil, &Error{URL: url, Message: "content extraction failed", Cause: err}
	}

	rendered := false
	if useBrowser && ShouldUseBrowser(posting.Text) {
		log.Debug("page text too short, rendering in browser", logger.Fields{"chars": runeLen(posting.Text)})
		if html, renderErr := s.render(ctx, url, s.BrowserTimeout); renderErr != nil {
			log.WithError(renderErr).Warn("browser rendering failed, keeping plain HTML result", nil)
		} else if better, extractErr := ExtractJobPosting(html, platform); extractErr == nil {
			posting, rendered = better, true
		}
	}

	text := ingestion.TruncateJobText(posting.Text)
	meta := ingestion.NewMetadata(text, url)
	meta.Title = posting.Title
	meta.Company = posting.Company
	meta.Location = posting.Location
	meta.Salary = posting.Salary
	meta.Strategy = posting.Strategy
	meta.Browser = rendered

	log.Info("job description scraped", logger.Fields{"strategy": posting.Strategy, "chars": meta.Length})
	return &Job{Text: text, Metadata: meta}, nil
}

// ScrapeJob scrapes with a default Scraper.
func ScrapeJob(ctx context.Context, url string, useBrowser bool) (*Job, error) {
	return NewScraper(nil).ScrapeJob(ctx, url, useBrowser)
}
