package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/resuflux/internal/email"
	"github.com/jonathan/resuflux/internal/fetch"
	"github.com/jonathan/resuflux/internal/types"
)

// handleScrapeJob fetches a job posting page and returns its cleaned description
func (s *Server) handleScrapeJob(w http.ResponseWriter, r *http.Request) {
	if s.scraper == nil {
		s.writeError(w, &ErrUnavailable{Service: "job scraper"})
		return
	}

	var req types.ScrapeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	if err := fetch.ValidateURL(req.URL); err != nil {
		s.writeError(w, &ErrValidation{Field: "url", Message: "must be an absolute http or https URL"})
		return
	}

	job, err := s.scraper.ScrapeJob(r.Context(), req.URL, req.UseBrowser)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleRenderEmail renders the application email template
func (s *Server) handleRenderEmail(w http.ResponseWriter, r *http.Request) {
	var req types.EmailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	data := email.DataFromRequest(&req)
	if strings.TrimSpace(data.TopSkill) == "" && req.ResumeText != "" && req.JobText != "" {
		data.TopSkill = email.TopSkill(s.score(r.Context(), req.ResumeText, req.JobText))
	}
	s.jsonResponse(w, http.StatusOK, email.Render(s.emailTemplate, data))
}
