package server

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resuflux/internal/advice"
	"github.com/jonathan/resuflux/internal/cache"
	"github.com/jonathan/resuflux/internal/db"
	"github.com/jonathan/resuflux/internal/logger"
	"github.com/jonathan/resuflux/internal/types"
)

// ExplainResponse is the body returned by POST /explain
type ExplainResponse struct {
	Score       *types.ScoreResult       `json:"score"`
	Explanation string                   `json:"explanation"`
	SkillGaps   string                   `json:"skill_gaps"`
	Advice      []types.AdviceSuggestion `json:"advice"`
}

// CompareResult is one résumé's outcome in a comparison
type CompareResult struct {
	ID     string             `json:"id,omitempty"`
	Name   string             `json:"name"`
	Result *types.ScoreResult `json:"result"`
}

// CompareResponse is the body returned by POST /compare
type CompareResponse struct {
	Field   string          `json:"field"`
	Results []CompareResult `json:"results"`
}

// score returns a cached result when available and caches fresh ones.
// Cache failures are logged and never affect the result.
func (s *Server) score(ctx context.Context, resumeText, jobText string) *types.ScoreResult {
	useCache := resumeText != "" && jobText != ""
	if useCache {
		cached, err := s.cache.Get(ctx, resumeText, jobText)
		if err != nil {
			s.log.Warn("score cache read failed", logger.Fields{"error": err.Error()})
		}
		if cached != nil {
			return cached
		}
	}

	result := s.scorer.ScoreResume(resumeText, jobText)
	s.metrics.ObserveScore(result.Field, result.Total)

	if useCache {
		if err := s.cache.Set(ctx, resumeText, jobText, result); err != nil {
			s.log.Warn("score cache write failed", logger.Fields{"error": err.Error()})
		}
	}
	return result
}

// handleScore scores one résumé against one job description
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.score(r.Context(), req.ResumeText, req.JobText))
}

// handleExplain scores and adds the narrative explanation and advisor tips
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	result := s.score(r.Context(), req.ResumeText, req.JobText)
	tips, err := s.advisor.Suggest(r.Context(), result)
	if err != nil {
		s.log.Warn("advisor failed", logger.Fields{"error": err.Error()})
		tips = []types.AdviceSuggestion{}
	}

	s.jsonResponse(w, http.StatusOK, ExplainResponse{
		Score:       result,
		Explanation: advice.ExplainScore(result),
		SkillGaps:   advice.ExplainSkillGaps(result),
		Advice:      tips,
	})
}

// handleCompare scores several résumés against one job description concurrently
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req types.CompareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if len(req.Resumes) > s.maxCompare {
		s.writeError(w, &ErrValidation{Field: "resumes", Message: fmt.Sprintf("at most %d resumes per comparison", s.maxCompare)})
		return
	}

	ctx := r.Context()
	results := make([]CompareResult, len(req.Resumes))
	g, gctx := errgroup.WithContext(ctx)
	for i, resume := range req.Resumes {
		g.Go(func() error {
			results[i] = CompareResult{
				Name:   resume.Name,
				Result: s.score(gctx, resume.Text, req.JobText),
			}
			if resume.ID != nil {
				results[i].ID = resume.ID.String()
			}
			return nil
		})
	}
	_ = g.Wait() // scoring never fails

	s.persistComparisons(ctx, req, results)
	s.recordSession(ctx, req.JobText, results)

	field := ""
	if len(results) > 0 {
		field = results[0].Result.Field
	}
	s.jsonResponse(w, http.StatusOK, CompareResponse{Field: field, Results: results})
}

// persistComparisons upserts a comparison for every résumé that carries a stored ID
func (s *Server) persistComparisons(ctx context.Context, req types.CompareRequest, results []CompareResult) {
	if s.store == nil {
		return
	}
	jdHash := db.HashJobDescription(req.JobText)
	for i, resume := range req.Resumes {
		if resume.ID == nil {
			continue
		}
		if err := s.saveComparison(ctx, *resume.ID, jdHash, results[i].Result); err != nil {
			s.log.Warn("failed to persist comparison", logger.Fields{
				"resume_id": resume.ID.String(),
				"error":     err.Error(),
			})
		}
	}
}

// recordSession appends the comparison to the session history
func (s *Server) recordSession(ctx context.Context, jobText string, results []CompareResult) {
	entries := make([]cache.SessionResume, 0, len(results))
	for _, res := range results {
		entries = append(entries, cache.SessionResume{Name: res.Name, Score: res.Result.Total})
	}
	if err := s.history.Record(ctx, cache.NewSession(jobText, entries)); err != nil {
		s.log.Warn("failed to record session", logger.Fields{"error": err.Error()})
	}
}

// handleHistory lists the most recent comparison sessions
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.history.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	})
}
