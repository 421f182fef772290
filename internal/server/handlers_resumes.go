package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resuflux/internal/db"
	"github.com/jonathan/resuflux/internal/logger"
	"github.com/jonathan/resuflux/internal/types"
)

// ComparisonResponse is the body returned by the /resumes/{id}/comparisons routes
type ComparisonResponse struct {
	ResumeID  string             `json:"resume_id"`
	JDHash    string             `json:"jd_hash"`
	Result    *types.ScoreResult `json:"result"`
	UpdatedAt *time.Time         `json:"updated_at,omitempty"`
}

var jdHashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

func (s *Server) resumeStore() (ResumeStore, error) {
	if s.store == nil {
		return nil, &ErrUnavailable{Service: "resume store"}
	}
	return s.store, nil
}

func parseResumeID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid resume ID"}
	}
	return id, nil
}

// handleCreateResume stores a résumé's text
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	store, err := s.resumeStore()
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req types.CreateResumeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	id, err := store.InsertResume(r.Context(), req.Name, req.Text)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// handleGetResume returns a stored résumé
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	store, err := s.resumeStore()
	if err != nil {
		s.writeError(w, err)
		return
	}
	id, err := parseResumeID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resume, err := store.GetResume(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleListResumes lists stored résumés without their text
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	store, err := s.resumeStore()
	if err != nil {
		s.writeError(w, err)
		return
	}

	limit := db.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			s.writeError(w, &ErrValidation{Field: "limit", Message: "must be between 1 and 500"})
			return
		}
		limit = n
	}

	resumes, err := store.ListResumes(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": resumes,
		"count":   len(resumes),
	})
}

// handleCreateComparison scores a stored résumé against a job description and stores the outcome
func (s *Server) handleCreateComparison(w http.ResponseWriter, r *http.Request) {
	store, err := s.resumeStore()
	if err != nil {
		s.writeError(w, err)
		return
	}
	id, err := parseResumeID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req types.ComparisonRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	resume, err := store.GetResume(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result := s.score(r.Context(), resume.Text, req.JobText)
	jdHash := db.HashJobDescription(req.JobText)
	if err := s.saveComparison(r.Context(), id, jdHash, result); err != nil {
		s.log.Warn("failed to persist comparison", logger.Fields{
			"resume_id": id.String(),
			"error":     err.Error(),
		})
	}

	s.jsonResponse(w, http.StatusOK, ComparisonResponse{
		ResumeID: id.String(),
		JDHash:   jdHash,
		Result:   result,
	})
}

// handleGetComparison returns the stored comparison of a résumé against the JD with the
// given hash
func (s *Server) handleGetComparison(w http.ResponseWriter, r *http.Request) {
	store, err := s.resumeStore()
	if err != nil {
		s.writeError(w, err)
		return
	}
	id, err := parseResumeID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	jdHash := r.URL.Query().Get("jd_hash")
	if !jdHashPattern.MatchString(jdHash) {
		s.writeError(w, &ErrValidation{Field: "jd_hash", Message: "must be a lowercase hex SHA-256 digest"})
		return
	}

	c, err := store.GetComparison(r.Context(), id, jdHash)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var result types.ScoreResult
	if err := json.Unmarshal(c.Data, &result); err != nil {
		s.writeError(w, fmt.Errorf("failed to decode stored comparison: %w", err))
		return
	}
	s.jsonResponse(w, http.StatusOK, ComparisonResponse{
		ResumeID:  c.ResumeID.String(),
		JDHash:    c.JDHash,
		Result:    &result,
		UpdatedAt: &c.UpdatedAt,
	})
}

func (s *Server) saveComparison(ctx context.Context, resumeID uuid.UUID, jdHash string, result *types.ScoreResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode comparison: %w", err)
	}
	return s.store.UpsertComparison(ctx, db.Comparison{
		ResumeID: resumeID,
		JDHash:   jdHash,
		ATSScore: result.Total,
		Data:     data,
	})
}
