package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// MaxSessions is the number of sessions kept in history
	MaxSessions = 10

	historyKey     = "history:sessions"
	jdSummaryRunes = 100
)

// SessionResume is one résumé's score inside a session
type SessionResume struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Session is a single comparison run shown in the history view
type Session struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	JDSummary string          `json:"jd_summary"`
	Resumes   []SessionResume `json:"resumes"`
}

// NewSession builds a session with a fresh ID and a shortened JD summary
func NewSession(jdText string, resumes []SessionResume) Session {
	return Session{
		ID:        uuid.NewString(),
		Date:      time.Now().UTC(),
		JDSummary: summarize(jdText),
		Resumes:   resumes,
	}
}

func summarize(jdText string) string {
	text := strings.Join(strings.Fields(jdText), " ")
	runes := []rune(text)
	if len(runes) <= jdSummaryRunes {
		return text
	}
	return string(runes[:jdSummaryRunes]) + "..."
}

// History is a capped, most-recent-first list of sessions.
// A nil *History records nothing and lists nothing.
type History struct {
	client redis.Cmdable
}

// NewHistory creates a history store over an existing client
func NewHistory(client redis.Cmdable) *History {
	return &History{client: client}
}

// Record pushes a session, dropping the oldest beyond MaxSessions.
// Sessions without any named résumé are skipped.
func (h *History) Record(ctx context.Context, s Session) error {
	if h == nil || h.client == nil || !hasNamedResume(s) {
		return nil
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	pipe := h.client.TxPipeline()
	pipe.LPush(ctx, historyKey, raw)
	pipe.LTrim(ctx, historyKey, 0, MaxSessions-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}
	return nil
}

// List returns stored sessions, newest first
func (h *History) List(ctx context.Context) ([]Session, error) {
	sessions := []Session{}
	if h == nil || h.client == nil {
		return sessions, nil
	}

	items, err := h.client.LRange(ctx, historyKey, 0, MaxSessions-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	for _, item := range items {
		var s Session
		if err := json.Unmarshal([]byte(item), &s); err != nil {
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func hasNamedResume(s Session) bool {
	for _, r := range s.Resumes {
		if strings.TrimSpace(r.Name) != "" {
			return true
		}
	}
	return false
}
