package cache

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_RecordAndList(t *testing.T) {
	_, client := newTestRedis(t)
	h := NewHistory(client)
	ctx := context.Background()

	for i := 0; i < MaxSessions+3; i++ {
		s := NewSession(fmt.Sprintf("job %d", i), []SessionResume{{Name: "A", Score: i}})
		require.NoError(t, h.Record(ctx, s))
	}

	sessions, err := h.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, MaxSessions)
	assert.Equal(t, "job 12", sessions[0].JDSummary)
	assert.Equal(t, 12, sessions[0].Resumes[0].Score)
	assert.Equal(t, "job 3", sessions[MaxSessions-1].JDSummary)
}

func TestHistory_SkipsUnnamedSessions(t *testing.T) {
	_, client := newTestRedis(t)
	h := NewHistory(client)
	ctx := context.Background()

	require.NoError(t, h.Record(ctx, NewSession("job", nil)))
	require.NoError(t, h.Record(ctx, NewSession("job", []SessionResume{{Name: "  ", Score: 40}})))

	sessions, err := h.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestHistory_NilIsNoop(t *testing.T) {
	var h *History
	ctx := context.Background()

	assert.NoError(t, h.Record(ctx, NewSession("job", []SessionResume{{Name: "A"}})))
	sessions, err := h.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "short job text", summarize("  short\n job   text "))

	long := strings.Repeat("é", 150)
	got := summarize(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, jdSummaryRunes+3, len([]rune(got)))
}

func TestNewSession(t *testing.T) {
	s := NewSession("job", []SessionResume{{Name: "A", Score: 1}})
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.Date.IsZero())
}
