package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamesight/internal/agent"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "history", "sessions.bolt"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	rec := Record{
		Model: "google/gemini-2.0-flash-001",
		Messages: []agent.Message{
			{Role: agent.RoleUser, Content: "analyze this game screen"},
			{Role: agent.RoleAssistant, Content: "You are low on mana."},
		},
	}

	require.NoError(t, s.Save("20260826_153000", rec))

	got, found, err := s.Load("20260826_153000")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rec.Model, got.Model)
	assert.Equal(t, rec.Messages, got.Messages)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSavePreservesCreatedAt(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save("sess", Record{Model: "m"}))
	first, _, err := s.Load("sess")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	require.NoError(t, s.Save("sess", Record{Model: "m", Messages: []agent.Message{{Role: agent.RoleUser, Content: "hi"}}}))
	second, _, err := s.Load("sess")
	require.NoError(t, err)

	assert.Equal(t, first.CreatedAt.UnixNano(), second.CreatedAt.UnixNano())
	assert.True(t, second.UpdatedAt.After(second.CreatedAt))
}

func TestLoadMissingSession(t *testing.T) {
	s := openTestStore(t)

	_, found, err := s.Load("nope")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSessionsListing(t *testing.T) {
	s := openTestStore(t)

	ids, err := s.Sessions()
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, s.Save("b", Record{}))
	require.NoError(t, s.Save("a", Record{}))

	ids, err = s.Sessions()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}
