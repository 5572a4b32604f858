package session_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"huddle/internal/session"
)

func TestDedupSeen(t *testing.T) {
	dedup := session.NewDedup(10)

	require.False(t, dedup.Seen("evt-1"))
	require.True(t, dedup.Seen("evt-1"))
	require.False(t, dedup.Seen("evt-2"))
}

func TestDedupEmptyIDNeverDeduplicated(t *testing.T) {
	dedup := session.NewDedup(10)

	require.False(t, dedup.Seen(""))
	require.False(t, dedup.Seen(""))
}

func TestDedupBoundedTrimsOlderHalf(t *testing.T) {
	dedup := session.NewDedup(4)

	for i := range 4 {
		require.False(t, dedup.Seen(fmt.Sprintf("evt-%d", i)))
	}

	// the next insert drops the older half
	require.False(t, dedup.Seen("evt-4"))

	require.False(t, dedup.Seen("evt-0"))
	require.True(t, dedup.Seen("evt-3"))
	require.True(t, dedup.Seen("evt-4"))
}
