package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"huddle/config"
	"huddle/internal/session"
)

func newStore(t *testing.T, ttlMinutes, historyExchanges int) *session.Store {
	t.Helper()

	conf := &config.Config{}
	conf.Session.TTLMinutes = ttlMinutes
	conf.Session.HistoryExchanges = historyExchanges

	return session.NewStore(conf)
}

func TestStoreLifecycle(t *testing.T) {
	store := newStore(t, 60, 3)

	sess := store.Create()
	require.NotEmpty(t, sess.ID)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	require.Same(t, sess, got)

	require.NoError(t, store.Close(sess.ID))

	_, err = store.Get(sess.ID)
	require.ErrorIs(t, err, session.ErrUnknownSession)

	// a closed identifier stays dead
	require.ErrorIs(t, store.Close(sess.ID), session.ErrUnknownSession)
}

func TestStoreUnknownID(t *testing.T) {
	store := newStore(t, 60, 3)

	_, err := store.Get("never-issued")
	require.ErrorIs(t, err, session.ErrUnknownSession)
}

func TestStoreIsolation(t *testing.T) {
	store := newStore(t, 60, 3)

	first := store.Create()
	second := store.Create()
	require.NotEqual(t, first.ID, second.ID)

	first.AppendExchange("book donee at 9", "done")

	require.Len(t, first.History(), 1)
	require.Empty(t, second.History())
}

func TestStoreConcurrentSessions(t *testing.T) {
	store := newStore(t, 60, 3)

	const n = 64

	var wg sync.WaitGroup

	ids := make([]string, n)

	for i := range n {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			sess := store.Create()
			ids[i] = sess.ID

			sess.AppendExchange("hello", "hi")

			got, err := store.Get(sess.ID)
			require.NoError(t, err)
			require.Len(t, got.History(), 1)
		}(i)
	}

	wg.Wait()

	require.Equal(t, n, store.Len())

	seen := map[string]struct{}{}
	for _, id := range ids {
		seen[id] = struct{}{}
	}

	require.Len(t, seen, n)
}

func TestStoreSweepEvictsIdleSessions(t *testing.T) {
	store := newStore(t, 0, 3)

	// zero TTL disables sweeping entirely
	store.Create()
	require.Zero(t, store.Sweep())
	require.Equal(t, 1, store.Len())
}

func TestStoreSweepKeepsActiveSessions(t *testing.T) {
	store := newStore(t, 60, 3)

	sess := store.Create()
	sess.Touch()

	require.Zero(t, store.Sweep())

	_, err := store.Get(sess.ID)
	require.NoError(t, err)
}

func TestSessionHistoryWindow(t *testing.T) {
	store := newStore(t, 60, 3)
	sess := store.Create()

	sess.AppendExchange("one", "1")
	sess.AppendExchange("two", "2")
	sess.AppendExchange("three", "3")
	sess.AppendExchange("four", "4")

	history := sess.History()
	require.Len(t, history, 3)
	require.Equal(t, "two", history[0].UserMessage)
	require.Equal(t, "four", history[2].UserMessage)
}

func TestSessionTouchAdvancesLastActive(t *testing.T) {
	store := newStore(t, 60, 3)
	sess := store.Create()

	before := sess.LastActive()
	time.Sleep(5 * time.Millisecond)
	sess.Touch()

	require.True(t, sess.LastActive().After(before))
}
