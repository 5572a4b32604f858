package session

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"huddle/config"
	"huddle/shared/timezone"
)

const shardCount = 32

// ErrUnknownSession is returned for identifiers that were never issued,
// already closed or expired. Closed identifiers are never reused.
var ErrUnknownSession = errors.New("unknown or closed session")

type shard struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// Store keeps live sessions sharded by identifier hash so concurrent
// requests on different sessions rarely contend on the same lock.
type Store struct {
	shards     [shardCount]*shard
	ttl        time.Duration
	maxHistory int
}

func NewStore(conf *config.Config) *Store {
	store := &Store{
		ttl:        time.Duration(conf.Session.TTLMinutes) * time.Minute,
		maxHistory: conf.Session.HistoryExchanges,
	}

	for i := range store.shards {
		store.shards[i] = &shard{sessions: map[string]*Session{}}
	}

	return store
}

// Create issues a fresh session under a new identifier.
func (st *Store) Create() *Session {
	id := uuid.NewString()
	sess := newSession(id, st.maxHistory)

	sh := st.shard(id)

	sh.mu.Lock()
	sh.sessions[id] = sess
	sh.mu.Unlock()

	return sess
}

// Get resolves a live session by identifier.
func (st *Store) Get(id string) (*Session, error) {
	sh := st.shard(id)

	sh.mu.RLock()
	sess, ok := sh.sessions[id]
	sh.mu.RUnlock()

	if !ok {
		return nil, ErrUnknownSession
	}

	return sess, nil
}

// Close discards the session. The identifier becomes invalid immediately.
func (st *Store) Close(id string) error {
	sh := st.shard(id)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, ok := sh.sessions[id]; !ok {
		return ErrUnknownSession
	}

	delete(sh.sessions, id)

	return nil
}

// Len counts live sessions across all shards.
func (st *Store) Len() int {
	total := 0

	for _, sh := range st.shards {
		sh.mu.RLock()
		total += len(sh.sessions)
		sh.mu.RUnlock()
	}

	return total
}

// Sweep evicts sessions idle beyond the TTL. Run once per interval.
func (st *Store) Sweep() int {
	if st.ttl <= 0 {
		return 0
	}

	deadline := timezone.Now().Add(-st.ttl)
	evicted := 0

	for _, sh := range st.shards {
		sh.mu.Lock()

		for id, sess := range sh.sessions {
			if sess.LastActive().Before(deadline) {
				delete(sh.sessions, id)

				evicted++
			}
		}

		sh.mu.Unlock()
	}

	return evicted
}

// StartJanitor sweeps expired sessions in the background until ctx ends.
func (st *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if evicted := st.Sweep(); evicted > 0 {
					log.Info().Int("evicted", evicted).Msg("swept expired sessions")
				}
			}
		}
	}()
}

func (st *Store) shard(id string) *shard {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(id))

	return st.shards[hash.Sum32()%shardCount]
}
