package session

import (
	"sync"
	"time"

	"huddle/shared/timezone"
)

// Exchange is one user message and the reply it produced.
type Exchange struct {
	UserMessage string `json:"user_message"`
	Reply       string `json:"reply"`
}

// Session carries the per-conversation state: identity, liveness and a
// bounded history window. Older exchanges fall off as new ones arrive.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	lastActive time.Time
	history    []Exchange
	maxHistory int
}

func newSession(id string, maxHistory int) *Session {
	now := timezone.Now()

	return &Session{
		ID:         id,
		CreatedAt:  now,
		lastActive: now,
		maxHistory: maxHistory,
	}
}

// Touch marks the session as recently used.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = timezone.Now()
}

// LastActive reports the last time the session handled a request.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastActive
}

// AppendExchange records a completed exchange, discarding the oldest one
// once the window is full.
func (s *Session) AppendExchange(userMessage, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, Exchange{UserMessage: userMessage, Reply: reply})

	if s.maxHistory > 0 && len(s.history) > s.maxHistory {
		s.history = s.history[len(s.history)-s.maxHistory:]
	}
}

// History returns a copy of the retained exchanges, oldest first.
func (s *Session) History() []Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]Exchange, len(s.history))
	copy(history, s.history)

	return history
}
