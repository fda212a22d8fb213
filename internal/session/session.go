// Package session keeps one search controller per browser so the web front
// end can page through a fetched result set without fetching it again.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/acgh213/peoplefinder/internal/metrics"
	"github.com/acgh213/peoplefinder/internal/search"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

type Session struct {
	ID         uuid.UUID
	Controller *search.Controller
	CreatedAt  time.Time
	LastSeen   time.Time
}

// Store is an in-memory, TTL-bounded set of view sessions.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	factory  func() *search.Controller
	now      func() time.Time // for testing
}

// NewStore creates a store whose sessions expire after ttl without use.
// factory builds the controller of each new session.
func NewStore(ttl time.Duration, factory func() *search.Controller) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		factory:  factory,
		now:      time.Now,
	}
}

// Create starts a new session.
func (s *Store) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := &Session{
		ID:         uuid.New(),
		Controller: s.factory(),
		CreatedAt:  now,
		LastSeen:   now,
	}
	s.sessions[sess.ID] = sess
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return sess
}

// Get returns the session for token and marks it as used.
func (s *Store) Get(token string) (*Session, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := s.now()
	if now.Sub(sess.LastSeen) > s.ttl {
		delete(s.sessions, id)
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
		return nil, ErrSessionExpired
	}
	sess.LastSeen = now
	return sess, nil
}

// Acquire returns the live session for token or a new one. created reports
// whether a new session was started.
func (s *Store) Acquire(token string) (sess *Session, created bool) {
	if sess, err := s.Get(token); err == nil {
		return sess, false
	}
	return s.Create(), true
}

func (s *Store) Delete(token string) {
	id, err := uuid.Parse(token)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// CleanupExpired drops sessions idle for longer than the TTL and returns how
// many were removed.
func (s *Store) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return removed
}

// RunCleanup calls CleanupExpired every interval until ctx is done.
func (s *Store) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CleanupExpired()
		}
	}
}
