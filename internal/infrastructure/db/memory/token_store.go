// Package memory provides an in-process TokenStore for development runs
// without Redis. Credentials do not survive a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/neurocare-ai/portal/internal/core/domain"
)

type entry struct {
	token    string
	profile  *domain.Profile
	deadline time.Time // zero means no backstop
}

func (e entry) expired() bool {
	return !e.deadline.IsZero() && time.Now().After(e.deadline)
}

// TokenStore is a mutex-guarded map with the same TTL backstop semantics as
// the Redis store. Token and cached profile live in one entry per session
// and are cleared together.
type TokenStore struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewTokenStore() *TokenStore {
	return &TokenStore{entries: make(map[string]entry)}
}

func (s *TokenStore) Get(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok {
		return "", nil
	}
	if e.expired() {
		delete(s.entries, sessionID)
		return "", nil
	}
	return e.token, nil
}

func (s *TokenStore) Set(_ context.Context, sessionID, token string, ttl time.Duration) error {
	var deadline time.Time
	if ttl > 0 {
		deadline = time.Now().Add(ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[sessionID]
	e.token = token
	e.deadline = deadline
	s.entries[sessionID] = e
	return nil
}

func (s *TokenStore) GetProfile(_ context.Context, sessionID string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok {
		return nil, nil
	}
	if e.expired() {
		delete(s.entries, sessionID)
		return nil, nil
	}
	return e.profile, nil
}

func (s *TokenStore) SetProfile(_ context.Context, sessionID string, profile *domain.Profile, ttl time.Duration) error {
	if profile == nil {
		return nil
	}
	var deadline time.Time
	if ttl > 0 {
		deadline = time.Now().Add(ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[sessionID]
	e.profile = profile
	if e.deadline.IsZero() || (!deadline.IsZero() && deadline.Before(e.deadline)) {
		e.deadline = deadline
	}
	s.entries[sessionID] = e
	return nil
}

func (s *TokenStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
