package ports

import (
	"context"
	"time"

	"github.com/neurocare-ai/portal/internal/core/domain"
)

// TokenStore persists one bearer credential per session ID, plus a cached
// profile alongside it. Purely mechanical: no expiry inspection happens
// here. Get returns ("", nil) and GetProfile (nil, nil) when nothing is
// stored.
type TokenStore interface {
	Get(ctx context.Context, sessionID string) (string, error)
	// Set stores the credential. ttl > 0 bounds its lifetime in the store;
	// ttl <= 0 stores it without a backstop.
	Set(ctx context.Context, sessionID, token string, ttl time.Duration) error
	// GetProfile returns the cached profile for the session, nil on a miss.
	GetProfile(ctx context.Context, sessionID string) (*domain.Profile, error)
	// SetProfile caches the profile next to the credential, same ttl rules.
	SetProfile(ctx context.Context, sessionID string, profile *domain.Profile, ttl time.Duration) error
	// Clear removes the credential and the cached profile together.
	Clear(ctx context.Context, sessionID string) error
}
