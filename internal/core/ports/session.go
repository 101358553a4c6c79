package ports

import (
	"context"

	"github.com/neurocare-ai/portal/internal/core/domain"
)

// SessionService owns the browser-session lifecycle: credential storage,
// expiry handling, and the auto-logout timer discipline.
type SessionService interface {
	// Login exchanges credentials upstream, mints a session, stores the
	// bearer token and arms auto-logout. Returns the session ID, the role
	// reported by the upstream, and the credential's remaining lifetime in
	// seconds (0 when unknown).
	Login(ctx context.Context, email, password string) (sessionID string, result domain.LoginResult, maxAge int, err error)

	// CheckAuthStatus recomputes the session from the stored credential.
	// An expired or undecodable credential is cleared without any upstream
	// call; a failed profile fetch tears the session down.
	CheckAuthStatus(ctx context.Context, sessionID string) domain.Session

	// Token returns the stored credential after a local expiry check,
	// failing closed with domain.ErrSessionExpired or domain.ErrNoSession.
	Token(ctx context.Context, sessionID string) (string, error)

	// Logout cancels the auto-logout timer and clears the credential.
	Logout(ctx context.Context, sessionID string) error
}
