package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/neurocare-ai/portal/internal/core/domain"
	"github.com/neurocare-ai/portal/internal/core/ports"
	"github.com/neurocare-ai/portal/internal/pkg/metrics"
)

// SessionManager owns browser sessions: it exchanges credentials with the
// upstream service, keeps the bearer token in the TokenStore, and enforces
// the one timer-per-session auto-logout discipline.
//
// Expiry is decoded locally from the token's exp claim as an optimization
// only; the upstream remains the authority on every privileged call, and
// any failed profile fetch tears the session down.
type SessionManager struct {
	store    ports.TokenStore
	upstream ports.UpstreamGateway
	audit    ports.AuditRecorder
	log      zerolog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer

	now func() time.Time
}

func NewSessionManager(store ports.TokenStore, upstream ports.UpstreamGateway, audit ports.AuditRecorder, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		store:    store,
		upstream: upstream,
		audit:    audit,
		log:      log,
		timers:   make(map[string]*time.Timer),
		now:      time.Now,
	}
}

// IsExpired reports whether the credential's exp claim is in the past.
// Fail-closed: a token that cannot be decoded, or that carries no usable
// exp claim, counts as expired.
func (m *SessionManager) IsExpired(token string) bool {
	exp, ok := m.expiresAt(token)
	if !ok {
		return true
	}
	return !exp.After(m.now())
}

// expiresAt decodes the exp claim without verifying the signature. The
// portal has no signing key; verification belongs to the upstream.
func (m *SessionManager) expiresAt(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Login exchanges credentials upstream and, on success, mints a session ID,
// stores the token (TTL-bounded to its own expiry) and arms auto-logout.
func (m *SessionManager) Login(ctx context.Context, email, password string) (string, domain.LoginResult, int, error) {
	result, err := m.upstream.Login(ctx, email, password)
	if err != nil {
		m.record(domain.AuditEntry{Actor: email, Action: domain.AuditLogin, Success: false, Detail: err.Error()})
		return "", domain.LoginResult{}, 0, err
	}
	if result.AccessToken == "" {
		return "", domain.LoginResult{}, 0, domain.ErrInvalidCredentials
	}

	// A token we cannot decode would be unusable on the very next request;
	// reject it here instead of storing a dead credential.
	exp, ok := m.expiresAt(result.AccessToken)
	if !ok || !exp.After(m.now()) {
		m.log.Warn().Str("email", email).Msg("upstream issued an expired or undecodable token")
		return "", domain.LoginResult{}, 0, domain.ErrSessionExpired
	}

	sessionID := uuid.NewString()
	ttl := exp.Sub(m.now())
	if err := m.store.Set(ctx, sessionID, result.AccessToken, ttl); err != nil {
		return "", domain.LoginResult{}, 0, err
	}

	// Cache the identity the login response carries. The full profile
	// replaces it on the first status check that has to go upstream.
	cached := &domain.Profile{Email: result.Email, Role: result.Role}
	if cached.Email == "" {
		cached.Email = email
	}
	if err := m.store.SetProfile(ctx, sessionID, cached, ttl); err != nil {
		m.log.Warn().Err(err).Msg("profile cache write failed")
	}

	m.SetupAutoLogout(sessionID, result.AccessToken, nil)
	m.record(domain.AuditEntry{Actor: email, Role: result.Role, Action: domain.AuditLogin, Success: true})
	m.log.Info().Str("email", email).Str("role", result.Role).Msg("session started")

	return sessionID, result, int(ttl.Seconds()), nil
}

// CheckAuthStatus recomputes the session from the stored credential. An
// expired or undecodable token is cleared without any upstream call; a
// valid token resolves from the cached profile when one exists, and
// otherwise is confirmed with a profile fetch that fills the cache. A
// failed fetch tears the session down.
func (m *SessionManager) CheckAuthStatus(ctx context.Context, sessionID string) domain.Session {
	session := domain.Session{State: domain.SessionChecking}

	token, err := m.store.Get(ctx, sessionID)
	if err != nil {
		m.log.Error().Err(err).Msg("token store read failed")
		session.State = domain.SessionUnauthenticated
		return session
	}
	if token == "" {
		session.State = domain.SessionUnauthenticated
		return session
	}

	if m.IsExpired(token) {
		m.teardown(ctx, sessionID)
		session.State = domain.SessionUnauthenticated
		return session
	}

	if profile, err := m.store.GetProfile(ctx, sessionID); err == nil && profile != nil {
		m.SetupAutoLogout(sessionID, token, nil)
		session.State = domain.SessionAuthenticated
		session.User = profile
		return session
	}

	profile, err := m.upstream.Profile(ctx, token)
	if err != nil {
		m.log.Warn().Err(err).Msg("profile fetch failed, clearing session")
		m.teardown(ctx, sessionID)
		session.State = domain.SessionUnauthenticated
		return session
	}
	if exp, ok := m.expiresAt(token); ok {
		if err := m.store.SetProfile(ctx, sessionID, profile, exp.Sub(m.now())); err != nil {
			m.log.Warn().Err(err).Msg("profile cache write failed")
		}
	}

	m.SetupAutoLogout(sessionID, token, nil)
	session.State = domain.SessionAuthenticated
	session.User = profile
	return session
}

// Token returns the stored credential after a local expiry check.
func (m *SessionManager) Token(ctx context.Context, sessionID string) (string, error) {
	token, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", domain.ErrNoSession
	}
	if m.IsExpired(token) {
		m.teardown(ctx, sessionID)
		return "", domain.ErrSessionExpired
	}
	return token, nil
}

// Logout cancels the pending auto-logout and clears the credential.
func (m *SessionManager) Logout(ctx context.Context, sessionID string) error {
	m.cancelTimer(sessionID)
	return m.store.Clear(ctx, sessionID)
}

// SetupAutoLogout schedules a one-shot logout at the credential's expiry.
// Re-arming for the same session first cancels the previous timer, so at
// most one logout is ever pending per session. A nil onLogout falls back to
// the manager's own expiry handling.
func (m *SessionManager) SetupAutoLogout(sessionID, token string, onLogout func(sessionID string)) {
	exp, ok := m.expiresAt(token)
	if !ok {
		return
	}
	remaining := exp.Sub(m.now())
	if remaining <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, exists := m.timers[sessionID]; exists {
		prev.Stop()
	}
	m.timers[sessionID] = time.AfterFunc(remaining, func() {
		m.expire(sessionID, onLogout)
	})
	metrics.SessionsActive.Set(float64(len(m.timers)))
}

// expire runs when an auto-logout timer fires.
func (m *SessionManager) expire(sessionID string, onLogout func(string)) {
	m.mu.Lock()
	delete(m.timers, sessionID)
	metrics.SessionsActive.Set(float64(len(m.timers)))
	m.mu.Unlock()

	if err := m.store.Clear(context.Background(), sessionID); err != nil {
		m.log.Error().Err(err).Msg("auto-logout failed to clear credential")
	}
	metrics.AutoLogoutsTotal.Inc()
	m.record(domain.AuditEntry{Action: domain.AuditAutoLogout, Success: true, Target: sessionID})
	m.log.Info().Msg("session expired, auto-logout executed")

	if onLogout != nil {
		onLogout(sessionID)
	}
}

// teardown clears both the stored credential and any pending timer.
func (m *SessionManager) teardown(ctx context.Context, sessionID string) {
	m.cancelTimer(sessionID)
	if err := m.store.Clear(ctx, sessionID); err != nil {
		m.log.Error().Err(err).Msg("failed to clear credential")
	}
}

func (m *SessionManager) cancelTimer(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, exists := m.timers[sessionID]; exists {
		t.Stop()
		delete(m.timers, sessionID)
		metrics.SessionsActive.Set(float64(len(m.timers)))
	}
}

// StopAll cancels every pending auto-logout. Called on shutdown so no timer
// outlives the process's dependencies.
func (m *SessionManager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.timers {
		t.Stop()
		delete(m.timers, id)
	}
	metrics.SessionsActive.Set(0)
}

// pendingTimers reports how many auto-logouts are armed.
func (m *SessionManager) pendingTimers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *SessionManager) record(entry domain.AuditEntry) {
	if m.audit == nil {
		return
	}
	m.audit.Record(entry)
}
