package domain

// SessionState is the lifecycle state of a browser session. Unauthenticated
// is reachable from every state (explicit logout, expiry, failed validation)
// and is the only state a fresh login restarts from.
type SessionState string

const (
	SessionUnknown         SessionState = "unknown"
	SessionChecking        SessionState = "checking"
	SessionAuthenticated   SessionState = "authenticated"
	SessionUnauthenticated SessionState = "unauthenticated"
)

// Session is derived at every status check from the stored credential and
// the profile cached beside it; the cache is filled by a profile fetch and
// dies with the credential.
type Session struct {
	State SessionState
	User  *Profile
}

// Authenticated reports whether the session holds a validated profile.
func (s Session) Authenticated() bool {
	return s.State == SessionAuthenticated && s.User != nil
}
