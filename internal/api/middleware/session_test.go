package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/neurocare-ai/portal/internal/core/domain"
)

type stubSessions struct {
	token    string
	tokenErr error
}

func (s *stubSessions) Login(context.Context, string, string) (string, domain.LoginResult, int, error) {
	return "", domain.LoginResult{}, 0, nil
}

func (s *stubSessions) CheckAuthStatus(context.Context, string) domain.Session {
	return domain.Session{State: domain.SessionUnauthenticated}
}

func (s *stubSessions) Token(context.Context, string) (string, error) {
	return s.token, s.tokenErr
}

func (s *stubSessions) Logout(context.Context, string) error { return nil }

func sessionRequest(t *testing.T, cookie string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/doctor/patients", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "neurocare_session", Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func doctorToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"email": "dr@clinic.test",
		"role":  domain.RoleDoctor,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestSession_InjectsIdentity(t *testing.T) {
	c, _ := sessionRequest(t, "sid-1")
	mw := Session(&stubSessions{token: doctorToken(t)}, "neurocare_session")

	var gotRole, gotEmail, gotToken string
	err := mw(func(c echo.Context) error {
		gotRole, _ = c.Get("role").(string)
		gotEmail, _ = c.Get("email").(string)
		gotToken, _ = c.Get("token").(string)
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if gotRole != domain.RoleDoctor {
		t.Fatalf("role = %q", gotRole)
	}
	if gotEmail != "dr@clinic.test" {
		t.Fatalf("email = %q", gotEmail)
	}
	if gotToken == "" {
		t.Fatalf("token not injected")
	}
}

func TestSession_MissingCookie(t *testing.T) {
	c, _ := sessionRequest(t, "")
	mw := Session(&stubSessions{token: doctorToken(t)}, "neurocare_session")

	err := mw(func(c echo.Context) error {
		t.Fatalf("next must not run")
		return nil
	})(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestSession_ExpiredPropagatesFailClosed(t *testing.T) {
	c, _ := sessionRequest(t, "sid-1")
	mw := Session(&stubSessions{tokenErr: domain.ErrSessionExpired}, "neurocare_session")

	err := mw(func(c echo.Context) error { return nil })(c)
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestSession_UndecodableTokenYieldsNoRole(t *testing.T) {
	c, _ := sessionRequest(t, "sid-1")
	mw := Session(&stubSessions{token: "opaque-but-not-a-jwt"}, "neurocare_session")

	var gotRole string
	roleWasSet := false
	err := mw(func(c echo.Context) error {
		gotRole, roleWasSet = c.Get("role").(string)
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if roleWasSet && gotRole != "" {
		t.Fatalf("undecodable token must not produce a role, got %q", gotRole)
	}
}
