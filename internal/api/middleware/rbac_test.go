package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/neurocare-ai/portal/internal/core/domain"
)

func rbacContext(role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}
	return c, rec
}

func TestRBAC_AllowsListedRole(t *testing.T) {
	c, rec := rbacContext(domain.RoleDoctor)

	called := false
	handler := RBAC(domain.RoleDoctor)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_AdminSatisfiesEverything(t *testing.T) {
	c, _ := rbacContext(domain.RoleAdmin)

	called := false
	handler := RBAC(domain.RoleDoctor)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("admin must pass a doctor-gated route")
	}
}

func TestRBAC_ForbidsRoleMismatch(t *testing.T) {
	c, _ := rbacContext(domain.RoleDoctor)

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("next handler must not run")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestRBAC_MatchesAccessPolicy(t *testing.T) {
	roles := []string{domain.RoleAdmin, domain.RoleDoctor, "nurse", ""}
	for _, required := range []string{domain.RoleAdmin, domain.RoleDoctor} {
		for _, role := range roles {
			c, _ := rbacContext(role)
			err := RBAC(required)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})(c)
			if allowed := err == nil; allowed != domain.HasAccess(role, required) {
				t.Errorf("role %q required %q: middleware says %v, policy says %v",
					role, required, allowed, domain.HasAccess(role, required))
			}
		}
	}
}

func TestRBAC_DeniesMissingAndUnknownRoles(t *testing.T) {
	for _, role := range []string{"", "nurse"} {
		c, _ := rbacContext(role)
		handler := RBAC(domain.RoleDoctor)(func(c echo.Context) error { return nil })
		if err := handler(c); !errors.Is(err, domain.ErrAccessDenied) {
			t.Errorf("role %q: expected ErrAccessDenied, got %v", role, err)
		}
	}
}
