package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/neurocare-ai/portal/internal/core/domain"
)

// RBAC gates a route group on the access policy. The policy owns the rules
// (admin implicitly satisfies every requirement, unknown or missing roles
// are denied); this middleware only extracts the role and delegates.
func RBAC(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if !domain.HasAccess(role, requiredRole) {
				return domain.ErrAccessDenied
			}
			return next(c)
		}
	}
}
