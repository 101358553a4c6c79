package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// sessionInfo carries the identity the session middleware attached to the
// request context.
type sessionInfo struct {
	SessionID string
	Token     string
	Email     string
	Role      string
}

// ctxSession extracts the authenticated identity from the echo context.
// Handlers behind the session middleware always have a token; anything
// else means the route was wired without it.
func ctxSession(c echo.Context) (sessionInfo, error) {
	token, _ := c.Get("token").(string)
	if token == "" {
		return sessionInfo{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	sid, _ := c.Get("session_id").(string)
	email, _ := c.Get("email").(string)
	role, _ := c.Get("role").(string)
	return sessionInfo{SessionID: sid, Token: token, Email: email, Role: role}, nil
}
