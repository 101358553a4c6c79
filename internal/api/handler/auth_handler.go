package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neurocare-ai/portal/internal/core/domain"
	"github.com/neurocare-ai/portal/internal/core/ports"
)

// AuthHandler owns the unauthenticated surface: login, session introspection,
// logout and the password recovery flow.
type AuthHandler struct {
	sessions   ports.SessionService
	upstream   ports.UpstreamGateway
	audit      ports.AuditRecorder
	cookieName string
	secure     bool
}

func NewAuthHandler(sessions ports.SessionService, upstream ports.UpstreamGateway, audit ports.AuditRecorder, cookieName string, secure bool) *AuthHandler {
	return &AuthHandler{
		sessions:   sessions,
		upstream:   upstream,
		audit:      audit,
		cookieName: cookieName,
		secure:     secure,
	}
}

// Login godoc
// @Summary      Authenticate a clinician
// @Description  Verifies credentials upstream and opens a cookie session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  loginRequest  true  "login credentials"
// @Success      200  {object}  loginResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sessionID, result, maxAge, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(sessionID, maxAge))

	return c.JSON(http.StatusOK, loginResponse{
		Role:      result.Role,
		Dashboard: domain.DashboardRoute(result.Role),
	})
}

// Session godoc
// @Summary      Report the caller's session state
// @Description  Returns whether the session is authenticated and where to route
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	cookie, err := c.Cookie(h.cookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusOK, sessionResponse{
			Authenticated: false,
			Dashboard:     domain.RouteLogin,
		})
	}

	session := h.sessions.CheckAuthStatus(c.Request().Context(), cookie.Value)
	if !session.Authenticated() {
		c.SetCookie(h.sessionCookie("", -1))
		return c.JSON(http.StatusOK, sessionResponse{
			Authenticated: false,
			Dashboard:     domain.RouteLogin,
		})
	}

	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: true,
		User:          session.User,
		Dashboard:     domain.RouteForProfile(session.User),
	})
}

// Logout godoc
// @Summary      Close the caller's session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(h.cookieName)
	if err == nil && cookie.Value != "" {
		if err := h.sessions.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
		email, _ := c.Get("email").(string)
		role, _ := c.Get("role").(string)
		h.audit.Record(domain.AuditEntry{
			Actor:   email,
			Role:    role,
			Action:  domain.AuditLogout,
			Success: true,
		})
	}

	c.SetCookie(h.sessionCookie("", -1))

	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// ForgotPassword godoc
// @Summary      Request a password reset OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  forgotPasswordRequest  true  "account email"
// @Success      200  {object}  map[string]any
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payload, err := h.upstream.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// ResetPassword godoc
// @Summary      Reset a password with an OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  resetPasswordRequest  true  "reset payload"
// @Success      200  {object}  map[string]any
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payload, err := h.upstream.ResetPassword(c.Request().Context(), ports.PasswordReset{
		Email:           req.Email,
		OTP:             req.OTP,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
