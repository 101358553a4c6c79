package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/neurocare-ai/portal/internal/core/domain"
	"github.com/neurocare-ai/portal/internal/core/ports"
)

const defaultAuditLimit = 50

// AdminHandler relays doctor-management and statistics operations upstream
// and records the privileged mutations on the audit trail.
type AdminHandler struct {
	upstream ports.UpstreamGateway
	audit    ports.AuditRecorder
	reader   ports.AuditReader
}

func NewAdminHandler(upstream ports.UpstreamGateway, audit ports.AuditRecorder, reader ports.AuditReader) *AdminHandler {
	return &AdminHandler{upstream: upstream, audit: audit, reader: reader}
}

// ListDoctors godoc
// @Summary      List registered doctors
// @Tags         admin
// @Produce      json
// @Success      200  {array}  map[string]any
// @Router       /admin/doctors [get]
func (h *AdminHandler) ListDoctors(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	payload, err := h.upstream.ListDoctors(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// CreateDoctor godoc
// @Summary      Register a doctor account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        doctor  body  createDoctorRequest  true  "doctor details"
// @Success      201  {object}  map[string]any
// @Router       /admin/doctors [post]
func (h *AdminHandler) CreateDoctor(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if !domain.CanPerformAction(sess.Role, domain.ActionCreateDoctor) {
		return domain.ErrAccessDenied
	}

	var req createDoctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payload, err := h.upstream.CreateDoctor(c.Request().Context(), sess.Token, req)
	h.audit.Record(domain.AuditEntry{
		Actor:   sess.Email,
		Role:    sess.Role,
		Action:  domain.AuditDoctorCreated,
		Target:  req.Email,
		Success: err == nil,
	})
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusCreated, payload)
}

// DeleteDoctor godoc
// @Summary      Remove a doctor account
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "doctor id"
// @Success      200  {object}  map[string]any
// @Router       /admin/doctors/{id} [delete]
func (h *AdminHandler) DeleteDoctor(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if !domain.CanPerformAction(sess.Role, domain.ActionDeleteDoctor) {
		return domain.ErrAccessDenied
	}

	doctorID := c.Param("id")
	payload, err := h.upstream.DeleteDoctor(c.Request().Context(), sess.Token, doctorID)
	h.audit.Record(domain.AuditEntry{
		Actor:   sess.Email,
		Role:    sess.Role,
		Action:  domain.AuditDoctorDeleted,
		Target:  doctorID,
		Success: err == nil,
	})
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// SendVerificationOTP godoc
// @Summary      Send an email verification OTP to a doctor
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body  otpRequest  true  "doctor email"
// @Success      200  {object}  map[string]any
// @Router       /admin/doctors/verification-otp [post]
func (h *AdminHandler) SendVerificationOTP(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req otpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payload, err := h.upstream.SendDoctorVerificationOTP(c.Request().Context(), sess.Token, req.Email)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// VerifyDoctorEmail godoc
// @Summary      Verify a doctor's email with an OTP
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body  verifyEmailRequest  true  "email and OTP"
// @Success      200  {object}  map[string]any
// @Router       /admin/doctors/verify-email [post]
func (h *AdminHandler) VerifyDoctorEmail(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req verifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payload, err := h.upstream.VerifyDoctorEmail(c.Request().Context(), sess.Token, req.Email, req.OTP)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// DementiaStatistics godoc
// @Summary      Fetch dementia classification statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /admin/statistics/dementia-classification [get]
func (h *AdminHandler) DementiaStatistics(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	payload, err := h.upstream.DementiaStatistics(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// AuditTrail godoc
// @Summary      List recent audit entries
// @Tags         admin
// @Produce      json
// @Param        actor  query  string  false  "filter by actor email"
// @Param        limit  query  int     false  "maximum entries"
// @Success      200  {array}  domain.AuditEntry
// @Router       /admin/audit [get]
func (h *AdminHandler) AuditTrail(c echo.Context) error {
	limit := int64(defaultAuditLimit)
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}

	entries, err := h.reader.RecentByActor(c.Request().Context(), c.QueryParam("actor"), limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}
