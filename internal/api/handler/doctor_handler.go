package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neurocare-ai/portal/internal/core/domain"
	"github.com/neurocare-ai/portal/internal/core/ports"
)

// DoctorHandler relays the clinical operations upstream: patient management,
// MRI scan submission and medical image uploads.
type DoctorHandler struct {
	upstream ports.UpstreamGateway
	audit    ports.AuditRecorder
}

func NewDoctorHandler(upstream ports.UpstreamGateway, audit ports.AuditRecorder) *DoctorHandler {
	return &DoctorHandler{upstream: upstream, audit: audit}
}

// Profile godoc
// @Summary      Fetch the caller's doctor profile
// @Tags         doctor
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /doctor/profile [get]
func (h *DoctorHandler) Profile(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	payload, err := h.upstream.DoctorProfile(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// UpdateProfile godoc
// @Summary      Update the caller's doctor profile
// @Tags         doctor
// @Accept       json
// @Produce      json
// @Param        profile  body  updateDoctorProfileRequest  true  "profile fields"
// @Success      200  {object}  map[string]any
// @Router       /doctor/profile [put]
func (h *DoctorHandler) UpdateProfile(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateDoctorProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payload, err := h.upstream.UpdateDoctorProfile(c.Request().Context(), sess.Token, req)
	h.audit.Record(domain.AuditEntry{
		Actor:   sess.Email,
		Role:    sess.Role,
		Action:  domain.AuditProfileEdited,
		Success: err == nil,
	})
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// PatientsHistory godoc
// @Summary      List the caller's patient visit history
// @Tags         doctor
// @Produce      json
// @Success      200  {array}  map[string]any
// @Router       /doctor/patients-history [get]
func (h *DoctorHandler) PatientsHistory(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	payload, err := h.upstream.PatientsHistory(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// PatientVisits godoc
// @Summary      List visits for one patient
// @Tags         doctor
// @Produce      json
// @Param        id  path  string  true  "patient id"
// @Success      200  {array}  map[string]any
// @Router       /doctor/patients/{id}/visits [get]
func (h *DoctorHandler) PatientVisits(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	payload, err := h.upstream.PatientVisits(c.Request().Context(), sess.Token, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// ListPatients godoc
// @Summary      List the caller's patients
// @Tags         doctor
// @Produce      json
// @Success      200  {array}  map[string]any
// @Router       /doctor/patients [get]
func (h *DoctorHandler) ListPatients(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	payload, err := h.upstream.ListPatients(c.Request().Context(), sess.Token)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// CreatePatient godoc
// @Summary      Register a patient
// @Tags         doctor
// @Accept       json
// @Produce      json
// @Param        patient  body  createPatientRequest  true  "patient details"
// @Success      201  {object}  map[string]any
// @Router       /doctor/patients [post]
func (h *DoctorHandler) CreatePatient(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if !domain.CanPerformAction(sess.Role, domain.ActionCreatePatient) {
		return domain.ErrAccessDenied
	}

	var req createPatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payload, err := h.upstream.CreatePatient(c.Request().Context(), sess.Token, req)
	h.audit.Record(domain.AuditEntry{
		Actor:   sess.Email,
		Role:    sess.Role,
		Action:  domain.AuditPatientAdded,
		Target:  req.Name,
		Success: err == nil,
	})
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusCreated, payload)
}

// DeletePatient godoc
// @Summary      Remove a patient
// @Tags         doctor
// @Produce      json
// @Param        id  path  string  true  "patient id"
// @Success      200  {object}  map[string]any
// @Router       /doctor/patients/{id} [delete]
func (h *DoctorHandler) DeletePatient(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if !domain.CanPerformAction(sess.Role, domain.ActionDeletePatient) {
		return domain.ErrAccessDenied
	}

	patientID := c.Param("id")
	payload, err := h.upstream.DeletePatient(c.Request().Context(), sess.Token, patientID)
	h.audit.Record(domain.AuditEntry{
		Actor:   sess.Email,
		Role:    sess.Role,
		Action:  domain.AuditPatientRemove,
		Target:  patientID,
		Success: err == nil,
	})
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// ScanMRI godoc
// @Summary      Submit an MRI scan for classification
// @Tags         doctor
// @Accept       multipart/form-data
// @Produce      json
// @Param        patient_name   formData  string  true   "patient name"
// @Param        mobile_number  formData  string  true   "patient mobile"
// @Param        age            formData  int     true   "patient age"
// @Param        gender         formData  string  false  "patient gender"
// @Param        file           formData  file    true   "MRI image"
// @Success      200  {object}  map[string]any
// @Router       /doctor/scan-mri [post]
func (h *DoctorHandler) ScanMRI(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if !domain.CanPerformAction(sess.Role, domain.ActionScanMRI) {
		return domain.ErrAccessDenied
	}

	var req scanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	file, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer file.Close()

	payload, err := h.upstream.ScanMRI(c.Request().Context(), sess.Token, domain.ScanSubmission{
		PatientName:  req.PatientName,
		MobileNumber: req.MobileNumber,
		Age:          req.Age,
		Gender:       req.Gender,
		Filename:     header.Filename,
		File:         file,
	})
	h.audit.Record(domain.AuditEntry{
		Actor:   sess.Email,
		Role:    sess.Role,
		Action:  domain.AuditScanSubmitted,
		Target:  req.PatientName,
		Success: err == nil,
	})
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// ScanResult godoc
// @Summary      Fetch a previously submitted scan result
// @Tags         doctor
// @Produce      json
// @Param        id  path  string  true  "scan id"
// @Success      200  {object}  map[string]any
// @Router       /doctor/scans/{id} [get]
func (h *DoctorHandler) ScanResult(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	payload, err := h.upstream.ScanResult(c.Request().Context(), sess.Token, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// UploadMRI godoc
// @Summary      Attach an MRI image to a patient record
// @Tags         doctor
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           path      string  true   "patient id"
// @Param        file         formData  file    true   "MRI image"
// @Param        description  formData  string  false  "image description"
// @Success      200  {object}  map[string]any
// @Router       /doctor/patients/{id}/upload-mri [post]
func (h *DoctorHandler) UploadMRI(c echo.Context) error {
	return h.uploadImage(c, domain.ImageMRI)
}

// UploadEEG godoc
// @Summary      Attach an EEG recording to a patient record
// @Tags         doctor
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           path      string  true   "patient id"
// @Param        file         formData  file    true   "EEG recording"
// @Param        description  formData  string  false  "image description"
// @Success      200  {object}  map[string]any
// @Router       /doctor/patients/{id}/upload-eeg [post]
func (h *DoctorHandler) UploadEEG(c echo.Context) error {
	return h.uploadImage(c, domain.ImageEEG)
}

func (h *DoctorHandler) uploadImage(c echo.Context, kind domain.ImageKind) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	action := domain.ActionUploadMRI
	if kind == domain.ImageEEG {
		action = domain.ActionUploadEEG
	}
	if !domain.CanPerformAction(sess.Role, action) {
		return domain.ErrAccessDenied
	}

	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	file, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer file.Close()

	patientID := c.Param("id")
	payload, err := h.upstream.UploadPatientImage(c.Request().Context(), sess.Token, patientID, domain.ImageUpload{
		Kind:        kind,
		Filename:    header.Filename,
		File:        file,
		Description: c.FormValue("description"),
	})
	h.audit.Record(domain.AuditEntry{
		Actor:   sess.Email,
		Role:    sess.Role,
		Action:  domain.AuditImageUploaded,
		Target:  patientID,
		Detail:  string(kind),
		Success: err == nil,
	})
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}

// PatientImages godoc
// @Summary      List a patient's uploaded images
// @Tags         doctor
// @Produce      json
// @Param        id  path  string  true  "patient id"
// @Success      200  {array}  map[string]any
// @Router       /doctor/patients/{id}/images [get]
func (h *DoctorHandler) PatientImages(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	payload, err := h.upstream.PatientImages(c.Request().Context(), sess.Token, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, payload)
}
