package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/neurocare-ai/portal/internal/core/domain"
	"github.com/neurocare-ai/portal/internal/core/ports"
)

// The detection service's route table is a fixed external contract; paths
// and field names here must not drift from it.

func (c *Client) Login(ctx context.Context, email, password string) (domain.LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}
	var result domain.LoginResult
	if err := c.doJSON(ctx, "login", http.MethodPost, "/login", payload, "", &result); err != nil {
		return domain.LoginResult{}, err
	}
	return result, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (json.RawMessage, error) {
	payload := map[string]string{"email": email}
	return c.doBody(ctx, "forgot_password", http.MethodPost, "/forgot-password", payload, "")
}

func (c *Client) ResetPassword(ctx context.Context, reset ports.PasswordReset) (json.RawMessage, error) {
	return c.doBody(ctx, "reset_password", http.MethodPost, "/reset-password", reset, "")
}

func (c *Client) Profile(ctx context.Context, token string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := c.doJSON(ctx, "profile", http.MethodGet, "/profile", nil, token, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ── Admin operations ─────────────────────────────────────────────────────────

func (c *Client) ListDoctors(ctx context.Context, token string) (json.RawMessage, error) {
	return c.doBody(ctx, "list_doctors", http.MethodGet, "/admin/doctors", nil, token)
}

func (c *Client) CreateDoctor(ctx context.Context, token string, doctor any) (json.RawMessage, error) {
	return c.doBody(ctx, "create_doctor", http.MethodPost, "/admin/create-doctor", doctor, token)
}

func (c *Client) DeleteDoctor(ctx context.Context, token, doctorID string) (json.RawMessage, error) {
	return c.doBody(ctx, "delete_doctor", http.MethodDelete, "/admin/doctors/"+url.PathEscape(doctorID), nil, token)
}

func (c *Client) SendDoctorVerificationOTP(ctx context.Context, token, email string) (json.RawMessage, error) {
	payload := map[string]string{"email": email}
	return c.doBody(ctx, "send_doctor_otp", http.MethodPost, "/admin/send-doctor-verification-otp", payload, token)
}

func (c *Client) VerifyDoctorEmail(ctx context.Context, token, email, otp string) (json.RawMessage, error) {
	payload := map[string]string{"email": email, "otp": otp}
	return c.doBody(ctx, "verify_doctor_email", http.MethodPost, "/admin/verify-doctor-email", payload, token)
}

func (c *Client) DementiaStatistics(ctx context.Context, token string) (json.RawMessage, error) {
	return c.doBody(ctx, "dementia_statistics", http.MethodGet, "/admin/statistics/dementia-classification", nil, token)
}

// ── Doctor operations ────────────────────────────────────────────────────────

func (c *Client) DoctorProfile(ctx context.Context, token string) (json.RawMessage, error) {
	return c.doBody(ctx, "doctor_profile", http.MethodGet, "/doctor/profile", nil, token)
}

func (c *Client) UpdateDoctorProfile(ctx context.Context, token string, profile any) (json.RawMessage, error) {
	return c.doBody(ctx, "update_doctor_profile", http.MethodPut, "/doctor/profile", profile, token)
}

func (c *Client) PatientsHistory(ctx context.Context, token string) (json.RawMessage, error) {
	return c.doBody(ctx, "patients_history", http.MethodGet, "/doctor/patients-history", nil, token)
}

func (c *Client) PatientVisits(ctx context.Context, token, patientID string) (json.RawMessage, error) {
	return c.doBody(ctx, "patient_visits", http.MethodGet, "/doctor/patients/"+url.PathEscape(patientID)+"/visits", nil, token)
}

func (c *Client) ListPatients(ctx context.Context, token string) (json.RawMessage, error) {
	return c.doBody(ctx, "list_patients", http.MethodGet, "/doctor/patients", nil, token)
}

func (c *Client) CreatePatient(ctx context.Context, token string, patient any) (json.RawMessage, error) {
	return c.doBody(ctx, "create_patient", http.MethodPost, "/doctor/patients", patient, token)
}

func (c *Client) DeletePatient(ctx context.Context, token, patientID string) (json.RawMessage, error) {
	return c.doBody(ctx, "delete_patient", http.MethodDelete, "/doctor/patients/"+url.PathEscape(patientID), nil, token)
}

// ScanMRI submits patient details plus the scan image for classification.
func (c *Client) ScanMRI(ctx context.Context, token string, scan domain.ScanSubmission) (json.RawMessage, error) {
	fields := map[string]string{
		"patient_name":  scan.PatientName,
		"mobile_number": scan.MobileNumber,
		"age":           strconv.Itoa(scan.Age),
		"gender":        scan.Gender,
	}
	return c.doMultipart(ctx, "scan_mri", "/doctor/scan-mri", token, fields, "file", scan.Filename, scan.File)
}

func (c *Client) ScanResult(ctx context.Context, token, scanID string) (json.RawMessage, error) {
	return c.doBody(ctx, "scan_result", http.MethodGet, "/doctor/scans/"+url.PathEscape(scanID), nil, token)
}

// UploadPatientImage attaches an MRI or EEG image to a patient record.
func (c *Client) UploadPatientImage(ctx context.Context, token, patientID string, upload domain.ImageUpload) (json.RawMessage, error) {
	op := "upload_mri"
	endpoint := "/upload-mri"
	if upload.Kind == domain.ImageEEG {
		op = "upload_eeg"
		endpoint = "/upload-eeg"
	}
	fields := map[string]string{"description": upload.Description}
	path := "/doctor/patients/" + url.PathEscape(patientID) + endpoint
	return c.doMultipart(ctx, op, path, token, fields, "file", upload.Filename, upload.File)
}

func (c *Client) PatientImages(ctx context.Context, token, patientID string) (json.RawMessage, error) {
	return c.doBody(ctx, "patient_images", http.MethodGet, "/doctor/patients/"+url.PathEscape(patientID)+"/images", nil, token)
}

// Reachable reports whether the upstream answers HTTP at all. Any status
// counts as reachable; only transport failure does not.
func (c *Client) Reachable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// doBody is doJSON for callers that relay the raw payload unchanged.
func (c *Client) doBody(ctx context.Context, op, method, path string, payload any, token string) (json.RawMessage, error) {
	var body json.RawMessage
	if err := c.doJSON(ctx, op, method, path, payload, token, &body); err != nil {
		return nil, err
	}
	return body, nil
}
