package ports

import (
	"context"
	"encoding/json"

	"github.com/neurocare-ai/portal/internal/core/domain"
)

// PasswordReset carries an OTP-verified password change.
type PasswordReset struct {
	Email           string `json:"email"`
	OTP             string `json:"otp"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UpstreamGateway is the single chokepoint to the remote detection service.
// Every method resolves to either a payload or a normalized, human-readable
// error; transport failures never escape unwrapped. Patient, scan and visit
// payloads are relayed as raw JSON because the portal does not interpret
// them beyond display.
type UpstreamGateway interface {
	// Authentication.
	Login(ctx context.Context, email, password string) (domain.LoginResult, error)
	ForgotPassword(ctx context.Context, email string) (json.RawMessage, error)
	ResetPassword(ctx context.Context, reset PasswordReset) (json.RawMessage, error)
	Profile(ctx context.Context, token string) (*domain.Profile, error)

	// Admin operations.
	ListDoctors(ctx context.Context, token string) (json.RawMessage, error)
	CreateDoctor(ctx context.Context, token string, doctor any) (json.RawMessage, error)
	DeleteDoctor(ctx context.Context, token, doctorID string) (json.RawMessage, error)
	SendDoctorVerificationOTP(ctx context.Context, token, email string) (json.RawMessage, error)
	VerifyDoctorEmail(ctx context.Context, token, email, otp string) (json.RawMessage, error)
	DementiaStatistics(ctx context.Context, token string) (json.RawMessage, error)

	// Doctor operations.
	DoctorProfile(ctx context.Context, token string) (json.RawMessage, error)
	UpdateDoctorProfile(ctx context.Context, token string, profile any) (json.RawMessage, error)
	PatientsHistory(ctx context.Context, token string) (json.RawMessage, error)
	PatientVisits(ctx context.Context, token, patientID string) (json.RawMessage, error)
	ListPatients(ctx context.Context, token string) (json.RawMessage, error)
	CreatePatient(ctx context.Context, token string, patient any) (json.RawMessage, error)
	DeletePatient(ctx context.Context, token, patientID string) (json.RawMessage, error)
	ScanMRI(ctx context.Context, token string, scan domain.ScanSubmission) (json.RawMessage, error)
	ScanResult(ctx context.Context, token, scanID string) (json.RawMessage, error)
	UploadPatientImage(ctx context.Context, token, patientID string, upload domain.ImageUpload) (json.RawMessage, error)
	PatientImages(ctx context.Context, token, patientID string) (json.RawMessage, error)

	// Reachable reports whether the upstream answers HTTP at all. Used by
	// the readiness probe only.
	Reachable(ctx context.Context) error
}
