package handler

import "github.com/neurocare-ai/portal/internal/core/domain"

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Role      string `json:"role"`
	Dashboard string `json:"dashboard"`
}

type sessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	User          *domain.Profile `json:"user,omitempty"`
	Dashboard     string          `json:"dashboard"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	OTP             string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type createDoctorRequest struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	Degree          string `json:"degree" validate:"omitempty,oneof=MD MBBS DM DNB"`
	Specialization  string `json:"specialization" validate:"required"`
	ExperienceYears int    `json:"experience_years" validate:"gte=0,lt=100"`
	MobileNumber    string `json:"mobile_number" validate:"required"`
}

type otpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type updateDoctorProfileRequest struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Degree          string `json:"degree" validate:"omitempty,oneof=MD MBBS DM DNB"`
	Specialization  string `json:"specialization" validate:"required"`
	ExperienceYears int    `json:"experience_years" validate:"gte=0,lt=100"`
	MobileNumber    string `json:"mobile_number" validate:"required"`
}

type createPatientRequest struct {
	Name         string `json:"name" validate:"required"`
	MobileNumber string `json:"mobile_number" validate:"required"`
	Age          int    `json:"age" validate:"required,gt=0,lt=150"`
	Gender       string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
}

// scanRequest binds the multipart fields of a scan submission. The MRI
// file itself is read from the form separately.
type scanRequest struct {
	PatientName  string `form:"patient_name" validate:"required"`
	MobileNumber string `form:"mobile_number" validate:"required"`
	Age          int    `form:"age" validate:"required,gt=0,lt=150"`
	Gender       string `form:"gender" validate:"omitempty,oneof=Male Female Other"`
}
