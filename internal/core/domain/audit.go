package domain

import "time"

// Audit actions recorded for the clinical trail.
const (
	AuditLogin         = "login"
	AuditLogout        = "logout"
	AuditAutoLogout    = "auto_logout"
	AuditDoctorCreated = "doctor_created"
	AuditDoctorDeleted = "doctor_deleted"
	AuditPatientAdded  = "patient_added"
	AuditPatientRemove = "patient_removed"
	AuditScanSubmitted = "scan_submitted"
	AuditImageUploaded = "image_uploaded"
	AuditProfileEdited = "profile_edited"
)

// AuditEntry records one actor action against the portal.
type AuditEntry struct {
	Actor     string    `json:"actor"`
	Role      string    `json:"role"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Success   bool      `json:"success"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
