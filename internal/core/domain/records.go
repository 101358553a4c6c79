package domain

import "io"

// Patient, scan and visit records are owned by the upstream service; the
// portal passes them through without interpreting their internals. Only the
// payloads the portal itself assembles get concrete types here.

// ScanSubmission is a direct MRI classification request: patient details
// plus the scan image, forwarded as one multipart payload.
type ScanSubmission struct {
	PatientName  string
	MobileNumber string
	Age          int
	Gender       string // optional
	Filename     string
	File         io.Reader
}

// ImageKind selects the upload endpoint for patient imagery.
type ImageKind string

const (
	ImageMRI ImageKind = "mri"
	ImageEEG ImageKind = "eeg"
)

// ImageUpload attaches an MRI or EEG image to an existing patient record.
type ImageUpload struct {
	Kind        ImageKind
	Filename    string
	File        io.Reader
	Description string // optional
}
