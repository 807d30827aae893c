package types

// ------------------------------
// Request Types
// ------------------------------

// PatientCreate holds the caller-supplied fields of a new patient.
// Identity, confidence score and raw text are computed by the server.
type PatientCreate struct {
	Name         string
	DateOfBirth  string
	Diagnosis    *string
	Prescription *string
}

// PatientUpdate replaces fields of an existing patient. Empty Name or
// DateOfBirth are left out of the body; a nil Diagnosis or Prescription is
// sent as an explicit null.
type PatientUpdate struct {
	Name         string  `json:"name,omitempty"`
	DateOfBirth  string  `json:"date_of_birth,omitempty"`
	Diagnosis    *string `json:"diagnosis"`
	Prescription *string `json:"prescription"`
}

// CreatePatientBody is the wire form of PatientCreate. The server-computed
// fields are always present and always null.
type CreatePatientBody struct {
	Name            string   `json:"name"`
	DateOfBirth     string   `json:"date_of_birth"`
	Diagnosis       *string  `json:"diagnosis"`
	Prescription    *string  `json:"prescription"`
	ConfidenceScore *float64 `json:"confidence_score"`
	RawText         *string  `json:"raw_text"`
}

// NewCreatePatientBody builds the wire form.
func NewCreatePatientBody(in PatientCreate) CreatePatientBody {
	return CreatePatientBody{
		Name:         in.Name,
		DateOfBirth:  in.DateOfBirth,
		Diagnosis:    in.Diagnosis,
		Prescription: in.Prescription,
	}
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
