package errors

import (
	"errors"
	"fmt"
)

// Fixed-message failures. The text is part of the public contract and is
// shown to end users verbatim.
//
//nolint:staticcheck // capitalised user-facing messages
var (
	ErrCreatePatient      = errors.New("Failed to create patient")
	ErrFetchPatients      = errors.New("Failed to fetch patients")
	ErrFetchPatient       = errors.New("Failed to fetch patient")
	ErrUpdatePatient      = errors.New("Failed to update patient")
	ErrDeletePatient      = errors.New("Failed to delete patient")
	ErrSearchPatients     = errors.New("Failed to search patients")
	ErrFetchPatientStats  = errors.New("Failed to fetch patient stats")
	ErrHealthCheck        = errors.New("Health check failed")
	ErrPatientContextChat = errors.New("Failed to send message with patient context")
	ErrPatientContext     = errors.New("Failed to get patient context")
	ErrStartSession       = errors.New("Failed to start chat session")
)

// NewNetworkError wraps a transport failure with the operation name. The
// cause stays reachable through errors.Is / errors.As.
func NewNetworkError(operation string, err error) error {
	return fmt.Errorf("%s: %w", operation, err)
}

// NewDecodeError wraps a response decoding failure.
func NewDecodeError(operation string, err error) error {
	return fmt.Errorf("%s: decode response: %w", operation, err)
}
