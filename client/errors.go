package client

import (
	apierrors "github.com/AmzurATG/heatlhcare-demo/client/internal/errors"
	"github.com/AmzurATG/heatlhcare-demo/client/internal/types"
)

// ErrInvalidArgument wraps every locally rejected input, such as an empty
// patient ID or a missing file.
var ErrInvalidArgument = types.ErrInvalidArgument

// StatusError carries the status code and body of a failed document or
// chat request.
type StatusError = apierrors.StatusError

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool { return apierrors.IsStatus(err, code) }

// Fixed-message errors returned on any non-2xx status. Compare with errors.Is.
var (
	ErrCreatePatient      = apierrors.ErrCreatePatient
	ErrFetchPatients      = apierrors.ErrFetchPatients
	ErrFetchPatient       = apierrors.ErrFetchPatient
	ErrUpdatePatient      = apierrors.ErrUpdatePatient
	ErrDeletePatient      = apierrors.ErrDeletePatient
	ErrSearchPatients     = apierrors.ErrSearchPatients
	ErrFetchPatientStats  = apierrors.ErrFetchPatientStats
	ErrHealthCheck        = apierrors.ErrHealthCheck
	ErrPatientContextChat = apierrors.ErrPatientContextChat
	ErrPatientContext     = apierrors.ErrPatientContext
	ErrStartSession       = apierrors.ErrStartSession
)
