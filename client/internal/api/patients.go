package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"

	apierrors "github.com/AmzurATG/heatlhcare-demo/client/internal/errors"
	"github.com/AmzurATG/heatlhcare-demo/client/internal/types"
)

var errMissingPatient = errors.New("response has no patient")

// CreatePatient posts a new patient. The server-computed fields are sent as
// explicit nulls; any non-2xx status yields ErrCreatePatient.
func CreatePatient(ctx context.Context, httpClient HTTPClient, baseURL string, in types.PatientCreate) (*types.Patient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(types.NewCreatePatientBody(in))
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/patients/", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("create patient", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		discardBody(resp)
		return nil, apierrors.ErrCreatePatient
	}
	return decodePatient(resp, "create patient")
}

// GetPatients lists patients. A response without a "patients" key yields an
// empty slice.
func GetPatients(ctx context.Context, httpClient HTTPClient, baseURL string) ([]types.Patient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/patients/", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("list patients", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		discardBody(resp)
		return nil, apierrors.ErrFetchPatients
	}

	var env types.PatientListEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, apierrors.NewDecodeError("list patients", err)
	}
	if env.Patients == nil {
		return []types.Patient{}, nil
	}
	return env.Patients, nil
}

// GetPatient retrieves one patient by identity.
func GetPatient(ctx context.Context, httpClient HTTPClient, baseURL, patientID string) (*types.Patient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(patientID, "patientId"); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/patients/%s", baseURL, url.PathEscape(patientID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("get patient", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		discardBody(resp)
		return nil, apierrors.ErrFetchPatient
	}
	return decodePatient(resp, "get patient")
}

// UpdatePatient replaces the given fields of a patient.
func UpdatePatient(ctx context.Context, httpClient HTTPClient, baseURL, patientID string, in types.PatientUpdate) (*types.Patient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(patientID, "patientId"); err != nil {
		return nil, err
	}
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/patients/%s", baseURL, url.PathEscape(patientID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("update patient", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		discardBody(resp)
		return nil, apierrors.ErrUpdatePatient
	}
	return decodePatient(resp, "update patient")
}

// DeletePatient removes a patient. The response body is ignored.
func DeletePatient(ctx context.Context, httpClient HTTPClient, baseURL, patientID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(patientID, "patientId"); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/api/patients/%s", baseURL, url.PathEscape(patientID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return apierrors.NewNetworkError("delete patient", err)
	}
	defer func() { _ = resp.Body.Close() }()
	discardBody(resp)

	if !isSuccess(resp.StatusCode) {
		return apierrors.ErrDeletePatient
	}
	return nil
}

// SearchPatients matches patients by name or diagnosis. limit <= 0 leaves the
// server default in place.
func SearchPatients(ctx context.Context, httpClient HTTPClient, baseURL, term string, limit int) (*types.PatientSearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(term, "searchTerm"); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/patients/search/%s", baseURL, url.PathEscape(term))
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("search patients", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		discardBody(resp)
		return nil, apierrors.ErrSearchPatients
	}
	var sr types.PatientSearchResult
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, apierrors.NewDecodeError("search patients", err)
	}
	if sr.Patients == nil {
		sr.Patients = []types.Patient{}
	}
	return &sr, nil
}

// GetPatientStats returns the backend's aggregate patient statistics.
func GetPatientStats(ctx context.Context, httpClient HTTPClient, baseURL string) (types.PatientStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/patients/stats/overview", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("patient stats", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		discardBody(resp)
		return nil, apierrors.ErrFetchPatientStats
	}
	var env types.PatientStatsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, apierrors.NewDecodeError("patient stats", err)
	}
	if env.Stats == nil {
		env.Stats = types.PatientStats{}
	}
	return env.Stats, nil
}

// CheckHealth reports whether the backend can reach its database.
func CheckHealth(ctx context.Context, httpClient HTTPClient, baseURL string) (*types.HealthStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/patients/health/check", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("health check", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		discardBody(resp)
		return nil, apierrors.ErrHealthCheck
	}
	var hs types.HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&hs); err != nil {
		return nil, apierrors.NewDecodeError("health check", err)
	}
	return &hs, nil
}

// CreatePatientFromFiles uploads documents for the server to extract a
// patient from. Every file goes under the repeated "files" field.
func CreatePatientFromFiles(ctx context.Context, rc *resty.Client, files []types.File) (*types.Patient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: at least one file is required", types.ErrInvalidArgument)
	}
	req := rc.R().SetContext(ctx)
	attachFiles(req, "files", files)

	resp, err := req.Post("/api/patients/from-files")
	if err != nil {
		return nil, apierrors.NewNetworkError("create patient from files", err)
	}
	if !resp.IsSuccess() {
		return nil, apierrors.ErrCreatePatient
	}
	var env types.PatientEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, apierrors.NewDecodeError("create patient from files", err)
	}
	if env.Patient == nil {
		return nil, apierrors.NewDecodeError("create patient from files", errMissingPatient)
	}
	return env.Patient, nil
}

func decodePatient(resp *http.Response, operation string) (*types.Patient, error) {
	var env types.PatientEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, apierrors.NewDecodeError(operation, err)
	}
	if env.Patient == nil {
		return nil, apierrors.NewDecodeError(operation, errMissingPatient)
	}
	return env.Patient, nil
}
