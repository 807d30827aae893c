package api

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/go-resty/resty/v2"

	apierrors "github.com/AmzurATG/heatlhcare-demo/client/internal/errors"
	"github.com/AmzurATG/heatlhcare-demo/client/internal/types"
)

// Fixed knobs of the patient-context chat query and context fetch.
const (
	contextMaxPatients  = 10
	DefaultContextLimit = 10
)

// SendMessageWithPatientContext asks a question with every recent patient
// (up to contextMaxPatients) in context, plus any attached documents.
func SendMessageWithPatientContext(ctx context.Context, rc *resty.Client, sessionID, query string, files []types.File) (*types.ChatQueryResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req := rc.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			"session_id":           sessionID,
			"query":                query,
			"include_all_patients": "true",
			"max_patients":         strconv.Itoa(contextMaxPatients),
		})
	attachFiles(req, "files", files)

	resp, err := req.Post("/api/patients/context/chat-query")
	if err != nil {
		return nil, apierrors.NewNetworkError("patient context chat", err)
	}
	if !resp.IsSuccess() {
		return nil, apierrors.ErrPatientContextChat
	}
	var out types.ChatQueryResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, apierrors.NewDecodeError("patient context chat", err)
	}
	out.Raw = cloneBody(resp.Body())
	return &out, nil
}

// GetPatientContext fetches patient data formatted for chat. An empty
// patientIDs selects recent patients; limit <= 0 means DefaultContextLimit.
func GetPatientContext(ctx context.Context, rc *resty.Client, patientIDs []string, limit int) (*types.PatientContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultContextLimit
	}
	req := rc.R().SetContext(ctx)
	if ids := types.JoinIDs(patientIDs); ids != "" {
		req.SetQueryParam("patient_ids", ids)
	}
	req.SetQueryParam("limit", strconv.Itoa(limit))
	req.SetQueryParam("include_recent", "true")

	resp, err := req.Get("/api/patients/context/chat")
	if err != nil {
		return nil, apierrors.NewNetworkError("patient context", err)
	}
	if !resp.IsSuccess() {
		return nil, apierrors.ErrPatientContext
	}
	var out types.PatientContext
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, apierrors.NewDecodeError("patient context", err)
	}
	out.Raw = cloneBody(resp.Body())
	return &out, nil
}
