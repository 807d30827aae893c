package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/AmzurATG/heatlhcare-demo/client/internal/errors"
	"github.com/AmzurATG/heatlhcare-demo/client/internal/types"
)

func TestSendMessageWithPatientContext_FixedFieldsNoFiles(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/patients/context/chat-query", r.URL.Path)
		fields, files := multipartRequest(t, r)
		assert.Equal(t, []string{"s1"}, fields["session_id"])
		assert.Equal(t, []string{"hello"}, fields["query"])
		assert.Equal(t, []string{"true"}, fields["include_all_patients"])
		assert.Equal(t, []string{"10"}, fields["max_patients"])
		assert.Empty(t, files)
		_, _ = w.Write([]byte(`{"success":true,"response":"answer","context_summary":{"patients_included":2,"patient_names":["A","B"],"has_document_context":false,"document_count":0}}`))
	}))
	defer srv.Close()

	out, err := SendMessageWithPatientContext(context.Background(), restyFor(srv), "s1", "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "answer", out.Response)
	assert.Equal(t, 2, out.ContextSummary.PatientsIncluded)
	assert.Equal(t, []string{"A", "B"}, out.ContextSummary.PatientNames)
	assert.Contains(t, string(out.Raw), `"context_summary"`)
}

func TestSendMessageWithPatientContext_Files(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, files := multipartRequest(t, r)
		assert.Equal(t, []string{"r1.txt:x", "r2.txt:y"}, files["files"])
		_, _ = w.Write([]byte(`{"success":true,"response":"ok","context_summary":{"has_document_context":true,"document_count":2}}`))
	}))
	defer srv.Close()
	out, err := SendMessageWithPatientContext(context.Background(), restyFor(srv), "s1", "q", []types.File{
		types.NewFile("r1.txt", []byte("x")), types.NewFile("r2.txt", []byte("y")),
	})
	require.NoError(t, err)
	assert.True(t, out.ContextSummary.HasDocumentContext)
}

func TestSendMessageWithPatientContext_GenericError(t *testing.T) {
	t.Parallel()
	srv := statusServer(t, http.StatusBadRequest, `{"detail":"Invalid patient IDs format"}`)
	_, err := SendMessageWithPatientContext(context.Background(), restyFor(srv), "s1", "q", nil)
	assert.Equal(t, apierrors.ErrPatientContextChat, err)
}

func TestGetPatientContext_QueryString(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/patients/context/chat", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "p1,p2", q.Get("patient_ids"))
		assert.Equal(t, "5", q.Get("limit"))
		assert.Equal(t, "true", q.Get("include_recent"))
		_, _ = w.Write([]byte(`{"success":true,"context":"=== PATIENT DATABASE CONTEXT ===","patients_count":2,"patient_summaries":[{"id":1,"name":"A","diagnosis":"x"},{"id":2,"name":"B","diagnosis":"Not specified"}]}`))
	}))
	defer srv.Close()

	pc, err := GetPatientContext(context.Background(), restyFor(srv), []string{"p1", "p2"}, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, pc.PatientsCount)
	require.Len(t, pc.PatientSummaries, 2)
	assert.Equal(t, types.ID("1"), pc.PatientSummaries[0].ID)
	assert.NotEmpty(t, pc.Raw)
}

func TestGetPatientContext_DefaultsWithoutIDs(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		_, present := q["patient_ids"]
		assert.False(t, present)
		assert.Equal(t, "10", q.Get("limit"))
		assert.Equal(t, "true", q.Get("include_recent"))
		_, _ = w.Write([]byte(`{"success":true,"context":"No patient data available.","patients_count":0,"patient_summaries":[]}`))
	}))
	defer srv.Close()
	pc, err := GetPatientContext(context.Background(), restyFor(srv), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, pc.PatientsCount)
}

func TestGetPatientContext_GenericError(t *testing.T) {
	t.Parallel()
	srv := statusServer(t, http.StatusInternalServerError, "")
	_, err := GetPatientContext(context.Background(), restyFor(srv), []string{"1"}, 1)
	require.Error(t, err)
	assert.Equal(t, "Failed to get patient context", err.Error())
}
