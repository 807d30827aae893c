package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/AmzurATG/heatlhcare-demo/client/internal/errors"
	"github.com/AmzurATG/heatlhcare-demo/client/internal/types"
)

func TestCreatePatient_SendsNullServerFieldsAndUnwrapsEnvelope(t *testing.T) {
	t.Parallel()
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/patients/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Patient created successfully","patient":{"id":7,"name":"Jane","date_of_birth":"1980-01-02"}}`))
	}))
	defer srv.Close()

	p, err := CreatePatient(context.Background(), srv.Client(), srv.URL, types.PatientCreate{Name: "Jane", DateOfBirth: "1980-01-02"})
	require.NoError(t, err)
	assert.Equal(t, types.ID("7"), p.ID)
	assert.Equal(t, "Jane", p.Name)

	for _, k := range []string{"diagnosis", "prescription", "confidence_score", "raw_text"} {
		v, present := got[k]
		assert.True(t, present, "%s must be present", k)
		assert.Nil(t, v, "%s must be null", k)
	}
}

func TestCreatePatient_ConfidenceAndRawTextNullEvenWithDiagnosis(t *testing.T) {
	t.Parallel()
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"patient":{"id":"a"}}`))
	}))
	defer srv.Close()

	_, err := CreatePatient(context.Background(), srv.Client(), srv.URL, types.PatientCreate{
		Name: "Jane", DateOfBirth: "1980-01-02", Diagnosis: types.StringPtr("flu"), Prescription: types.StringPtr("rest"),
	})
	require.NoError(t, err)
	assert.Equal(t, "flu", got["diagnosis"])
	assert.Equal(t, "rest", got["prescription"])
	assert.Nil(t, got["confidence_score"])
	assert.Nil(t, got["raw_text"])
}

func TestPatients_NonOKUseFixedMessages(t *testing.T) {
	t.Parallel()
	srv := statusServer(t, http.StatusInternalServerError, `{"detail":"database exploded"}`)
	ctx := context.Background()

	_, err := CreatePatient(ctx, srv.Client(), srv.URL, types.PatientCreate{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, "Failed to create patient", err.Error())

	_, err = GetPatients(ctx, srv.Client(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch patients", err.Error())

	_, err = GetPatient(ctx, srv.Client(), srv.URL, "1")
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch patient", err.Error())

	_, err = UpdatePatient(ctx, srv.Client(), srv.URL, "1", types.PatientUpdate{Name: "y"})
	require.Error(t, err)
	assert.Equal(t, "Failed to update patient", err.Error())

	err = DeletePatient(ctx, srv.Client(), srv.URL, "1")
	require.Error(t, err)
	assert.Equal(t, "Failed to delete patient", err.Error())
	assert.True(t, errors.Is(err, apierrors.ErrDeletePatient))
}

func TestPatients_NotFoundAlsoFixedMessage(t *testing.T) {
	t.Parallel()
	srv := statusServer(t, http.StatusNotFound, `{"detail":"Patient not found"}`)
	_, err := GetPatient(context.Background(), srv.Client(), srv.URL, "99")
	assert.Equal(t, apierrors.ErrFetchPatient, err)
}

func TestGetPatients_MissingKeyIsEmpty(t *testing.T) {
	t.Parallel()
	srv := statusServer(t, http.StatusOK, `{}`)
	got, err := GetPatients(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestGetPatients_List(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/patients/", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"patients":[{"id":1,"name":"A"},{"id":2,"name":"B"}],"count":2}`))
	}))
	defer srv.Close()
	got, err := GetPatients(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, types.ID("2"), got[1].ID)
}

func TestGetPatient_Path(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/patients/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"patient":{"id":42,"name":"Z","diagnosis":"asthma"}}`))
	}))
	defer srv.Close()
	p, err := GetPatient(context.Background(), srv.Client(), srv.URL, "42")
	require.NoError(t, err)
	require.NotNil(t, p.Diagnosis)
	assert.Equal(t, "asthma", *p.Diagnosis)
}

func TestUpdatePatient_PassesExplicitNulls(t *testing.T) {
	t.Parallel()
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/patients/5", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"patient":{"id":5,"name":"New"}}`))
	}))
	defer srv.Close()
	p, err := UpdatePatient(context.Background(), srv.Client(), srv.URL, "5", types.PatientUpdate{Name: "New", Prescription: types.StringPtr("x")})
	require.NoError(t, err)
	assert.Equal(t, "New", p.Name)
	v, ok := got["diagnosis"]
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, "x", got["prescription"])
	_, hasDOB := got["date_of_birth"]
	assert.False(t, hasDOB)
}

func TestDeletePatient_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/patients/3", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"message":"Patient deleted successfully"}`))
	}))
	defer srv.Close()
	require.NoError(t, DeletePatient(context.Background(), srv.Client(), srv.URL, "3"))
}

func TestPatients_IDIsPathEscaped(t *testing.T) {
	t.Parallel()
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"success":true,"patient":{"id":1,"name":"Z"}}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	const id = "%zz/../1"
	_, err := GetPatient(ctx, srv.Client(), srv.URL, id)
	require.NoError(t, err)
	_, err = UpdatePatient(ctx, srv.Client(), srv.URL, id, types.PatientUpdate{Name: "Z"})
	require.NoError(t, err)
	require.NoError(t, DeletePatient(ctx, srv.Client(), srv.URL, id))

	want := "/api/patients/%25zz%2F..%2F1"
	assert.Equal(t, []string{want, want, want}, paths)
}

func TestPatients_EmptyIDRejectedLocally(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	hc := failingHTTP()
	_, err := GetPatient(ctx, hc, "http://x", "")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
	_, err = UpdatePatient(ctx, hc, "http://x", " ", types.PatientUpdate{})
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
	assert.ErrorIs(t, DeletePatient(ctx, hc, "http://x", ""), types.ErrInvalidArgument)
}

func TestPatients_NetworkErrorsPropagate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	hc := failingHTTP()
	_, err := GetPatients(ctx, hc, "http://x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apierrors.ErrFetchPatients)
	assert.Contains(t, err.Error(), "boom")
}

func TestPatients_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := GetPatients(ctx, failingHTTP(), "http://x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPatients_DecodeErrors(t *testing.T) {
	t.Parallel()
	srv := statusServer(t, http.StatusOK, `{bad json`)
	_, err := GetPatient(context.Background(), srv.Client(), srv.URL, "1")
	assert.Error(t, err)
	_, err = GetPatients(context.Background(), srv.Client(), srv.URL)
	assert.Error(t, err)

	noPatient := statusServer(t, http.StatusOK, `{"success":true}`)
	_, err = GetPatient(context.Background(), noPatient.Client(), noPatient.URL, "1")
	assert.ErrorIs(t, err, errMissingPatient)
}

func TestSearchPatients(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/patients/search/diabetes type 2", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"success":true,"patients":[{"id":1}],"count":1,"search_term":"diabetes type 2"}`))
	}))
	defer srv.Close()
	sr, err := SearchPatients(context.Background(), srv.Client(), srv.URL, "diabetes type 2", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, sr.Count)
	assert.Equal(t, "diabetes type 2", sr.SearchTerm)

	bad := statusServer(t, http.StatusInternalServerError, "")
	_, err = SearchPatients(context.Background(), bad.Client(), bad.URL, "x", 0)
	assert.Equal(t, apierrors.ErrSearchPatients, err)
}

func TestGetPatientStatsAndHealth(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/patients/stats/overview":
			_, _ = w.Write([]byte(`{"success":true,"stats":{"total_patients":3}}`))
		case "/api/patients/health/check":
			_, _ = w.Write([]byte(`{"success":true,"database_connected":true,"database_type":"sqlite"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	stats, err := GetPatientStats(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats["total_patients"])

	hs, err := CheckHealth(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.True(t, hs.DatabaseConnected)
	assert.Equal(t, "sqlite", hs.DatabaseType)

	bad := statusServer(t, http.StatusServiceUnavailable, "")
	_, err = CheckHealth(context.Background(), bad.Client(), bad.URL)
	assert.Equal(t, apierrors.ErrHealthCheck, err)
	_, err = GetPatientStats(context.Background(), bad.Client(), bad.URL)
	assert.Equal(t, apierrors.ErrFetchPatientStats, err)
}

func TestCreatePatientFromFiles(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/patients/from-files", r.URL.Path)
		_, files := multipartRequest(t, r)
		assert.Equal(t, []string{"a.pdf:A", "b.png:B"}, files["files"])
		_, _ = w.Write([]byte(`{"success":true,"patient":{"id":9,"name":"Extracted"}}`))
	}))
	defer srv.Close()
	p, err := CreatePatientFromFiles(context.Background(), restyFor(srv), []types.File{
		types.NewFile("a.pdf", []byte("A")), types.NewFile("b.png", []byte("B")),
	})
	require.NoError(t, err)
	assert.Equal(t, "Extracted", p.Name)

	_, err = CreatePatientFromFiles(context.Background(), restyFor(srv), nil)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	bad := statusServer(t, http.StatusBadRequest, `{"detail":"No files uploaded"}`)
	_, err = CreatePatientFromFiles(context.Background(), restyFor(bad), []types.File{types.NewFile("a", []byte("a"))})
	assert.Equal(t, apierrors.ErrCreatePatient, err)
}
