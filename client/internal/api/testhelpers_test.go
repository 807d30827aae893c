package api

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

func failingHTTP() *http.Client { return &http.Client{Transport: &errRT{}} }

func failingRC() *resty.Client {
	return resty.NewWithClient(failingHTTP()).SetBaseURL("http://unreachable.invalid")
}

func restyFor(srv *httptest.Server) *resty.Client {
	return resty.NewWithClient(srv.Client()).SetBaseURL(srv.URL)
}

func statusServer(t *testing.T, code int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// multipartRequest parses an incoming multipart body and returns its fields
// and file contents keyed by part name.
func multipartRequest(t *testing.T, r *http.Request) (map[string][]string, map[string][]string) {
	t.Helper()
	require.NoError(t, r.ParseMultipartForm(10<<20))
	files := map[string][]string{}
	for name, hs := range r.MultipartForm.File {
		for _, h := range hs {
			f, err := h.Open()
			require.NoError(t, err)
			b, err := io.ReadAll(f)
			require.NoError(t, err)
			_ = f.Close()
			files[name] = append(files[name], h.Filename+":"+string(b))
		}
	}
	return r.MultipartForm.Value, files
}
