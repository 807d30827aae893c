package api

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/AmzurATG/heatlhcare-demo/client/internal/types"
)

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func isSuccess(code int) bool { return code >= 200 && code < 300 }

// discardBody drains a bounded amount so the connection can be reused.
func discardBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
}

// attachFiles adds each file as its own part under param.
func attachFiles(req *resty.Request, param string, files []types.File) {
	for _, f := range files {
		req.SetFileReader(param, f.Name, f.Reader)
	}
}

// emptyMultipart gives req a multipart body with no parts. resty only
// switches to multipart once a file or form field has been added.
func emptyMultipart(req *resty.Request) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.Close(); err != nil {
		return err
	}
	req.SetHeader("Content-Type", mw.FormDataContentType()).SetBody(buf.Bytes())
	return nil
}

// cloneBody copies a resty body so callers can keep it after the response
// is released.
func cloneBody(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
