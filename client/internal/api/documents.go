package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	apierrors "github.com/AmzurATG/heatlhcare-demo/client/internal/errors"
	"github.com/AmzurATG/heatlhcare-demo/client/internal/types"
)

// UploadDocument posts a single file under the "file" field.
// Non-2xx responses come back as *StatusError.
func UploadDocument(ctx context.Context, rc *resty.Client, file types.File) (types.DocumentProcessingResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if file.Reader == nil {
		return nil, fmt.Errorf("%w: file has no content", types.ErrInvalidArgument)
	}
	resp, err := rc.R().
		SetContext(ctx).
		SetFileReader("file", file.Name, file.Reader).
		Post("/api/documents/upload")
	if err != nil {
		return nil, apierrors.NewNetworkError("upload document", err)
	}
	if !resp.IsSuccess() {
		return nil, apierrors.NewStatusError("upload document", resp.StatusCode(), resp.Body())
	}

	var out types.DocumentProcessingResult
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, apierrors.NewDecodeError("upload document", err)
	}
	return out, nil
}

// UploadDocuments posts every file under the repeated "files" field and
// returns the body as received.
func UploadDocuments(ctx context.Context, rc *resty.Client, files []types.File) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req := rc.R().SetContext(ctx)
	if len(files) == 0 {
		// The server decides how to reject an empty upload.
		if err := emptyMultipart(req); err != nil {
			return nil, err
		}
	} else {
		attachFiles(req, "files", files)
	}

	resp, err := req.Post("/api/documents/upload-multiple")
	if err != nil {
		return nil, apierrors.NewNetworkError("upload documents", err)
	}
	if !resp.IsSuccess() {
		return nil, apierrors.NewStatusError("upload documents", resp.StatusCode(), resp.Body())
	}
	return json.RawMessage(cloneBody(resp.Body())), nil
}

// GetSupportedTypes returns the server's description of accepted document
// types as received.
func GetSupportedTypes(ctx context.Context, rc *resty.Client) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := rc.R().SetContext(ctx).Get("/api/documents/supported-types")
	if err != nil {
		return nil, apierrors.NewNetworkError("supported types", err)
	}
	if !resp.IsSuccess() {
		return nil, apierrors.NewStatusError("supported types", resp.StatusCode(), resp.Body())
	}
	return json.RawMessage(cloneBody(resp.Body())), nil
}
