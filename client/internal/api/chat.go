package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/go-resty/resty/v2"

	apierrors "github.com/AmzurATG/heatlhcare-demo/client/internal/errors"
	"github.com/AmzurATG/heatlhcare-demo/client/internal/types"
)

// SendMessage posts a chat message as JSON.
func SendMessage(ctx context.Context, rc *resty.Client, msg types.ChatMessage) (*types.ChatResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(&msg).
		Post("/api/chat/")
	if err != nil {
		return nil, apierrors.NewNetworkError("send message", err)
	}
	if !resp.IsSuccess() {
		return nil, apierrors.NewStatusError("send message", resp.StatusCode(), resp.Body())
	}
	var cr types.ChatResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return nil, apierrors.NewDecodeError("send message", err)
	}
	return &cr, nil
}

// RefreshKnowledgeBase asks the server to rebuild its index.
func RefreshKnowledgeBase(ctx context.Context, rc *resty.Client) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	resp, err := rc.R().SetContext(ctx).Post("/api/chat/refresh-knowledge-base")
	if err != nil {
		return apierrors.NewNetworkError("refresh knowledge base", err)
	}
	if !resp.IsSuccess() {
		return apierrors.NewStatusError("refresh knowledge base", resp.StatusCode(), resp.Body())
	}
	return nil
}

// StartChatSession opens a new server-side chat session.
func StartChatSession(ctx context.Context, rc *resty.Client) (*types.ChatSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := rc.R().SetContext(ctx).Post("/api/chat/start-session")
	if err != nil {
		return nil, apierrors.NewNetworkError("start chat session", err)
	}
	if !resp.IsSuccess() {
		return nil, apierrors.ErrStartSession
	}
	var s types.ChatSession
	if err := json.Unmarshal(resp.Body(), &s); err != nil {
		return nil, apierrors.NewDecodeError("start chat session", err)
	}
	return &s, nil
}

// UploadSessionFile attaches a file to a chat session. The server creates
// the session if it does not exist yet.
func UploadSessionFile(ctx context.Context, rc *resty.Client, sessionID string, file types.File) (*types.UploadAck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(sessionID, "sessionId"); err != nil {
		return nil, err
	}
	if file.Reader == nil {
		return nil, fmt.Errorf("%w: file has no content", types.ErrInvalidArgument)
	}
	resp, err := rc.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{"session_id": sessionID}).
		SetFileReader("file", file.Name, file.Reader).
		Post("/api/chat/upload-file")
	if err != nil {
		return nil, apierrors.NewNetworkError("upload session file", err)
	}
	if !resp.IsSuccess() {
		return nil, apierrors.NewStatusError("upload session file", resp.StatusCode(), resp.Body())
	}
	var ack types.UploadAck
	if err := json.Unmarshal(resp.Body(), &ack); err != nil {
		return nil, apierrors.NewDecodeError("upload session file", err)
	}
	return &ack, nil
}

// ChatWithSessionFiles asks a question using the files already attached to
// the session. patientContext is optional free text.
func ChatWithSessionFiles(ctx context.Context, rc *resty.Client, sessionID, query, patientContext string) (*types.ChatResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(sessionID, "sessionId"); err != nil {
		return nil, err
	}
	fields := map[string]string{"session_id": sessionID, "query": query}
	if patientContext != "" {
		fields["patient_context"] = patientContext
	}
	resp, err := rc.R().
		SetContext(ctx).
		SetMultipartFormData(fields).
		Post("/api/chat/chat-enhanced")
	if err != nil {
		return nil, apierrors.NewNetworkError("chat with session files", err)
	}
	if !resp.IsSuccess() {
		return nil, apierrors.NewStatusError("chat with session files", resp.StatusCode(), resp.Body())
	}
	var cr types.ChatResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return nil, apierrors.NewDecodeError("chat with session files", err)
	}
	return &cr, nil
}

// ListSessionFiles lists file metadata for a session.
func ListSessionFiles(ctx context.Context, rc *resty.Client, sessionID string) ([]types.SessionFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(sessionID, "sessionId"); err != nil {
		return nil, err
	}
	resp, err := rc.R().SetContext(ctx).Get("/api/chat/session/" + url.PathEscape(sessionID) + "/files")
	if err != nil {
		return nil, apierrors.NewNetworkError("list session files", err)
	}
	if !resp.IsSuccess() {
		return nil, apierrors.NewStatusError("list session files", resp.StatusCode(), resp.Body())
	}
	var fr types.SessionFilesResponse
	if err := json.Unmarshal(resp.Body(), &fr); err != nil {
		return nil, apierrors.NewDecodeError("list session files", err)
	}
	if fr.Files == nil {
		return []types.SessionFile{}, nil
	}
	return fr.Files, nil
}

// DeleteChatSession drops a session and its attached files.
func DeleteChatSession(ctx context.Context, rc *resty.Client, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(sessionID, "sessionId"); err != nil {
		return err
	}
	resp, err := rc.R().SetContext(ctx).Delete("/api/chat/session/" + url.PathEscape(sessionID))
	if err != nil {
		return apierrors.NewNetworkError("delete chat session", err)
	}
	if !resp.IsSuccess() {
		return apierrors.NewStatusError("delete chat session", resp.StatusCode(), resp.Body())
	}
	return nil
}

// GetCacheStats returns the server's file processing cache counters.
func GetCacheStats(ctx context.Context, rc *resty.Client) (*types.CacheStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := rc.R().SetContext(ctx).Get("/api/chat/cache-stats")
	if err != nil {
		return nil, apierrors.NewNetworkError("cache stats", err)
	}
	if !resp.IsSuccess() {
		return nil, apierrors.NewStatusError("cache stats", resp.StatusCode(), resp.Body())
	}
	var env types.CacheStatsEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, apierrors.NewDecodeError("cache stats", err)
	}
	return &env.CacheStats, nil
}

// ClearCache empties the server's file processing cache.
func ClearCache(ctx context.Context, rc *resty.Client) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	resp, err := rc.R().SetContext(ctx).Post("/api/chat/clear-cache")
	if err != nil {
		return apierrors.NewNetworkError("clear cache", err)
	}
	if !resp.IsSuccess() {
		return apierrors.NewStatusError("clear cache", resp.StatusCode(), resp.Body())
	}
	return nil
}
