package fakebackend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// chat POST /api/chat/
func (b *Backend) chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeBadRequest(w, "Message is required")
		return
	}
	b.mu.Lock()
	n := len(b.patients)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"response":           fmt.Sprintf("You asked: %s", req.Message),
		"session_id":         req.SessionID,
		"patients_available": n,
		"has_context":        n > 0,
	})
}

// refreshKnowledgeBase POST /api/chat/refresh-knowledge-base
func (b *Backend) refreshKnowledgeBase(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"message": "Knowledge base refreshed successfully"})
}

// startSession POST /api/chat/start-session
func (b *Backend) startSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	b.mu.Lock()
	b.sessions[id] = &session{}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"session_id": id})
}

// uploadSessionFile POST /api/chat/upload-file
func (b *Backend) uploadSessionFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeBadRequest(w, "No file selected")
		return
	}
	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		writeBadRequest(w, "No file selected")
		return
	}
	content, err := readPart(headers[0])
	if err != nil {
		writeBadRequest(w, "Unreadable file")
		return
	}
	ctype := headers[0].Header.Get("Content-Type")
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	f := sessionFile{
		FileID:     uuid.NewString(),
		Name:       headers[0].Filename,
		Type:       ctype,
		UploadedAt: b.now(),
		Size:       int64(len(content)),
	}

	// Unknown sessions are created on first upload.
	sid := r.FormValue("session_id")
	b.mu.Lock()
	s, ok := b.sessions[sid]
	if !ok {
		s = &session{}
		b.sessions[sid] = s
	}
	s.files = append(s.files, f)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"file_id":         f.FileID,
		"message":         fmt.Sprintf("File %s uploaded successfully", f.Name),
		"attachment_type": "file_upload",
	})
}

// chatEnhanced POST /api/chat/chat-enhanced
func (b *Backend) chatEnhanced(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeBadRequest(w, "Invalid form data")
		return
	}
	sid := r.FormValue("session_id")
	b.mu.Lock()
	s, ok := b.sessions[sid]
	var files int
	if ok {
		files = len(s.files)
		b.docs += files
	}
	b.mu.Unlock()
	if !ok {
		writeNotFound(w, "Chat session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"response":        fmt.Sprintf("Answer to %q using %d file(s).", r.FormValue("query"), files),
		"session_id":      sid,
		"has_context":     r.FormValue("patient_context") != "",
		"files_processed": files,
	})
}

// sessionFiles GET /api/chat/session/{id}/files
func (b *Backend) sessionFiles(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	s, ok := b.sessions[mux.Vars(r)["id"]]
	var files []sessionFile
	if ok {
		files = append([]sessionFile{}, s.files...)
	}
	b.mu.Unlock()
	if !ok {
		writeNotFound(w, "Chat session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

// deleteSession DELETE /api/chat/session/{id}
func (b *Backend) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	b.mu.Lock()
	_, ok := b.sessions[id]
	delete(b.sessions, id)
	b.mu.Unlock()
	if !ok {
		writeNotFound(w, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Session deleted"})
}

// cacheStats GET /api/chat/cache-stats
func (b *Backend) cacheStats(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	docs := b.docs
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"cache_stats": map[string]any{
			"processed_files_count": docs,
			"summaries_count":       docs,
			"cache_size_mb":         0.0,
			"expiry_time_hours":     24,
		},
		"message": "File cache statistics",
	})
}

// clearCache POST /api/chat/clear-cache
func (b *Backend) clearCache(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.docs = 0
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"message": "File cache cleared successfully"})
}
