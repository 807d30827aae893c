package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// ID is a server-assigned identity. The backend emits integers from its
// SQLite store and strings from Supabase, so both decode into ID.
type ID string

// String returns the identity as sent in URLs.
func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON always encodes as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// Timestamp is a server time. The backend sends ISO 8601 values that may
// lack a zone offset; those are read as UTC.
type Timestamp struct{ time.Time }

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON accepts RFC 3339, zone-less ISO 8601 or null.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	if v, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = v
		return nil
	}
	for _, layout := range naiveLayouts {
		if v, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = v
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognised format %q", s)
}

// MarshalJSON encodes RFC 3339 with nanoseconds.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// Patient is a patient record as returned by the backend.
type Patient struct {
	ID              ID         `json:"id"`
	Name            string     `json:"name"`
	DateOfBirth     string     `json:"date_of_birth"`
	Diagnosis       *string    `json:"diagnosis,omitempty"`
	Prescription    *string    `json:"prescription,omitempty"`
	ConfidenceScore *float64   `json:"confidence_score,omitempty"`
	RawText         *string    `json:"raw_text,omitempty"`
	CreatedAt       *Timestamp `json:"created_at,omitempty"`
	UpdatedAt       *Timestamp `json:"updated_at,omitempty"`
}

// DocumentProcessingResult is the backend's outcome for an uploaded file.
// Its shape belongs to the server; it is passed through untouched.
type DocumentProcessingResult map[string]any

// Success reports the "success" flag when the backend sets one.
func (r DocumentProcessingResult) Success() bool {
	v, _ := r["success"].(bool)
	return v
}

// Message returns the "message" field, or "".
func (r DocumentProcessingResult) Message() string {
	v, _ := r["message"].(string)
	return v
}

// ChatMessage is a user query with an optional session.
type ChatMessage struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the assistant reply.
type ChatResponse struct {
	Response          string `json:"response"`
	SessionID         string `json:"session_id,omitempty"`
	PatientsAvailable int    `json:"patients_available,omitempty"`
	HasContext        bool   `json:"has_context,omitempty"`
	FilesProcessed    int    `json:"files_processed,omitempty"`
}

// ChatSession wraps the session identity handed out by start-session.
type ChatSession struct {
	SessionID string `json:"session_id"`
}

// SessionFile describes a file attached to a chat session. Content is not
// returned by the backend.
type SessionFile struct {
	FileID     string     `json:"file_id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	UploadedAt *Timestamp `json:"uploaded_at,omitempty"`
	Size       int64      `json:"size"`
}

// PatientSummary is the short form used in chat context responses.
type PatientSummary struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Diagnosis string `json:"diagnosis"`
}

// ------------------------------
// Upload payloads
// ------------------------------

// File is one multipart file part.
type File struct {
	Name   string
	Reader io.Reader
}

// NewFile wraps in-memory content.
func NewFile(name string, content []byte) File {
	return File{Name: name, Reader: bytes.NewReader(content)}
}

// OpenFile reads path into memory and names the part after its base name.
func OpenFile(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	return NewFile(filepath.Base(path), b), nil
}
