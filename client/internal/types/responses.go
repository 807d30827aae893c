package types

import (
	"encoding/json"
)

// ------------------------------
// Response Types
// ------------------------------

// PatientEnvelope wraps single-patient responses.
type PatientEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Patient *Patient `json:"patient"`
}

// PatientListEnvelope wraps list responses. Patients is nil when the key is
// absent.
type PatientListEnvelope struct {
	Success  bool      `json:"success"`
	Patients []Patient `json:"patients"`
	Count    int       `json:"count"`
}

// PatientSearchResult is the search endpoint response.
type PatientSearchResult struct {
	Success    bool      `json:"success"`
	Patients   []Patient `json:"patients"`
	Count      int       `json:"count"`
	SearchTerm string    `json:"search_term"`
}

// PatientStats holds backend-defined aggregate counters.
type PatientStats map[string]any

// PatientStatsEnvelope wraps the stats endpoint.
type PatientStatsEnvelope struct {
	Success bool         `json:"success"`
	Stats   PatientStats `json:"stats"`
}

// HealthStatus reports backend database connectivity.
type HealthStatus struct {
	Success           bool   `json:"success"`
	DatabaseConnected bool   `json:"database_connected"`
	DatabaseType      string `json:"database_type"`
}

// PatientContext is patient data formatted for chat. Raw keeps the full
// body so fields added by the server are not lost.
type PatientContext struct {
	Success          bool             `json:"success"`
	Context          string           `json:"context"`
	PatientsCount    int              `json:"patients_count"`
	PatientSummaries []PatientSummary `json:"patient_summaries"`
	Raw              json.RawMessage  `json:"-"`
}

// ContextSummary describes what went into a context-aware chat answer.
type ContextSummary struct {
	PatientsIncluded   int      `json:"patients_included"`
	PatientNames       []string `json:"patient_names"`
	HasDocumentContext bool     `json:"has_document_context"`
	DocumentCount      int      `json:"document_count"`
}

// ChatQueryResponse is the answer to a chat query with patient context.
type ChatQueryResponse struct {
	Success        bool            `json:"success"`
	Response       string          `json:"response"`
	ContextSummary ContextSummary  `json:"context_summary"`
	Raw            json.RawMessage `json:"-"`
}

// UploadAck acknowledges a file attached to a chat session.
type UploadAck struct {
	Success        bool   `json:"success"`
	FileID         string `json:"file_id"`
	Message        string `json:"message"`
	AttachmentType string `json:"attachment_type"`
}

// SessionFilesResponse lists the files of a session.
type SessionFilesResponse struct {
	Files []SessionFile `json:"files"`
}

// CacheStats mirrors the server's file processing cache counters.
type CacheStats struct {
	ProcessedFilesCount int     `json:"processed_files_count"`
	SummariesCount      int     `json:"summaries_count"`
	CacheSizeMB         float64 `json:"cache_size_mb"`
	ExpiryTimeHours     float64 `json:"expiry_time_hours"`
}

// CacheStatsEnvelope wraps the cache statistics endpoint.
type CacheStatsEnvelope struct {
	CacheStats CacheStats `json:"cache_stats"`
	Message    string     `json:"message"`
}
