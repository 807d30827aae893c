package client

import (
	"github.com/AmzurATG/heatlhcare-demo/client/internal/api"
	"github.com/AmzurATG/heatlhcare-demo/client/internal/types"
)

// Public type aliases so SDK consumers can import only the client package.
type (
	// Domain entities
	ID             = types.ID
	Timestamp      = types.Timestamp
	Patient        = types.Patient
	PatientSummary = types.PatientSummary
	ChatSession    = types.ChatSession
	SessionFile    = types.SessionFile
	File           = types.File

	// Requests
	PatientCreate = types.PatientCreate
	PatientUpdate = types.PatientUpdate
	ChatMessage   = types.ChatMessage

	// Responses
	DocumentProcessingResult = types.DocumentProcessingResult
	PatientSearchResult      = types.PatientSearchResult
	PatientStats             = types.PatientStats
	HealthStatus             = types.HealthStatus
	ChatResponse             = types.ChatResponse
	ChatQueryResponse        = types.ChatQueryResponse
	ContextSummary           = types.ContextSummary
	PatientContext           = types.PatientContext
	UploadAck                = types.UploadAck
	CacheStats               = types.CacheStats
)

// DefaultContextLimit is the patient limit GetPatientContext uses when
// given limit <= 0.
const DefaultContextLimit = api.DefaultContextLimit

// NewFile wraps in-memory content as an upload.
func NewFile(name string, content []byte) File { return types.NewFile(name, content) }

// OpenFile reads a file from disk into an upload.
func OpenFile(path string) (File, error) { return types.OpenFile(path) }

// StringPtr returns a pointer to s, for optional request fields.
func StringPtr(s string) *string { return types.StringPtr(s) }
