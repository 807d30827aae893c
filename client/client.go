// Package client is a typed Go SDK for the healthcare demo backend: document
// upload, patient records and patient-aware chat.
//
// Every method issues exactly one HTTP request. Nothing is retried, cached
// or queued; failures go straight back to the caller.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AmzurATG/heatlhcare-demo/client/internal/api"
)

// DefaultBaseURL is the local development backend.
const DefaultBaseURL = "http://localhost:8000"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is safe for concurrent use. It holds only immutable configuration
// and the shared HTTP client.
type Client struct {
	baseURL   string
	http      *http.Client
	rest      *resty.Client
	logger    zerolog.Logger
	headers   http.Header
	apiKey    string // optional; sent as a Bearer token when set
	userAgent string

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for baseURL. Options are applied in order before
// the header and metrics wrappers are installed around the transport.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid baseURL %q", baseURL)
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  log.Logger,
		headers: make(http.Header),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.wrapTransport()

	c.rest = resty.NewWithClient(c.http).
		SetBaseURL(c.baseURL).
		SetLogger(restyLogger{l: c.logger})

	return c, nil
}

// NewFromEnv builds a Client from HEALTHCARE_* environment variables.
// Explicit opts are applied after the environment-derived ones.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg.APIURL, append(cfg.Options(), opts...)...)
}

// wrapTransport installs the default-header and metrics wrappers around
// whatever transport the options left in place.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hdr := &headerTransport{
		base:      base,
		headers:   c.headers.Clone(),
		apiKey:    c.apiKey,
		userAgent: c.userAgent,
	}
	c.http.Transport = instrumentTransport(hdr)
}

// BaseURL returns the backend address requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// --------------------------------------------------------------------
// Document operations - delegated to internal/api
// --------------------------------------------------------------------

// UploadDocument uploads one file for server-side processing.
func (c *Client) UploadDocument(ctx context.Context, file File) (DocumentProcessingResult, error) {
	return api.UploadDocument(ctx, c.rest, file)
}

// UploadDocuments uploads several files in one request and returns the raw
// response body.
func (c *Client) UploadDocuments(ctx context.Context, files []File) (json.RawMessage, error) {
	return api.UploadDocuments(ctx, c.rest, files)
}

// GetSupportedTypes returns the raw description of accepted document types.
func (c *Client) GetSupportedTypes(ctx context.Context) (json.RawMessage, error) {
	return api.GetSupportedTypes(ctx, c.rest)
}

// --------------------------------------------------------------------
// Patient operations - delegated to internal/api
// --------------------------------------------------------------------

// CreatePatient creates a patient. Any non-2xx status returns ErrCreatePatient.
func (c *Client) CreatePatient(ctx context.Context, in PatientCreate) (*Patient, error) {
	return api.CreatePatient(ctx, c.http, c.baseURL, in)
}

// GetPatients lists patients; an absent list yields an empty slice.
func (c *Client) GetPatients(ctx context.Context) ([]Patient, error) {
	return api.GetPatients(ctx, c.http, c.baseURL)
}

// GetPatient fetches one patient.
func (c *Client) GetPatient(ctx context.Context, patientID string) (*Patient, error) {
	return api.GetPatient(ctx, c.http, c.baseURL, patientID)
}

// UpdatePatient replaces fields of a patient.
func (c *Client) UpdatePatient(ctx context.Context, patientID string, in PatientUpdate) (*Patient, error) {
	return api.UpdatePatient(ctx, c.http, c.baseURL, patientID, in)
}

// DeletePatient deletes a patient.
func (c *Client) DeletePatient(ctx context.Context, patientID string) error {
	return api.DeletePatient(ctx, c.http, c.baseURL, patientID)
}

// CreatePatientFromFiles lets the server extract a new patient from documents.
func (c *Client) CreatePatientFromFiles(ctx context.Context, files []File) (*Patient, error) {
	return api.CreatePatientFromFiles(ctx, c.rest, files)
}

// SearchPatients searches by name or diagnosis. limit <= 0 uses the server default.
func (c *Client) SearchPatients(ctx context.Context, term string, limit int) (*PatientSearchResult, error) {
	return api.SearchPatients(ctx, c.http, c.baseURL, term, limit)
}

// GetPatientStats returns aggregate patient statistics.
func (c *Client) GetPatientStats(ctx context.Context) (PatientStats, error) {
	return api.GetPatientStats(ctx, c.http, c.baseURL)
}

// CheckHealth reports backend database connectivity.
func (c *Client) CheckHealth(ctx context.Context) (*HealthStatus, error) {
	return api.CheckHealth(ctx, c.http, c.baseURL)
}

// --------------------------------------------------------------------
// Chat operations - delegated to internal/api
// --------------------------------------------------------------------

// SendMessage sends a chat message.
func (c *Client) SendMessage(ctx context.Context, msg ChatMessage) (*ChatResponse, error) {
	return api.SendMessage(ctx, c.rest, msg)
}

// RefreshKnowledgeBase triggers a server-side index rebuild.
func (c *Client) RefreshKnowledgeBase(ctx context.Context) error {
	return api.RefreshKnowledgeBase(ctx, c.rest)
}

// SendMessageWithPatientContext asks a question with recent patients (at
// most ten) and any attached files as context.
func (c *Client) SendMessageWithPatientContext(ctx context.Context, sessionID, query string, files []File) (*ChatQueryResponse, error) {
	return api.SendMessageWithPatientContext(ctx, c.rest, sessionID, query, files)
}

// GetPatientContext fetches chat-formatted patient data. Empty patientIDs
// selects recent patients; limit <= 0 means DefaultContextLimit.
func (c *Client) GetPatientContext(ctx context.Context, patientIDs []string, limit int) (*PatientContext, error) {
	return api.GetPatientContext(ctx, c.rest, patientIDs, limit)
}

// StartChatSession opens a chat session.
func (c *Client) StartChatSession(ctx context.Context) (*ChatSession, error) {
	return api.StartChatSession(ctx, c.rest)
}

// UploadSessionFile attaches a file to a chat session.
func (c *Client) UploadSessionFile(ctx context.Context, sessionID string, file File) (*UploadAck, error) {
	return api.UploadSessionFile(ctx, c.rest, sessionID, file)
}

// ChatWithSessionFiles asks a question against the session's attached files.
func (c *Client) ChatWithSessionFiles(ctx context.Context, sessionID, query, patientContext string) (*ChatResponse, error) {
	return api.ChatWithSessionFiles(ctx, c.rest, sessionID, query, patientContext)
}

// ListSessionFiles lists files attached to a session.
func (c *Client) ListSessionFiles(ctx context.Context, sessionID string) ([]SessionFile, error) {
	return api.ListSessionFiles(ctx, c.rest, sessionID)
}

// DeleteChatSession ends a session.
func (c *Client) DeleteChatSession(ctx context.Context, sessionID string) error {
	return api.DeleteChatSession(ctx, c.rest, sessionID)
}

// GetCacheStats returns the server's file cache counters.
func (c *Client) GetCacheStats(ctx context.Context) (*CacheStats, error) {
	return api.GetCacheStats(ctx, c.rest)
}

// ClearCache empties the server's file cache.
func (c *Client) ClearCache(ctx context.Context) error {
	return api.ClearCache(ctx, c.rest)
}
