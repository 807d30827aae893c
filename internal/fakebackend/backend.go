// Package fakebackend is an in-memory stand-in for the healthcare backend.
// It serves the same routes and response envelopes so the SDK and the CLI
// can be exercised end to end without a database or a language model.
package fakebackend

import (
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Backend holds the fake's state. Safe for concurrent use.
type Backend struct {
	log zerolog.Logger

	mu       sync.Mutex
	nextID   int
	patients map[int]*patient
	sessions map[string]*session
	docs     int // documents processed since the last cache clear

	failStatus atomic.Int32
	now        func() time.Time
}

type patient struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	DateOfBirth     string    `json:"date_of_birth"`
	Diagnosis       *string   `json:"diagnosis"`
	Prescription    *string   `json:"prescription"`
	ConfidenceScore *float64  `json:"confidence_score"`
	RawText         *string   `json:"raw_text"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type session struct {
	files []sessionFile
}

type sessionFile struct {
	FileID     string    `json:"file_id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	UploadedAt time.Time `json:"uploaded_at"`
	Size       int64     `json:"size"`
}

// New returns an empty backend.
func New(logger zerolog.Logger) *Backend {
	return &Backend{
		log:      logger,
		nextID:   1,
		patients: make(map[int]*patient),
		sessions: make(map[string]*session),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// FailWith makes every following request answer with status and a generic
// detail. Zero restores normal behaviour.
func (b *Backend) FailWith(status int) { b.failStatus.Store(int32(status)) }

// Router registers every backend route. Fixed paths are registered before
// the {id} routes they would otherwise shadow.
func (b *Backend) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(b.logRequests, b.injectFailure)

	p := r.PathPrefix("/api/patients").Subrouter()
	p.HandleFunc("/", b.createPatient).Methods(http.MethodPost)
	p.HandleFunc("/", b.listPatients).Methods(http.MethodGet)
	p.HandleFunc("/from-files", b.createPatientFromFiles).Methods(http.MethodPost)
	p.HandleFunc("/search/{term}", b.searchPatients).Methods(http.MethodGet)
	p.HandleFunc("/stats/overview", b.patientStats).Methods(http.MethodGet)
	p.HandleFunc("/health/check", b.healthCheck).Methods(http.MethodGet)
	p.HandleFunc("/context/chat", b.patientContext).Methods(http.MethodGet)
	p.HandleFunc("/context/chat-query", b.patientContextQuery).Methods(http.MethodPost)
	p.HandleFunc("/{id}", b.getPatient).Methods(http.MethodGet)
	p.HandleFunc("/{id}", b.updatePatient).Methods(http.MethodPut)
	p.HandleFunc("/{id}", b.deletePatient).Methods(http.MethodDelete)

	d := r.PathPrefix("/api/documents").Subrouter()
	d.HandleFunc("/upload", b.uploadDocument).Methods(http.MethodPost)
	d.HandleFunc("/upload-multiple", b.uploadDocuments).Methods(http.MethodPost)
	d.HandleFunc("/supported-types", b.supportedTypes).Methods(http.MethodGet)

	c := r.PathPrefix("/api/chat").Subrouter()
	c.HandleFunc("/", b.chat).Methods(http.MethodPost)
	c.HandleFunc("/refresh-knowledge-base", b.refreshKnowledgeBase).Methods(http.MethodPost)
	c.HandleFunc("/start-session", b.startSession).Methods(http.MethodPost)
	c.HandleFunc("/upload-file", b.uploadSessionFile).Methods(http.MethodPost)
	c.HandleFunc("/chat-enhanced", b.chatEnhanced).Methods(http.MethodPost)
	c.HandleFunc("/session/{id}/files", b.sessionFiles).Methods(http.MethodGet)
	c.HandleFunc("/session/{id}", b.deleteSession).Methods(http.MethodDelete)
	c.HandleFunc("/cache-stats", b.cacheStats).Methods(http.MethodGet)
	c.HandleFunc("/clear-cache", b.clearCache).Methods(http.MethodPost)

	return r
}

func (b *Backend) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		b.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", r.Header.Get("X-Request-ID")).
			Dur("elapsed", time.Since(start)).
			Msg("fake backend request")
	})
}

func (b *Backend) injectFailure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if code := int(b.failStatus.Load()); code != 0 {
			writeError(w, code, "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sortedPatients returns patients newest first. Callers hold b.mu.
func (b *Backend) sortedPatients() []*patient {
	out := make([]*patient, 0, len(b.patients))
	for _, p := range b.patients {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}
