package fakebackend

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

const maxUploadMemory = 32 << 20

// createPatient POST /api/patients/
func (b *Backend) createPatient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string  `json:"name"`
		DateOfBirth  string  `json:"date_of_birth"`
		Diagnosis    *string `json:"diagnosis"`
		Prescription *string `json:"prescription"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeBadRequest(w, "Patient name is required")
		return
	}

	b.mu.Lock()
	p := b.insertLocked(req.Name, req.DateOfBirth, req.Diagnosis, req.Prescription)
	out := *p
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Patient created successfully",
		"patient": out,
	})
}

func (b *Backend) insertLocked(name, dob string, diagnosis, prescription *string) *patient {
	now := b.now()
	p := &patient{
		ID:           b.nextID,
		Name:         name,
		DateOfBirth:  dob,
		Diagnosis:    diagnosis,
		Prescription: prescription,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	b.nextID++
	b.patients[p.ID] = p
	return p
}

// createPatientFromFiles POST /api/patients/from-files
func (b *Backend) createPatientFromFiles(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeBadRequest(w, "No files uploaded")
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeBadRequest(w, "No files uploaded")
		return
	}
	var text strings.Builder
	for _, h := range headers {
		content, err := readPart(h)
		if err != nil {
			writeBadRequest(w, "No valid files to process")
			return
		}
		text.Write(content)
		text.WriteString("\n")
	}
	first := headers[0].Filename
	name := strings.TrimSuffix(filepath.Base(first), filepath.Ext(first))
	raw := strings.TrimSpace(text.String())
	confidence := 0.5

	b.mu.Lock()
	p := b.insertLocked(name, "", nil, nil)
	p.RawText = &raw
	p.ConfidenceScore = &confidence
	b.docs += len(headers)
	out := *p
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Patient created from %d file(s)", len(headers)),
		"patient": out,
	})
}

// listPatients GET /api/patients/
func (b *Backend) listPatients(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	list := make([]patient, 0, len(b.patients))
	for _, p := range b.patients {
		list = append(list, *p)
	}
	b.mu.Unlock()
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"patients": list,
		"count":    len(list),
	})
}

func (b *Backend) lookup(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeNotFound(w, "Patient not found")
		return 0, false
	}
	return id, true
}

// getPatient GET /api/patients/{id}
func (b *Backend) getPatient(w http.ResponseWriter, r *http.Request) {
	id, ok := b.lookup(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	p, found := b.patients[id]
	var out patient
	if found {
		out = *p
	}
	b.mu.Unlock()
	if !found {
		writeNotFound(w, "Patient not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "patient": out})
}

// updatePatient PUT /api/patients/{id}
//
// Name and date of birth change only when non-empty. Diagnosis and
// prescription change whenever the key is present, so null clears them.
func (b *Backend) updatePatient(w http.ResponseWriter, r *http.Request) {
	id, ok := b.lookup(w, r)
	if !ok {
		return
	}
	var req map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	p, found := b.patients[id]
	if !found {
		writeNotFound(w, "Patient not found")
		return
	}
	// Decode everything before touching p so a bad field changes nothing.
	var name, dob string
	if raw, ok := req["name"]; ok {
		_ = json.Unmarshal(raw, &name)
	}
	if raw, ok := req["date_of_birth"]; ok {
		_ = json.Unmarshal(raw, &dob)
	}
	var diagnosis, prescription *string
	if raw, ok := req["diagnosis"]; ok {
		if err := json.Unmarshal(raw, &diagnosis); err != nil {
			writeBadRequest(w, "Invalid diagnosis")
			return
		}
	}
	if raw, ok := req["prescription"]; ok {
		if err := json.Unmarshal(raw, &prescription); err != nil {
			writeBadRequest(w, "Invalid prescription")
			return
		}
	}

	if name != "" {
		p.Name = name
	}
	if dob != "" {
		p.DateOfBirth = dob
	}
	if _, ok := req["diagnosis"]; ok {
		p.Diagnosis = diagnosis
	}
	if _, ok := req["prescription"]; ok {
		p.Prescription = prescription
	}
	p.UpdatedAt = b.now()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Patient updated successfully",
		"patient": *p,
	})
}

// deletePatient DELETE /api/patients/{id}
func (b *Backend) deletePatient(w http.ResponseWriter, r *http.Request) {
	id, ok := b.lookup(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	_, found := b.patients[id]
	delete(b.patients, id)
	b.mu.Unlock()
	if !found {
		writeNotFound(w, "Patient not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Patient deleted successfully",
	})
}

// searchPatients GET /api/patients/search/{term}
func (b *Backend) searchPatients(w http.ResponseWriter, r *http.Request) {
	term := mux.Vars(r)["term"]
	limit := 10
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	needle := strings.ToLower(term)

	b.mu.Lock()
	matches := []patient{}
	for _, p := range b.sortedPatients() {
		if len(matches) == limit {
			break
		}
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			(p.Diagnosis != nil && strings.Contains(strings.ToLower(*p.Diagnosis), needle)) {
			matches = append(matches, *p)
		}
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"patients":    matches,
		"count":       len(matches),
		"search_term": term,
	})
}

// patientStats GET /api/patients/stats/overview
func (b *Backend) patientStats(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	var withDiagnosis, withPrescription int
	for _, p := range b.patients {
		if p.Diagnosis != nil {
			withDiagnosis++
		}
		if p.Prescription != nil {
			withPrescription++
		}
	}
	total := len(b.patients)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats": map[string]any{
			"total_patients":    total,
			"with_diagnosis":    withDiagnosis,
			"with_prescription": withPrescription,
		},
	})
}

// healthCheck GET /api/patients/health/check
func (b *Backend) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":            true,
		"database_connected": true,
		"database_type":      "memory",
	})
}

func readPart(h *multipart.FileHeader) ([]byte, error) {
	f, err := h.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
