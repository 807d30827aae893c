package fakebackend

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type patientSummary struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Diagnosis string `json:"diagnosis"`
}

func summarize(p *patient) patientSummary {
	s := patientSummary{ID: p.ID, Name: p.Name, Diagnosis: "Not specified"}
	if p.Diagnosis != nil {
		s.Diagnosis = *p.Diagnosis
	}
	return s
}

func formatContext(ps []*patient) string {
	if len(ps) == 0 {
		return "No patient records available."
	}
	var sb strings.Builder
	for _, p := range ps {
		s := summarize(p)
		fmt.Fprintf(&sb, "Patient %d: %s, born %s, diagnosis: %s\n", s.ID, s.Name, p.DateOfBirth, s.Diagnosis)
	}
	return sb.String()
}

// selectLocked picks the requested patients, or the most recent ones when
// ids is empty. Callers hold b.mu.
func (b *Backend) selectLocked(ids []int, limit int) []*patient {
	if len(ids) == 0 {
		recent := b.sortedPatients()
		if len(recent) > limit {
			recent = recent[:limit]
		}
		return recent
	}
	out := make([]*patient, 0, len(ids))
	for _, id := range ids {
		if p, ok := b.patients[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func parseIDs(raw string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// patientContext GET /api/patients/context/chat
func (b *Backend) patientContext(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ids, err := parseIDs(q.Get("patient_ids"))
	if err != nil {
		writeBadRequest(w, "Invalid patient IDs format")
		return
	}
	limit := 10
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if len(ids) == 0 && q.Get("include_recent") == "false" {
		limit = 0
	}

	b.mu.Lock()
	selected := b.selectLocked(ids, limit)
	summaries := make([]patientSummary, 0, len(selected))
	for _, p := range selected {
		summaries = append(summaries, summarize(p))
	}
	text := formatContext(selected)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"context":           text,
		"patients_count":    len(summaries),
		"patient_summaries": summaries,
	})
}

// patientContextQuery POST /api/patients/context/chat-query
func (b *Backend) patientContextQuery(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeBadRequest(w, "Invalid form data")
		return
	}
	query := strings.TrimSpace(r.FormValue("query"))
	if query == "" {
		writeBadRequest(w, "Query is required")
		return
	}
	maxPatients := 10
	if v, err := strconv.Atoi(r.FormValue("max_patients")); err == nil && v > 0 {
		maxPatients = v
	}
	ids, err := parseIDs(r.FormValue("patient_ids"))
	if err != nil {
		writeBadRequest(w, "Invalid patient IDs format")
		return
	}
	if len(ids) == 0 && r.FormValue("include_all_patients") != "true" {
		maxPatients = 0
	}
	docs := len(r.MultipartForm.File["files"])

	b.mu.Lock()
	selected := b.selectLocked(ids, maxPatients)
	names := make([]string, 0, len(selected))
	for _, p := range selected {
		names = append(names, p.Name)
	}
	b.docs += docs
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"response": fmt.Sprintf("Answer to %q using %d patient(s) and %d document(s).", query, len(names), docs),
		"context_summary": map[string]any{
			"patients_included":    len(names),
			"patient_names":        names,
			"has_document_context": docs > 0,
			"document_count":       docs,
		},
		"session_id": r.FormValue("session_id"),
	})
}
