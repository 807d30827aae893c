package fakebackend

import (
	"net/http"
	"path/filepath"
	"strings"
)

var supportedExtensions = []string{".pdf", ".docx", ".txt", ".png", ".jpg", ".jpeg"}

func supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range supportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

func processResult(name string, size int) map[string]any {
	if !supported(name) {
		return map[string]any{
			"success":  false,
			"filename": name,
			"message":  "Unsupported file type",
		}
	}
	return map[string]any{
		"success":  true,
		"filename": name,
		"size":     size,
		"message":  "Document processed successfully",
	}
}

// uploadDocument POST /api/documents/upload
func (b *Backend) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeBadRequest(w, "No file uploaded")
		return
	}
	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		writeBadRequest(w, "No file uploaded")
		return
	}
	content, err := readPart(headers[0])
	if err != nil {
		writeBadRequest(w, "Unreadable file")
		return
	}
	if !supported(headers[0].Filename) {
		writeBadRequest(w, "Unsupported file type")
		return
	}
	b.mu.Lock()
	b.docs++
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, processResult(headers[0].Filename, len(content)))
}

// uploadDocuments POST /api/documents/upload-multiple
func (b *Backend) uploadDocuments(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeBadRequest(w, "No files uploaded")
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeBadRequest(w, "No files uploaded")
		return
	}
	results := make([]map[string]any, 0, len(headers))
	processed := 0
	for _, h := range headers {
		content, err := readPart(h)
		if err != nil {
			results = append(results, map[string]any{"success": false, "filename": h.Filename, "message": err.Error()})
			continue
		}
		res := processResult(h.Filename, len(content))
		if res["success"] == true {
			processed++
		}
		results = append(results, res)
	}
	b.mu.Lock()
	b.docs += processed
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         processed > 0,
		"results":         results,
		"total_files":     len(headers),
		"processed_files": processed,
	})
}

// supportedTypes GET /api/documents/supported-types
func (b *Backend) supportedTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"supported_types":  supportedExtensions,
		"max_file_size_mb": maxUploadMemory >> 20,
	})
}
