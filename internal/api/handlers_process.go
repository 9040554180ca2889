package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/praveena-03/docinsight/internal/pipeline"
	"github.com/praveena-03/docinsight/internal/report"
)

// ProcessingResponse is the envelope returned by the single-document
// endpoint.
type ProcessingResponse struct {
	Success        bool          `json:"success"`
	Filename       string        `json:"filename"`
	ProcessingTime float64       `json:"processing_time"`
	FileSize       int64         `json:"file_size"`
	Result         report.Report `json:"result"`
}

func (s *Server) handleProcessSingle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		jsonError(w, "Only PDF files are supported", http.StatusBadRequest)
		return
	}

	path, size, err := s.saveUpload(file, s.cfg.UploadDir)
	if err != nil {
		jsonError(w, err.Error(), uploadErrStatus(err))
		return
	}
	defer os.Remove(path)

	cfg := parsePersonaConfig(r.FormValue("persona_config"))

	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.ProcessingTimeout)
	defer cancel()

	type outcome struct {
		rep report.Report
	}
	done := make(chan outcome, 1)
	go func() {
		rep, _ := s.orchestrator.ProcessSingle(ctx, pipeline.DocumentInput{Path: path, Filename: filename}, cfg)
		done <- outcome{rep: rep}
	}()

	select {
	case <-ctx.Done():
		jsonError(w, "Processing timeout exceeded", http.StatusRequestTimeout)
		return
	case out := <-done:
		writeJSON(w, http.StatusOK, ProcessingResponse{
			Success:        true,
			Filename:       filename,
			ProcessingTime: time.Since(start).Seconds(),
			FileSize:       size,
			Result:         out.rep,
		})
	}
}

func (s *Server) handleProcessCollection(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "No files provided", http.StatusBadRequest)
		return
	}
	for _, fh := range files {
		if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
			jsonError(w, fmt.Sprintf("File %s is not a PDF", fh.Filename), http.StatusBadRequest)
			return
		}
	}

	filenames := make([]string, 0, len(files))
	for _, fh := range files {
		filenames = append(filenames, sanitizeFilename(fh.Filename))
	}
	task := s.orchestrator.NewCollectionTask(filenames)

	collectionDir := filepath.Join(s.cfg.InputDir, "collection_"+task.ID)
	if err := os.MkdirAll(collectionDir, 0o755); err != nil {
		jsonError(w, "failed to create collection dir", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(collectionDir)

	inputs := make([]pipeline.DocumentInput, 0, len(files))
	for i, fh := range files {
		f, err := fh.Open()
		if err != nil {
			jsonError(w, fmt.Sprintf("failed to open %s", filenames[i]), http.StatusBadRequest)
			return
		}
		path := filepath.Join(collectionDir, filenames[i])
		if _, err := s.saveUploadAt(f, path); err != nil {
			f.Close()
			jsonError(w, err.Error(), uploadErrStatus(err))
			return
		}
		f.Close()
		inputs = append(inputs, pipeline.DocumentInput{Path: path, Filename: filenames[i]})
	}

	cfg := parsePersonaConfig(r.FormValue("persona_config"))

	rep, outName := s.orchestrator.ProcessCollection(r.Context(), task, inputs, cfg)

	writeJSON(w, http.StatusOK, map[string]any{
		"task_id":     task.ID,
		"status":      "completed",
		"message":     fmt.Sprintf("Processed %d files", len(files)),
		"files":       filenames,
		"output_file": outName,
		"result":      rep,
	})
}

// parsePersonaConfig decodes the optional persona_config form value.
// Anything unparseable falls back to auto-detection.
func parsePersonaConfig(raw string) *report.PersonaConfig {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var cfg report.PersonaConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil
	}
	return &cfg
}

type sizeLimitError struct {
	limit int64
}

func (e sizeLimitError) Error() string {
	return fmt.Sprintf("File size exceeds %dMB limit", e.limit/1024/1024)
}

func uploadErrStatus(err error) int {
	if _, ok := err.(sizeLimitError); ok {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// saveUpload copies the upload into dir under a temp name and returns
// the path and size on disk.
func (s *Server) saveUpload(src multipart.File, dir string) (string, int64, error) {
	tmp, err := os.CreateTemp(dir, "upload_*.pdf")
	if err != nil {
		return "", 0, fmt.Errorf("failed to store upload: %w", err)
	}
	size, err := io.Copy(tmp, io.LimitReader(src, s.cfg.MaxUploadBytes+1))
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", 0, fmt.Errorf("failed to store upload: %w", err)
	}
	if size > s.cfg.MaxUploadBytes {
		os.Remove(tmp.Name())
		return "", 0, sizeLimitError{limit: s.cfg.MaxUploadBytes}
	}
	return tmp.Name(), size, nil
}

// saveUploadAt copies the upload to an exact path.
func (s *Server) saveUploadAt(src multipart.File, path string) (int64, error) {
	dst, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to store upload: %w", err)
	}
	size, err := io.Copy(dst, io.LimitReader(src, s.cfg.MaxUploadBytes+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("failed to store upload: %w", err)
	}
	if size > s.cfg.MaxUploadBytes {
		os.Remove(path)
		return 0, sizeLimitError{limit: s.cfg.MaxUploadBytes}
	}
	return size, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed.pdf"
	}
	return name
}
