package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/dgallion1/deckgen/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

type createDeckRequest struct {
	Topic  string `json:"topic"`
	Format string `json:"format,omitempty"`
	NoWeb  bool   `json:"no_web,omitempty"`
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req createDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Topic == "" {
		jsonError(w, "topic is required", http.StatusBadRequest)
		return
	}

	format, err := normalizeFormat(req.Format)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := pipeline.NewJob(req.Topic, format, req.NoWeb)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/decks/%s/status", job.ID),
	})
}

func (s *Server) handleDeckStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   snap.ID,
		"topic":    snap.Topic,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"format":   snap.Format,
		"progress": snap.Progress,
	})
}

func (s *Server) handleDeckFile(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	if snap.Status != pipeline.StatusCompleted || snap.OutputPath == "" {
		jsonError(w, fmt.Sprintf("deck not ready (status: %s)", snap.Status), http.StatusConflict)
		return
	}
	if _, err := os.Stat(snap.OutputPath); err != nil {
		jsonError(w, "rendered file is gone", http.StatusGone)
		return
	}
	http.ServeFile(w, r, snap.OutputPath)
}

// normalizeFormat maps the requested format to an output extension,
// defaulting to docx.
func normalizeFormat(format string) (string, error) {
	switch format {
	case "", "docx":
		return ".docx", nil
	case "html":
		return ".html", nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
