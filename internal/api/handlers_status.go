package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"resources": s.resources.Usage(),
	})
}

func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	task := s.orchestrator.Tasks().Get(taskID)
	if task == nil {
		jsonError(w, "Task not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, task.Snapshot())
}

func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tasks": s.orchestrator.Tasks().List(),
	})
}

func (s *Server) handleProcessingStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"processing": s.stats.Snapshot(),
	})
}

type personaInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

func (s *Server) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"personas": []personaInfo{
			{Type: "researcher", Description: "Academic researcher focused on methodology and findings"},
			{Type: "student", Description: "Student seeking educational content"},
			{Type: "business_analyst", Description: "Business professional analyzing market trends"},
			{Type: "technical_writer", Description: "Technical writer focused on documentation"},
			{Type: "legal_professional", Description: "Legal professional reviewing contracts and compliance"},
			{Type: "medical_professional", Description: "Medical professional analyzing clinical content"},
			{Type: "travel_planner", Description: "Travel planner organizing trips and itineraries"},
		},
	})
}
