package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/gesture"
)

type modeRequest struct {
	Mode string `json:"mode"`
}

type enabledRequest struct {
	Enabled *bool `json:"enabled"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.config.Pipeline.Status())
}

// handleMode switches the active controller. The new controller starts in
// its initial state.
func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req modeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}
	mode, err := gesture.ParseMode(req.Mode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.config.Pipeline.SetMode(mode); err != nil {
		s.logger.Error("mode switch failed", zap.String("mode", req.Mode), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to switch mode"})
		return
	}
	writeJSON(w, http.StatusOK, s.config.Pipeline.Status())
}

func (s *Server) handleEnabled(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req enabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "enabled is required"})
		return
	}
	s.config.Pipeline.SetEnabled(*req.Enabled)
	writeJSON(w, http.StatusOK, s.config.Pipeline.Status())
}
