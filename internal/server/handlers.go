package server

import (
	"net/http"
	"time"
)

// Health check response
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Status response
type StatusResponse struct {
	Version string            `json:"version"`
	Uptime  string            `json:"uptime"`
	APIs    map[string]string `json:"apis"`
}

var serverStartTime = time.Now()

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	if s.deps.Store != nil {
		checks["database"] = "ok"
	} else {
		checks["database"] = "unavailable"
	}

	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Checks: checks,
	})
}

// handleStatus handles the /api/status endpoint
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(serverStartTime)

	apis := map[string]string{
		"documents": availability(s.deps.Documents != nil),
		"videos":    availability(s.deps.Videos != nil),
		"tutor":     availability(s.deps.Tutor != nil),
	}

	s.respondJSON(w, http.StatusOK, StatusResponse{
		Version: "v1.2.0",
		Uptime:  uptime.String(),
		APIs:    apis,
	})
}

func availability(configured bool) string {
	if configured {
		return "configured"
	}
	return "not configured"
}
