package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"studypal/internal/core"
	"studypal/internal/search"
)

type searchRequest struct {
	Query      string     `json:"query"`
	Subject    string     `json:"subject"`
	Level      core.Level `json:"level"`
	MaxResults int        `json:"max_results"`
}

// handleSearchDocuments handles POST /api/search/documents
func (s *Server) handleSearchDocuments(w http.ResponseWriter, r *http.Request) {
	s.handleProviderSearch(w, r, s.deps.Documents, "Document search completed")
}

// handleSearchVideos handles POST /api/search/videos
func (s *Server) handleSearchVideos(w http.ResponseWriter, r *http.Request) {
	s.handleProviderSearch(w, r, s.deps.Videos, "Video search completed")
}

func (s *Server) handleProviderSearch(w http.ResponseWriter, r *http.Request, provider search.Provider, successMsg string) {
	if provider == nil {
		s.respondError(w, http.StatusServiceUnavailable, "Search provider is not configured")
		return
	}

	var req searchRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Query == "" {
		s.respondError(w, http.StatusBadRequest, "Query is required")
		return
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = s.searchCfg.MaxResults
	}

	query := search.BuildEnhancedQuery(req.Query, req.Subject, req.Level)
	results, err := provider.Search(r.Context(), query, search.Config{
		MaxResults: maxResults,
		Language:   s.searchCfg.Language,
	})
	if err != nil {
		s.respondMappedError(w, err, "Search request failed")
		return
	}

	s.respondSuccess(w, http.StatusOK, successMsg, map[string]any{
		"query":   req.Query,
		"results": results,
		"count":   len(results),
	})
}

// handleVideoDetails handles GET /api/videos/{id}/details
func (s *Server) handleVideoDetails(w http.ResponseWriter, r *http.Request) {
	if s.deps.VideoDetails == nil {
		s.respondError(w, http.StatusServiceUnavailable, "Video provider is not configured")
		return
	}

	videoID := chi.URLParam(r, "id")
	if videoID == "" {
		s.respondError(w, http.StatusBadRequest, "Video ID is required")
		return
	}

	details, err := s.deps.VideoDetails.Details(r.Context(), videoID)
	if err != nil {
		s.respondMappedError(w, err, "Failed to fetch video details")
		return
	}

	s.respondSuccess(w, http.StatusOK, "Video details retrieved", map[string]any{
		"video": details,
	})
}
