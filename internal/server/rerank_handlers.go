package server

import (
	"net/http"
	"sort"
	"time"

	"studypal/internal/core"
	"studypal/internal/quality"
	"studypal/internal/rank"
	"studypal/internal/recommend"
)

type rerankRequest struct {
	Query      string             `json:"query"`
	Subject    string             `json:"subject"`
	Level      core.Level         `json:"level"`
	MaxResults int                `json:"max_results"`
	Documents  []core.ContentItem `json:"documents"`
	Videos     []core.ContentItem `json:"videos"`
}

type rerankResponse struct {
	Query         string       `json:"query"`
	Filters       rerankFilter `json:"filters"`
	OriginalCount counts       `json:"original_count"`
	rank.Result
}

type rerankFilter struct {
	Subject string     `json:"subject"`
	Level   core.Level `json:"level"`
}

type counts struct {
	Documents int `json:"documents"`
	Videos    int `json:"videos"`
	Total     int `json:"total"`
}

// handleRerank handles POST /api/rerank
func (s *Server) handleRerank(w http.ResponseWriter, r *http.Request) {
	var req rerankRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = rank.DefaultMaxResults
	}

	result, err := s.reranker.Rerank(req.Documents, req.Videos, rank.Options{
		Query:      req.Query,
		Subject:    req.Subject,
		Level:      req.Level,
		MaxResults: maxResults,
	})
	if err != nil {
		s.respondMappedError(w, err, "Failed to rerank results")
		return
	}

	s.respondSuccess(w, http.StatusOK, "Results reranked successfully", rerankResponse{
		Query:   req.Query,
		Filters: rerankFilter{Subject: req.Subject, Level: req.Level},
		OriginalCount: counts{
			Documents: len(req.Documents),
			Videos:    len(req.Videos),
			Total:     len(req.Documents) + len(req.Videos),
		},
		Result: result,
	})
}

type recommendationsRequest struct {
	Query              string                 `json:"query"`
	UserPreferences    core.Preferences       `json:"user_preferences"`
	LearningHistory    []core.LearningSession `json:"learning_history"`
	ContentTypes       []core.ContentType     `json:"content_types"`
	MaxRecommendations int                    `json:"max_recommendations"`
}

// handleRecommendations handles POST /api/recommendations
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if req.Query == "" {
		s.respondError(w, http.StatusBadRequest, "Query is required")
		return
	}

	maxRecommendations := req.MaxRecommendations
	if maxRecommendations == 0 {
		maxRecommendations = recommend.DefaultMaxRecommendations
	}

	contentTypes := req.ContentTypes
	if len(contentTypes) == 0 {
		contentTypes = []core.ContentType{core.ContentTypeDocument, core.ContentTypeVideo}
	}

	profile := recommend.AnalyzeProfile(req.UserPreferences, req.LearningHistory)
	recommendations := recommend.Generate(req.Query, profile, contentTypes, maxRecommendations)

	s.respondSuccess(w, http.StatusOK, "Smart recommendations generated", map[string]any{
		"query":                 req.Query,
		"user_profile":          profile,
		"recommendations":       recommendations,
		"total_recommendations": len(recommendations),
		"generated_at":          time.Now().UTC().Format(time.RFC3339),
	})
}

type qualityRequest struct {
	ContentItems []core.ContentItem `json:"content_items"`
}

type analyzedItem struct {
	core.ContentItem
	QualityMetrics qualityMetrics `json:"quality_metrics"`
}

type qualityMetrics struct {
	OverallScore     int    `json:"overall_score"`
	QualityScore     int    `json:"quality_score"`
	EducationalValue int    `json:"educational_value"`
	CredibilityScore int    `json:"credibility_score"`
	Recommendation   string `json:"recommendation"`
}

// handleQuality handles POST /api/quality
func (s *Server) handleQuality(w http.ResponseWriter, r *http.Request) {
	var req qualityRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if len(req.ContentItems) == 0 {
		s.respondError(w, http.StatusBadRequest, "At least one content item is required")
		return
	}

	analyzed := make([]analyzedItem, 0, len(req.ContentItems))
	var high, medium, low int
	for _, item := range req.ContentItems {
		metrics := quality.Assess(item)
		analyzed = append(analyzed, analyzedItem{
			ContentItem: item,
			QualityMetrics: qualityMetrics{
				OverallScore:     metrics.Overall,
				QualityScore:     metrics.Quality,
				EducationalValue: metrics.Educational,
				CredibilityScore: metrics.Credibility,
				Recommendation:   metrics.Recommendation,
			},
		})

		switch {
		case metrics.Overall >= 8:
			high++
		case metrics.Overall >= 6:
			medium++
		default:
			low++
		}
	}

	// Best content first
	sort.SliceStable(analyzed, func(i, j int) bool {
		return analyzed[i].QualityMetrics.OverallScore > analyzed[j].QualityMetrics.OverallScore
	})

	s.respondSuccess(w, http.StatusOK, "Content quality analysis completed", map[string]any{
		"analysis_results": analyzed,
		"summary": map[string]int{
			"total_items":    len(req.ContentItems),
			"high_quality":   high,
			"medium_quality": medium,
			"low_quality":    low,
		},
	})
}
