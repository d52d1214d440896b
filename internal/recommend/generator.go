// Package recommend derives user profiles from preferences and history and
// produces labeled study-content suggestions from them.
package recommend

import (
	"fmt"
	"math"

	"studypal/internal/core"
)

// DefaultMaxRecommendations bounds a recommendation batch when the caller
// does not specify a size.
const DefaultMaxRecommendations = 8

// Fixed per-type generation parameters. The document and video ratios are
// deliberately not renormalized when only one type is requested; callers
// depend on the resulting counts.
const (
	documentRatio      = 0.4
	videoRatio         = 0.6
	documentConfidence = 0.8
	videoConfidence    = 0.85

	documentReason = "Based on your preference for detailed study materials"
	videoReason    = "Recommended based on your visual learning preference"

	documentEstimatedTime = "15-30 minutes"
	videoEstimatedTime    = "10-20 minutes"
)

// Recommendation is one labeled content suggestion.
type Recommendation struct {
	Type          core.ContentType `json:"type"`
	Title         string           `json:"title"`
	Reason        string           `json:"reason"`
	Confidence    float64          `json:"confidence"`
	EstimatedTime string           `json:"estimated_time"`
}

// Generate produces a bounded list of rule-based recommendations for a
// query, split across the requested content types by the fixed ratios.
// The profile parameter keeps the contract stable for future strategies;
// the current template strategy does not consult it. Deterministic given
// identical inputs.
func Generate(query string, profile core.UserProfile, contentTypes []core.ContentType, maxRecommendations int) []Recommendation {
	if maxRecommendations <= 0 {
		return []Recommendation{}
	}

	docSlots := 0
	videoSlots := 0
	for _, t := range contentTypes {
		switch t {
		case core.ContentTypeDocument:
			docSlots = ceilShare(maxRecommendations, documentRatio)
		case core.ContentTypeVideo:
			videoSlots = ceilShare(maxRecommendations, videoRatio)
		}
	}

	recs := make([]Recommendation, 0, docSlots+videoSlots)

	for i := 0; i < docSlots; i++ {
		recs = append(recs, Recommendation{
			Type:          core.ContentTypeDocument,
			Title:         fmt.Sprintf("%s - Study Guide %d", query, i+1),
			Reason:        documentReason,
			Confidence:    documentConfidence,
			EstimatedTime: documentEstimatedTime,
		})
	}
	for i := 0; i < videoSlots; i++ {
		recs = append(recs, Recommendation{
			Type:          core.ContentTypeVideo,
			Title:         fmt.Sprintf("%s Tutorial %d", query, i+1),
			Reason:        videoReason,
			Confidence:    videoConfidence,
			EstimatedTime: videoEstimatedTime,
		})
	}

	return recs
}

func ceilShare(total int, ratio float64) int {
	return int(math.Ceil(float64(total) * ratio))
}
