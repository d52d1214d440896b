package quality

import (
	"math"
	"strings"

	"studypal/internal/core"
)

// Score bounds and recommendation thresholds.
const (
	baseScore = 5
	maxScore  = 10

	thresholdHighlyRecommended = 8
	thresholdRecommended       = 6
	thresholdUseWithCaution    = 4
)

// Recommendation labels derived from the average of the three quality
// sub-scores.
const (
	HighlyRecommended = "highly_recommended"
	Recommended       = "recommended"
	UseWithCaution    = "use_with_caution"
	NotRecommended    = "not_recommended"
)

// Metrics holds the three bounded quality sub-scores, their rounded average,
// and the derived recommendation label.
type Metrics struct {
	Quality        int    `json:"quality_score"`
	Educational    int    `json:"educational_value"`
	Credibility    int    `json:"credibility_score"`
	Overall        int    `json:"overall_score"`
	Recommendation string `json:"recommendation"`
}

// Assess computes quality, educational-value, and credibility scores for one
// content item. Pure and deterministic; missing optional fields simply skip
// their bonus terms.
func Assess(item core.ContentItem) Metrics {
	title := strings.ToLower(item.Title)
	body := strings.ToLower(item.Snippet)

	quality := qualityScore(title, body)
	// The educational value accumulates in half-point steps; it is kept as a
	// float internally and rounded only at the output boundary.
	educational := educationalValue(title, body)
	credibility := credibilityScore(item)

	avg := (float64(quality) + educational + float64(credibility)) / 3

	return Metrics{
		Quality:        quality,
		Educational:    int(math.Round(educational)),
		Credibility:    credibility,
		Overall:        int(math.Round(avg)),
		Recommendation: recommendationLabel(avg),
	}
}

func qualityScore(title, body string) int {
	score := baseScore

	if len(title) > 10 && len(title) < 100 {
		score++
	}
	if !containsAny(title, clickbaitKeywords) {
		score++
	}
	if len(body) > 100 {
		score++
	}
	if containsAny(body, depthKeywords) {
		score++
	}
	if containsAny(title, educationalIndicators) || containsAny(body, educationalIndicators) {
		score += 2
	}

	return clamp(score)
}

func educationalValue(title, body string) float64 {
	score := float64(baseScore)

	for _, kw := range learningKeywords {
		if strings.Contains(title, kw) || strings.Contains(body, kw) {
			score += 0.5
		}
	}
	if containsAny(body, structureMarkers) {
		score++
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

func credibilityScore(item core.ContentItem) int {
	score := baseScore

	switch item.Type {
	case core.ContentTypeDocument:
		if item.Link != "" && containsAny(strings.ToLower(item.Link), credibleDomains) {
			score += 3
		}
	case core.ContentTypeVideo:
		if item.Channel != "" && containsAny(strings.ToLower(item.Channel), credibleChannels) {
			score += 3
		}
	}

	return clamp(score)
}

func recommendationLabel(avg float64) string {
	switch {
	case avg >= thresholdHighlyRecommended:
		return HighlyRecommended
	case avg >= thresholdRecommended:
		return Recommended
	case avg >= thresholdUseWithCaution:
		return UseWithCaution
	}
	return NotRecommended
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func clamp(score int) int {
	if score > maxScore {
		return maxScore
	}
	if score < 0 {
		return 0
	}
	return score
}
