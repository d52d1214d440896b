package relevance

import (
	"errors"
	"strings"

	"studypal/internal/core"
)

// MaxScore is the upper bound of a relevance score.
const MaxScore = 20

// ErrEmptyQuery is returned when scoring is attempted without a query.
// Callers must guard; the scorer never substitutes a default.
var ErrEmptyQuery = errors.New("relevance: query must not be empty")

// Score computes a bounded relevance score for one content item against a
// query, an optional subject, and an optional learning level. Matching is
// case-insensitive substring matching over title plus snippet.
//
// The score is additive: +2 per query token (longer than two characters)
// found in the text, +5 when the full query appears verbatim, +3 for a
// subject match, +2 per level keyword, +1 per type keyword. The result is
// clamped to [0, MaxScore]. Pure and deterministic.
func Score(item core.ContentItem, query, subject string, level core.Level) (int, error) {
	if strings.TrimSpace(query) == "" {
		return 0, ErrEmptyQuery
	}

	text := strings.ToLower(item.SearchText())
	q := strings.ToLower(strings.TrimSpace(query))

	score := 0

	for _, word := range strings.Fields(q) {
		if len(word) > 2 && strings.Contains(text, word) {
			score += 2
		}
	}

	if strings.Contains(text, q) {
		score += 5
	}

	if subject != "" && strings.Contains(text, strings.ToLower(subject)) {
		score += 3
	}

	for _, kw := range levelKeywords[level] {
		if strings.Contains(text, kw) {
			score += 2
		}
	}

	for _, kw := range typeKeywords[item.Type] {
		if strings.Contains(text, kw) {
			score++
		}
	}

	if score > MaxScore {
		score = MaxScore
	}
	return score, nil
}
