// Package rank merges heterogeneous search result lists into one
// deterministically ordered ranking. Items are annotated with relevance and
// quality scores, adjusted with diversity, recency, and authority bonuses,
// then stably sorted by final score.
package rank

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"studypal/internal/core"
	"studypal/internal/quality"
	"studypal/internal/relevance"
)

// DefaultMaxResults is the merged-list size used when a caller does not ask
// for a specific one.
const DefaultMaxResults = 5

// Adjustment factors applied on top of the relevance score.
const (
	diversityBonus = 1.0
	authorityBonus = 3.0

	// An item type contributing less than this share of the batch earns the
	// diversity bonus.
	diversityShare = 0.7

	// Videos younger than this earn a recency bonus that decays linearly
	// from 2 to 0 over the window.
	recencyWindowDays = 365
)

// Options carries the query context for one rerank invocation.
type Options struct {
	Query      string
	Subject    string
	Level      core.Level
	MaxResults int
}

// Result is the outcome of a rerank: the unified ranking plus per-type top
// slices taken from the full scored batch.
type Result struct {
	Merged       []core.ContentItem `json:"results"`
	TopDocuments []core.ContentItem `json:"top_documents"`
	TopVideos    []core.ContentItem `json:"top_videos"`
}

// Reranker merges and rescores result batches. It holds no per-request
// state; concurrent calls are safe.
type Reranker struct {
	now func() time.Time
}

// New returns a Reranker using the wall clock for the recency bonus.
func New() *Reranker {
	return &Reranker{now: time.Now}
}

// NewWithClock returns a Reranker with a fixed clock, for reproducible
// scoring in tests.
func NewWithClock(now func() time.Time) *Reranker {
	return &Reranker{now: now}
}

// Rerank combines document and video results, scores every item, applies the
// adjustment bonuses, and returns the merged ranking with per-type top
// slices. Inputs are copied; the caller's slices are never mutated.
//
// Empty input lists are valid. A non-positive MaxResults yields empty
// outputs. An empty query is an error.
func (r *Reranker) Rerank(documents, videos []core.ContentItem, opts Options) (Result, error) {
	if strings.TrimSpace(opts.Query) == "" {
		return Result{}, relevance.ErrEmptyQuery
	}
	if opts.MaxResults <= 0 {
		return Result{Merged: []core.ContentItem{}, TopDocuments: []core.ContentItem{}, TopVideos: []core.ContentItem{}}, nil
	}

	batch := tag(documents, videos)

	for i := range batch {
		score, err := relevance.Score(batch[i], opts.Query, opts.Subject, opts.Level)
		if err != nil {
			return Result{}, fmt.Errorf("rank: scoring item %d: %w", i, err)
		}
		batch[i].RelevanceScore = score
		batch[i].FinalScore = float64(score)

		m := quality.Assess(batch[i])
		batch[i].QualityScore = m.Quality
		batch[i].EducationalValue = m.Educational
		batch[i].CredibilityScore = m.Credibility
		batch[i].OverallQuality = m.Overall
		batch[i].Recommendation = m.Recommendation
	}

	r.applyAdjustments(batch)

	// Stable sort: score ties keep document-then-video input order.
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].FinalScore > batch[j].FinalScore
	})

	merged := batch
	if len(merged) > opts.MaxResults {
		merged = merged[:opts.MaxResults]
	}

	// Per-type tops come from the full scored batch, not the truncated
	// merged list, so a type crowded out of the head is still represented.
	perType := (opts.MaxResults + 1) / 2
	return Result{
		Merged:       merged,
		TopDocuments: filterType(batch, core.ContentTypeDocument, perType),
		TopVideos:    filterType(batch, core.ContentTypeVideo, perType),
	}, nil
}

// tag concatenates the two input lists into a fresh batch, stamping each
// item's type, provider rank, and a position-derived identifier when the
// provider supplied none.
func tag(documents, videos []core.ContentItem) []core.ContentItem {
	batch := make([]core.ContentItem, 0, len(documents)+len(videos))

	for i, doc := range documents {
		doc.Type = core.ContentTypeDocument
		doc.OriginalRank = i + 1
		if doc.ID == "" {
			doc.ID = fmt.Sprintf("document_%d", i+1)
		}
		batch = append(batch, doc)
	}
	for i, video := range videos {
		video.Type = core.ContentTypeVideo
		video.OriginalRank = i + 1
		if video.ID == "" {
			video.ID = fmt.Sprintf("video_%d", i+1)
		}
		batch = append(batch, video)
	}
	return batch
}

func (r *Reranker) applyAdjustments(batch []core.ContentItem) {
	total := len(batch)
	if total == 0 {
		return
	}

	counts := make(map[core.ContentType]int, 2)
	for _, item := range batch {
		counts[item.Type]++
	}

	now := r.now()
	for i := range batch {
		item := &batch[i]

		if float64(counts[item.Type]) < diversityShare*float64(total) {
			item.FinalScore += diversityBonus
		}

		if item.Type == core.ContentTypeVideo && item.PublishedAt != nil {
			days := now.Sub(*item.PublishedAt).Hours() / 24
			if days < recencyWindowDays {
				if bonus := 2 - days/recencyWindowDays; bonus > 0 {
					item.FinalScore += bonus
				}
			}
		}

		if hasAuthority(*item) {
			item.FinalScore += authorityBonus
		}
	}
}

func filterType(batch []core.ContentItem, t core.ContentType, limit int) []core.ContentItem {
	out := []core.ContentItem{}
	for _, item := range batch {
		if item.Type != t {
			continue
		}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}
