package rank

import (
	"errors"
	"testing"
	"time"

	"studypal/internal/core"
	"studypal/internal/relevance"
)

var testNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func testReranker() *Reranker {
	return NewWithClock(func() time.Time { return testNow })
}

func TestRerankEmptyQuery(t *testing.T) {
	docs := []core.ContentItem{{Title: "Algebra"}}

	_, err := testReranker().Rerank(docs, nil, Options{Query: "", MaxResults: 5})
	if !errors.Is(err, relevance.ErrEmptyQuery) {
		t.Errorf("Expected ErrEmptyQuery, got %v", err)
	}
}

func TestRerankBlankQueryEmptyBatch(t *testing.T) {
	// The query guard must fire even when there is nothing to score.
	_, err := testReranker().Rerank(nil, nil, Options{Query: "   ", MaxResults: 5})
	if !errors.Is(err, relevance.ErrEmptyQuery) {
		t.Errorf("Expected ErrEmptyQuery for a blank query, got %v", err)
	}
}

func TestRerankNonPositiveMaxResults(t *testing.T) {
	docs := []core.ContentItem{{Title: "Algebra"}}

	for _, max := range []int{0, -3} {
		res, err := testReranker().Rerank(docs, nil, Options{Query: "algebra", MaxResults: max})
		if err != nil {
			t.Fatalf("Rerank failed: %v", err)
		}
		if len(res.Merged) != 0 || len(res.TopDocuments) != 0 || len(res.TopVideos) != 0 {
			t.Errorf("Expected empty outputs for maxResults=%d, got %d/%d/%d",
				max, len(res.Merged), len(res.TopDocuments), len(res.TopVideos))
		}
	}
}

func TestRerankSingleAuthoritativeDocument(t *testing.T) {
	docs := []core.ContentItem{{
		Title:   "Intro to Algebra",
		Snippet: "basics fundamentals",
		Link:    "mit.edu/algebra",
	}}

	res, err := testReranker().Rerank(docs, nil, Options{
		Query:      "algebra",
		Level:      core.LevelBeginner,
		MaxResults: 5,
	})
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}

	if len(res.Merged) != 1 {
		t.Fatalf("Expected 1 merged result, got %d", len(res.Merged))
	}

	item := res.Merged[0]
	if item.RelevanceScore < 5 {
		t.Errorf("Expected relevance >= 5, got %d", item.RelevanceScore)
	}
	// token "algebra" (+2), verbatim query (+5), beginner keywords "basics"
	// and "fundamentals" (+2 each) = 11.
	if item.RelevanceScore != 11 {
		t.Errorf("Expected relevance 11, got %d", item.RelevanceScore)
	}
	// Sole item of its type in a single-item batch: no diversity bonus.
	// "mit.edu" earns the +3 authority bonus.
	if item.FinalScore != 14 {
		t.Errorf("Expected final score 14, got %.1f", item.FinalScore)
	}
	if item.Type != core.ContentTypeDocument {
		t.Errorf("Expected document type preserved, got %s", item.Type)
	}
	if item.OriginalRank != 1 {
		t.Errorf("Expected original rank 1, got %d", item.OriginalRank)
	}
	if item.ID != "document_1" {
		t.Errorf("Expected position-derived ID, got %q", item.ID)
	}
}

func TestRerankMergedOrderAndTypePartitions(t *testing.T) {
	docs := []core.ContentItem{
		{ID: "d1", Title: "Algebra guide", Link: "example.com/a"},
		{ID: "d2", Title: "Algebra", Link: "example.com/b"},
		{ID: "d3", Title: "Numbers", Link: "example.com/c"},
	}
	videos := []core.ContentItem{
		{ID: "v1", Title: "Algebra tutorial"},
	}

	res, err := testReranker().Rerank(docs, videos, Options{Query: "algebra", MaxResults: 2})
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}

	// Scores: d1=8 (token+verbatim+"guide"), d2=7, d3=0, v1=8+1 diversity=9.
	if len(res.Merged) != 2 {
		t.Fatalf("Expected 2 merged results, got %d", len(res.Merged))
	}
	if res.Merged[0].ID != "v1" || res.Merged[1].ID != "d1" {
		t.Errorf("Expected order [v1 d1], got [%s %s]", res.Merged[0].ID, res.Merged[1].ID)
	}
	if res.Merged[0].FinalScore < res.Merged[1].FinalScore {
		t.Error("Merged list must be sorted by final score descending")
	}

	// ceil(2/2)=1 per type, taken from the full batch even when a type was
	// crowded out of the merged head.
	if len(res.TopDocuments) != 1 || res.TopDocuments[0].ID != "d1" {
		t.Errorf("Expected top documents [d1], got %v", ids(res.TopDocuments))
	}
	if len(res.TopVideos) != 1 || res.TopVideos[0].ID != "v1" {
		t.Errorf("Expected top videos [v1], got %v", ids(res.TopVideos))
	}
}

func TestRerankMergedSizeProperty(t *testing.T) {
	docs := []core.ContentItem{
		{Title: "Algebra one"}, {Title: "Algebra two"}, {Title: "Algebra three"},
	}
	videos := []core.ContentItem{
		{Title: "Algebra four"}, {Title: "Algebra five"},
	}

	for _, max := range []int{1, 3, 5, 10} {
		res, err := testReranker().Rerank(docs, videos, Options{Query: "algebra", MaxResults: max})
		if err != nil {
			t.Fatalf("Rerank failed: %v", err)
		}

		want := max
		if total := len(docs) + len(videos); total < want {
			want = total
		}
		if len(res.Merged) != want {
			t.Errorf("maxResults=%d: expected %d merged, got %d", max, want, len(res.Merged))
		}

		perType := (max + 1) / 2
		if len(res.TopDocuments) > perType || len(res.TopVideos) > perType {
			t.Errorf("maxResults=%d: per-type slices exceed ceil(max/2)=%d", max, perType)
		}
	}
}

func TestRerankStableTieBreak(t *testing.T) {
	// Identical content scores identically; input order must survive.
	docs := []core.ContentItem{
		{ID: "first", Title: "Algebra", Link: "example.com/1"},
		{ID: "second", Title: "Algebra", Link: "example.com/2"},
	}

	res, err := testReranker().Rerank(docs, nil, Options{Query: "algebra", MaxResults: 5})
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}

	if res.Merged[0].FinalScore != res.Merged[1].FinalScore {
		t.Fatal("Test requires an exact score tie")
	}
	if res.Merged[0].ID != "first" || res.Merged[1].ID != "second" {
		t.Errorf("Expected input order on tie, got [%s %s]", res.Merged[0].ID, res.Merged[1].ID)
	}
}

func TestRerankDocumentsPrecedeVideosOnTie(t *testing.T) {
	docs := []core.ContentItem{{ID: "doc", Title: "Chemistry explained lecture"}}
	videos := []core.ContentItem{{ID: "vid", Title: "Chemistry reference notes"}}

	res, err := testReranker().Rerank(docs, videos, Options{Query: "chemistry", MaxResults: 5})
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}

	// Both score 7 relevance and both sides of a two-type batch earn the
	// diversity bonus; the concatenated document comes first on the tie.
	if res.Merged[0].FinalScore != res.Merged[1].FinalScore {
		t.Fatalf("Test requires a tie, got %.1f vs %.1f", res.Merged[0].FinalScore, res.Merged[1].FinalScore)
	}
	if res.Merged[0].ID != "doc" {
		t.Errorf("Expected document first on tie, got %s", res.Merged[0].ID)
	}
}

func TestRerankDiversityBonus(t *testing.T) {
	docs := []core.ContentItem{
		{ID: "d1", Title: "Biology"}, {ID: "d2", Title: "Biology"}, {ID: "d3", Title: "Biology"},
	}
	videos := []core.ContentItem{{ID: "v1", Title: "Biology"}}

	res, err := testReranker().Rerank(docs, videos, Options{Query: "biology", MaxResults: 10})
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}

	// Relevance is 7 everywhere. Videos are 25% of the batch (< 70%), so the
	// video gets +1 while the dominant documents do not.
	for _, item := range res.Merged {
		want := 7.0
		if item.Type == core.ContentTypeVideo {
			want = 8.0
		}
		if item.FinalScore != want {
			t.Errorf("%s: expected final score %.1f, got %.1f", item.ID, want, item.FinalScore)
		}
	}
	if res.Merged[0].ID != "v1" {
		t.Errorf("Expected diversity-boosted video first, got %s", res.Merged[0].ID)
	}
}

func TestRerankRecencyBonus(t *testing.T) {
	fresh := testNow.AddDate(0, 0, -73)  // 73 days: bonus 2 - 0.2 = 1.8
	stale := testNow.AddDate(-2, 0, 0)   // two years: no bonus

	videos := []core.ContentItem{
		{ID: "fresh", Title: "History", PublishedAt: &fresh},
		{ID: "stale", Title: "History", PublishedAt: &stale},
		{ID: "undated", Title: "History"},
	}

	res, err := testReranker().Rerank(nil, videos, Options{Query: "history", MaxResults: 10})
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}

	scores := map[string]float64{}
	for _, item := range res.Merged {
		scores[item.ID] = item.FinalScore
	}

	if scores["stale"] != scores["undated"] {
		t.Errorf("Expected no bonus for stale video: %.2f vs %.2f", scores["stale"], scores["undated"])
	}
	bonus := scores["fresh"] - scores["undated"]
	if bonus < 1.79 || bonus > 1.81 {
		t.Errorf("Expected recency bonus ~1.8, got %.2f", bonus)
	}
	if res.Merged[0].ID != "fresh" {
		t.Errorf("Expected fresh video ranked first, got %s", res.Merged[0].ID)
	}
}

func TestRerankAuthorityBonus(t *testing.T) {
	docs := []core.ContentItem{
		{ID: "edu", Title: "Physics", Link: "https://web.mit.edu/physics"},
		{ID: "plain", Title: "Physics", Link: "https://example.com/physics"},
	}
	videos := []core.ContentItem{
		{ID: "trusted", Title: "Physics", Channel: "Khan Academy"},
		{ID: "unknown", Title: "Physics", Channel: "Random Uploads"},
	}

	res, err := testReranker().Rerank(docs, videos, Options{Query: "physics", MaxResults: 10})
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}

	scores := map[string]float64{}
	for _, item := range res.Merged {
		scores[item.ID] = item.FinalScore
	}

	if scores["edu"]-scores["plain"] != authorityBonus {
		t.Errorf("Expected +%.0f for educational domain, got %.1f vs %.1f",
			authorityBonus, scores["edu"], scores["plain"])
	}
	if scores["trusted"]-scores["unknown"] != authorityBonus {
		t.Errorf("Expected +%.0f for trusted channel, got %.1f vs %.1f",
			authorityBonus, scores["trusted"], scores["unknown"])
	}
}

func TestRerankIdempotent(t *testing.T) {
	published := testNow.AddDate(0, -3, 0)
	docs := []core.ContentItem{
		{Title: "Geometry guide", Link: "https://math.ac.uk/geometry"},
		{Title: "Geometry problems", Link: "https://example.com/geometry"},
	}
	videos := []core.ContentItem{
		{Title: "Geometry tutorial", Channel: "Khan Academy", PublishedAt: &published},
	}

	r := testReranker()
	first, err := r.Rerank(docs, videos, Options{Query: "geometry", MaxResults: 5})
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}
	second, err := r.Rerank(docs, videos, Options{Query: "geometry", MaxResults: 5})
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}

	if len(first.Merged) != len(second.Merged) {
		t.Fatalf("Expected identical result sizes, got %d vs %d", len(first.Merged), len(second.Merged))
	}
	for i := range first.Merged {
		a, b := first.Merged[i], second.Merged[i]
		if a.ID != b.ID || a.FinalScore != b.FinalScore || a.RelevanceScore != b.RelevanceScore {
			t.Errorf("position %d differs between runs: %+v vs %+v", i, a, b)
		}
	}
}

func TestRerankDoesNotMutateInputs(t *testing.T) {
	docs := []core.ContentItem{{Title: "Algebra"}}
	videos := []core.ContentItem{{Title: "Algebra"}}

	if _, err := testReranker().Rerank(docs, videos, Options{Query: "algebra", MaxResults: 5}); err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}

	if docs[0].OriginalRank != 0 || docs[0].FinalScore != 0 || docs[0].Type != "" {
		t.Errorf("Caller's document slice was mutated: %+v", docs[0])
	}
	if videos[0].OriginalRank != 0 || videos[0].FinalScore != 0 {
		t.Errorf("Caller's video slice was mutated: %+v", videos[0])
	}
}

func TestRerankScoreBounds(t *testing.T) {
	docs := []core.ContentItem{
		{Title: "Advanced comprehensive detailed calculus tutorial guide notes", Link: "https://x.edu"},
		{Title: ""},
	}
	videos := []core.ContentItem{
		{Title: "Calculus tutorial explained lecture demonstration", Channel: "Khan Academy"},
	}

	res, err := testReranker().Rerank(docs, videos, Options{
		Query: "calculus", Subject: "calculus", Level: core.LevelAdvanced, MaxResults: 10,
	})
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}

	for _, item := range res.Merged {
		if item.RelevanceScore < 0 || item.RelevanceScore > 20 {
			t.Errorf("%s: relevance %d out of [0,20]", item.ID, item.RelevanceScore)
		}
		for name, v := range map[string]int{
			"quality":     item.QualityScore,
			"educational": item.EducationalValue,
			"credibility": item.CredibilityScore,
		} {
			if v < 0 || v > 10 {
				t.Errorf("%s: %s %d out of [0,10]", item.ID, name, v)
			}
		}
	}
}

func ids(items []core.ContentItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}
