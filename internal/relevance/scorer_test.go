package relevance

import (
	"errors"
	"testing"

	"studypal/internal/core"
)

func TestScoreEmptyQuery(t *testing.T) {
	item := core.ContentItem{Title: "Algebra notes", Type: core.ContentTypeDocument}

	if _, err := Score(item, "", "", ""); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("Expected ErrEmptyQuery for empty query, got %v", err)
	}
	if _, err := Score(item, "   ", "", ""); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("Expected ErrEmptyQuery for blank query, got %v", err)
	}
}

func TestScoreQueryTokens(t *testing.T) {
	item := core.ContentItem{
		Title:   "Linear algebra introduction",
		Snippet: "Covers vectors and matrices.",
		Type:    core.ContentTypeDocument,
	}

	// "linear" and "algebra" both match (+2 each), and the full query
	// "linear algebra" appears verbatim (+5).
	score, err := Score(item, "linear algebra", "", "")
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if score != 9 {
		t.Errorf("Expected score 9, got %d", score)
	}
}

func TestScoreShortTokensIgnored(t *testing.T) {
	item := core.ContentItem{Title: "An ok intro to go routines", Type: core.ContentTypeVideo}

	// "go" is two characters and must not contribute token points. The
	// verbatim phrase "go routines" does appear (+5), "routines" matches (+2).
	score, err := Score(item, "go routines", "", "")
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if score != 7 {
		t.Errorf("Expected score 7, got %d", score)
	}
}

func TestScoreVerbatimQueryOutranksMiss(t *testing.T) {
	query := "photosynthesis"

	hit := core.ContentItem{Title: "Photosynthesis explained simply", Type: core.ContentTypeDocument}
	miss := core.ContentItem{Title: "Cellular respiration overview", Type: core.ContentTypeDocument}

	hitScore, err := Score(hit, query, "", "")
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	missScore, err := Score(miss, query, "", "")
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	if hitScore <= missScore {
		t.Errorf("Expected verbatim match (%d) to outrank non-match (%d)", hitScore, missScore)
	}
}

func TestScoreSubjectBonus(t *testing.T) {
	item := core.ContentItem{
		Title:   "Derivatives walkthrough",
		Snippet: "A calculus refresher on derivatives.",
		Type:    core.ContentTypeDocument,
	}

	without, err := Score(item, "derivatives", "", "")
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	with, err := Score(item, "derivatives", "calculus", "")
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	if with != without+3 {
		t.Errorf("Expected subject match to add 3, got %d -> %d", without, with)
	}
}

func TestScoreLevelKeywords(t *testing.T) {
	item := core.ContentItem{
		Title:   "Chemistry basics",
		Snippet: "Simple fundamentals for new students.",
		Type:    core.ContentTypeDocument,
	}

	base, err := Score(item, "chemistry", "", "")
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	leveled, err := Score(item, "chemistry", "", core.LevelBeginner)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	// "basics", "simple" and "fundamentals" each add 2 for beginner.
	if leveled != base+6 {
		t.Errorf("Expected beginner keywords to add 6, got %d -> %d", base, leveled)
	}
}

func TestScoreTypeKeywords(t *testing.T) {
	doc := core.ContentItem{Title: "Physics notes and reference", Type: core.ContentTypeDocument}
	vid := core.ContentItem{Title: "Physics notes and reference", Type: core.ContentTypeVideo}

	docScore, err := Score(doc, "physics", "", "")
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	vidScore, err := Score(vid, "physics", "", "")
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	// "notes" and "reference" are document keywords only.
	if docScore != vidScore+2 {
		t.Errorf("Expected document keywords to add 2 over video, got doc=%d video=%d", docScore, vidScore)
	}
}

func TestScoreClampedToMax(t *testing.T) {
	item := core.ContentItem{
		Title:   "Advanced comprehensive detailed expert calculus tutorial guide",
		Snippet: "In-depth calculus limits derivatives integrals series notes textbook manual guide reference",
		Type:    core.ContentTypeDocument,
	}

	score, err := Score(item, "calculus limits derivatives integrals series", "calculus", core.LevelAdvanced)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if score != MaxScore {
		t.Errorf("Expected score clamped to %d, got %d", MaxScore, score)
	}
}

func TestScoreDeterministic(t *testing.T) {
	item := core.ContentItem{
		Title:   "Statistics tutorial",
		Snippet: "Probability fundamentals explained.",
		Type:    core.ContentTypeVideo,
	}

	first, err := Score(item, "statistics probability", "statistics", core.LevelBeginner)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Score(item, "statistics probability", "statistics", core.LevelBeginner)
		if err != nil {
			t.Fatalf("Score failed: %v", err)
		}
		if again != first {
			t.Fatalf("Expected deterministic score %d, got %d on run %d", first, again, i)
		}
	}
}

func TestKeywordTables(t *testing.T) {
	levels := []core.Level{core.LevelBeginner, core.LevelIntermediate, core.LevelAdvanced}
	for _, level := range levels {
		if len(LevelKeywords(level)) == 0 {
			t.Errorf("Expected keywords for level %s", level)
		}
	}
	if LevelKeywords(core.Level("unknown")) != nil {
		t.Error("Expected nil keywords for unknown level")
	}

	if len(TypeKeywords(core.ContentTypeDocument)) == 0 || len(TypeKeywords(core.ContentTypeVideo)) == 0 {
		t.Error("Expected keywords for both content types")
	}

	// Returned slices are copies, mutating them must not affect the tables.
	kws := LevelKeywords(core.LevelBeginner)
	kws[0] = "mutated"
	if LevelKeywords(core.LevelBeginner)[0] == "mutated" {
		t.Error("LevelKeywords should return a copy")
	}
}
