package relevance

import "studypal/internal/core"

// Keyword tables are immutable configuration. Scoring logic never embeds
// literals so the tables can be tested and extended on their own.

// levelKeywords maps a learning level to the phrases that indicate content
// written for that level.
var levelKeywords = map[core.Level][]string{
	core.LevelBeginner:     {"beginner", "introduction", "basics", "simple", "easy", "fundamentals"},
	core.LevelIntermediate: {"intermediate", "tutorial", "guide", "step by step"},
	core.LevelAdvanced:     {"advanced", "expert", "detailed", "comprehensive", "in-depth"},
}

// typeKeywords maps a content type to the phrases typical for that medium.
var typeKeywords = map[core.ContentType][]string{
	core.ContentTypeDocument: {"notes", "textbook", "manual", "guide", "reference"},
	core.ContentTypeVideo:    {"tutorial", "explained", "demonstration", "lecture"},
}

// LevelKeywords returns a copy of the keyword set for a level. Unknown levels
// yield nil.
func LevelKeywords(level core.Level) []string {
	kws, ok := levelKeywords[level]
	if !ok {
		return nil
	}
	out := make([]string, len(kws))
	copy(out, kws)
	return out
}

// TypeKeywords returns a copy of the keyword set for a content type.
func TypeKeywords(t core.ContentType) []string {
	kws, ok := typeKeywords[t]
	if !ok {
		return nil
	}
	out := make([]string, len(kws))
	copy(out, kws)
	return out
}
