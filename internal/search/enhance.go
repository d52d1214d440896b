package search

import (
	"strings"

	"studypal/internal/core"
)

// Sites that consistently pollute study material searches.
var excludedSites = []string{
	"pinterest.com",
	"quora.com",
	"coursehero.com",
}

var levelTerms = map[core.Level]string{
	core.LevelBeginner:     "introduction basics fundamentals",
	core.LevelIntermediate: "intermediate guide tutorial",
	core.LevelAdvanced:     "advanced expert comprehensive",
}

// Appended to every enhanced query to bias results toward study material.
const educationalTerms = "tutorial guide notes study material education"

var levelSignals = []struct {
	level    core.Level
	keywords []string
}{
	{core.LevelAdvanced, []string{"advanced", "expert", "comprehensive", "detailed"}},
	{core.LevelIntermediate, []string{"intermediate", "guide", "tutorial"}},
	{core.LevelBeginner, []string{"introduction", "basics", "fundamentals", "beginner"}},
}

// EstimateLevel guesses the learning level of a piece of content from its
// title and snippet. Returns the empty level when no signal is present.
func EstimateLevel(text string) core.Level {
	lower := strings.ToLower(text)
	for _, sig := range levelSignals {
		for _, kw := range sig.keywords {
			if strings.Contains(lower, kw) {
				return sig.level
			}
		}
	}
	return ""
}

// BuildEnhancedQuery augments a raw user query with subject context,
// level-appropriate terms and site exclusions for higher quality study
// results.
func BuildEnhancedQuery(query, subject string, level core.Level) string {
	var parts []string
	parts = append(parts, strings.TrimSpace(query))

	if subject != "" && !strings.Contains(strings.ToLower(query), strings.ToLower(subject)) {
		parts = append(parts, subject)
	}

	if terms, ok := levelTerms[level]; ok {
		parts = append(parts, terms)
	}

	parts = append(parts, educationalTerms)

	for _, site := range excludedSites {
		parts = append(parts, "-site:"+site)
	}

	return strings.Join(parts, " ")
}
