package recommend

import "studypal/internal/core"

// AnalyzeProfile reduces raw preference input and session history into the
// compact profile that drives recommendation generation. Pure function.
//
// Defaults: both content types, intermediate level. Subjects and the
// preferred difficulty are derived from history alone; with no history the
// stats fall back to intermediate with zero sessions.
func AnalyzeProfile(prefs core.Preferences, history []core.LearningSession) core.UserProfile {
	profile := core.UserProfile{
		PreferredContentTypes: prefs.ContentTypes,
		LearningLevel:         prefs.Level,
		Subjects:              []string{},
		Engagement: core.EngagementStats{
			TotalSessions:       len(history),
			PreferredDifficulty: core.LevelIntermediate,
		},
	}

	if len(profile.PreferredContentTypes) == 0 {
		profile.PreferredContentTypes = []core.ContentType{core.ContentTypeDocument, core.ContentTypeVideo}
	}
	if profile.LearningLevel == "" {
		profile.LearningLevel = core.LevelIntermediate
	}

	if len(history) > 0 {
		profile.Subjects = distinctSubjects(history)
		profile.Engagement.PreferredDifficulty = dominantLevel(history)
	}

	return profile
}

func distinctSubjects(history []core.LearningSession) []string {
	seen := make(map[string]bool, len(history))
	subjects := []string{}
	for _, session := range history {
		if session.Subject == "" || seen[session.Subject] {
			continue
		}
		seen[session.Subject] = true
		subjects = append(subjects, session.Subject)
	}
	return subjects
}

// dominantLevel tallies session levels and picks the most frequent one.
// Intermediate seeds the fold, so it wins any tie; among other levels the
// first one seen at the maximum count wins.
func dominantLevel(history []core.LearningSession) core.Level {
	counts := make(map[core.Level]int, 3)
	var order []core.Level
	for _, session := range history {
		if session.Level == "" {
			continue
		}
		if counts[session.Level] == 0 {
			order = append(order, session.Level)
		}
		counts[session.Level]++
	}

	best := core.LevelIntermediate
	for _, level := range order {
		if counts[level] > counts[best] {
			best = level
		}
	}
	return best
}
