package core

import "time"

// ContentType discriminates the two kinds of study content flowing through
// the scoring pipeline.
type ContentType string

const (
	ContentTypeDocument ContentType = "document"
	ContentTypeVideo    ContentType = "video"
)

// Level represents the learning difficulty of a user or a piece of content.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// ParseLevel validates a raw level string. The empty string is valid and
// means "no level filter".
func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case "", LevelBeginner, LevelIntermediate, LevelAdvanced:
		return Level(s), true
	}
	return "", false
}

// ContentItem is a single search result (document or video) flowing through
// the scoring pipeline. Items are built fresh per request from provider
// payloads and are never persisted.
type ContentItem struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Snippet     string      `json:"snippet"`
	Link        string      `json:"link"`
	Type        ContentType `json:"type"`
	Channel     string      `json:"channel,omitempty"`      // videos only
	PublishedAt *time.Time  `json:"published_at,omitempty"` // videos only

	// OriginalRank is the 1-based position assigned by the upstream provider.
	// It is input metadata and is never mutated by rescoring.
	OriginalRank int `json:"original_rank"`

	// Derived scores, populated during reranking and discarded with the
	// response.
	RelevanceScore   int     `json:"relevance_score"`
	QualityScore     int     `json:"quality_score"`
	EducationalValue int     `json:"educational_value"`
	CredibilityScore int     `json:"credibility_score"`
	OverallQuality   int     `json:"overall_quality"`
	Recommendation   string  `json:"recommendation,omitempty"`
	FinalScore       float64 `json:"final_score"`
}

// SearchText returns the text used for keyword scoring: title plus snippet.
func (c ContentItem) SearchText() string {
	return c.Title + " " + c.Snippet
}

// Preferences is the raw preference input a client sends alongside a
// recommendation request.
type Preferences struct {
	ContentTypes []ContentType `json:"content_types,omitempty"`
	Level        Level         `json:"level,omitempty"`
}

// LearningSession is one historical study session, used to derive a profile.
type LearningSession struct {
	Subject string `json:"subject,omitempty"`
	Level   Level  `json:"level,omitempty"`
}

// EngagementStats summarizes a user's learning history.
type EngagementStats struct {
	TotalSessions       int   `json:"total_sessions"`
	PreferredDifficulty Level `json:"preferred_difficulty"`
}

// UserProfile is the compact, per-request summary of a user's preferences
// and history that drives recommendation generation.
type UserProfile struct {
	PreferredContentTypes []ContentType   `json:"preferred_content_types"`
	LearningLevel         Level           `json:"learning_level"`
	Subjects              []string        `json:"subjects"`
	Engagement            EngagementStats `json:"engagement"`
}

// Schedule is a persisted study-schedule record.
type Schedule struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Subject     string    `json:"subject"`
	Topic       string    `json:"topic"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // HH:MM, 24-hour
	Description string    `json:"description,omitempty"`
	Priority    string    `json:"priority"` // low, medium, high
	Status      string    `json:"status"`   // pending, completed, missed
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Schedule priority and status values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusMissed    = "missed"
)
