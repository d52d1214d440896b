package search

import (
	"context"
	"time"

	"studypal/internal/core"
)

// Provider defines the unified interface for study-content search providers.
type Provider interface {
	// Search performs a search with configuration
	Search(ctx context.Context, query string, config Config) ([]Result, error)

	// Name returns the name of the search provider
	Name() string
}

// Config holds configuration for search requests
type Config struct {
	MaxResults int    // Maximum number of results to return
	Order      string // Provider sort order (e.g., "relevance", "date")
	Language   string // Language preference (e.g., "en")
}

// Result represents a unified search result
type Result struct {
	ID           string     `json:"id"`
	URL          string     `json:"url"`
	Title        string     `json:"title"`
	Snippet      string     `json:"snippet"`
	Domain       string     `json:"domain,omitempty"`
	Channel      string     `json:"channel,omitempty"`
	ChannelID    string     `json:"channel_id,omitempty"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	FileSize     string     `json:"file_size,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	PublishTime  string     `json:"publish_time,omitempty"` // human readable, e.g. "3 months ago"

	// EstimatedLevel is a keyword-based guess at the content's learning
	// level, empty when nothing in the text signals one.
	EstimatedLevel core.Level `json:"estimated_level,omitempty"`

	Source string `json:"source"` // Provider-specific source identifier
	Rank   int    `json:"rank"`   // Position in search results
}

// ProviderType represents the type of search provider
type ProviderType string

const (
	ProviderTypeDocuments ProviderType = "documents" // Google Custom Search, PDF documents
	ProviderTypeVideos    ProviderType = "videos"    // YouTube Data API
	ProviderTypeMock      ProviderType = "mock"
)

// ProviderFactory creates search providers from configured credentials
type ProviderFactory struct {
	googleAPIKey  string
	searchID      string
	youtubeAPIKey string
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(googleAPIKey, searchID, youtubeAPIKey string) *ProviderFactory {
	return &ProviderFactory{
		googleAPIKey:  googleAPIKey,
		searchID:      searchID,
		youtubeAPIKey: youtubeAPIKey,
	}
}

// CreateProvider creates a search provider of the specified type
func (f *ProviderFactory) CreateProvider(providerType ProviderType) (Provider, error) {
	switch providerType {
	case ProviderTypeDocuments:
		if f.googleAPIKey == "" {
			return nil, ErrMissingAPIKey
		}
		if f.searchID == "" {
			return nil, ErrMissingSearchID
		}
		return NewDocumentProvider(f.googleAPIKey, f.searchID), nil
	case ProviderTypeVideos:
		if f.youtubeAPIKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewVideoProvider(f.youtubeAPIKey), nil
	case ProviderTypeMock:
		return NewMockProvider(), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}

// GetAvailableProviders returns a list of available provider types
func (f *ProviderFactory) GetAvailableProviders() []ProviderType {
	return []ProviderType{
		ProviderTypeDocuments,
		ProviderTypeVideos,
		ProviderTypeMock,
	}
}
