package search

import (
	"context"
	"fmt"
	"time"
)

// MockProvider implements Provider for testing purposes
type MockProvider struct {
	name    string
	results []Result
}

// NewMockProvider creates a new mock search provider
func NewMockProvider() *MockProvider {
	published := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return &MockProvider{
		name: "Mock",
		results: []Result{
			{
				ID:      "document_1",
				URL:     "https://example.edu/algebra-notes.pdf",
				Title:   "Algebra Study Notes",
				Snippet: "Comprehensive notes covering core algebra concepts. PDF 1.2 MB.",
				Domain:  "example.edu",
				Source:  "Mock",
				Rank:    1,
			},
			{
				ID:          "video_1",
				URL:         "https://www.youtube.com/watch?v=mock1",
				Title:       "Algebra Explained",
				Snippet:     "A tutorial walking through algebra step by step.",
				Channel:     "Mock Academy",
				ChannelID:   "UCmock1",
				PublishedAt: &published,
				Source:      "Mock",
				Rank:        2,
			},
			{
				ID:      "document_2",
				URL:     "https://test.org/worksheet.pdf",
				Title:   "Practice Worksheet",
				Snippet: "Exercises with worked solutions.",
				Domain:  "test.org",
				Source:  "Mock",
				Rank:    3,
			},
		},
	}
}

// Name returns the name of this provider
func (m *MockProvider) Name() string {
	return m.name
}

// Search returns mock search results
func (m *MockProvider) Search(ctx context.Context, query string, config Config) ([]Result, error) {
	// Limit results based on config
	maxResults := config.MaxResults
	if maxResults <= 0 || maxResults > len(m.results) {
		maxResults = len(m.results)
	}

	// Create copies of results with query-specific modifications
	results := make([]Result, maxResults)
	for i := 0; i < maxResults; i++ {
		result := m.results[i]
		result.Title = fmt.Sprintf("%s (for query: %s)", result.Title, query)
		results[i] = result
	}

	return results, nil
}

// SetResults allows customization of mock results for testing
func (m *MockProvider) SetResults(results []Result) {
	m.results = results
}

// SetName allows customization of provider name for testing
func (m *MockProvider) SetName(name string) {
	m.name = name
}
