package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"studypal/internal/logger"
)

// DocumentProvider implements Provider using the Google Custom Search API,
// restricted to PDF study material.
type DocumentProvider struct {
	apiKey    string
	searchID  string
	client    *http.Client
	rateLimit time.Duration
	lastCall  time.Time
}

// Google CSE allows at most 10 results per request.
const maxDocumentResults = 10

// NewDocumentProvider creates a new Google Custom Search document provider
func NewDocumentProvider(apiKey, searchID string) *DocumentProvider {
	return &DocumentProvider{
		apiKey:    apiKey,
		searchID:  searchID,
		client:    &http.Client{Timeout: 30 * time.Second},
		rateLimit: 100 * time.Millisecond, // Google CSE has generous rate limits
	}
}

// Name returns the name of this provider
func (d *DocumentProvider) Name() string {
	return "Google Custom Search"
}

// Search performs a PDF document search using the Google Custom Search API.
// The query is suffixed with a filetype restriction so only PDFs come back.
func (d *DocumentProvider) Search(ctx context.Context, query string, config Config) ([]Result, error) {
	// Respect rate limiting
	if elapsed := time.Since(d.lastCall); elapsed < d.rateLimit {
		time.Sleep(d.rateLimit - elapsed)
	}
	d.lastCall = time.Now()

	maxResults := config.MaxResults
	if maxResults <= 0 || maxResults > maxDocumentResults {
		maxResults = maxDocumentResults
	}

	baseURL := "https://www.googleapis.com/customsearch/v1"
	params := url.Values{}
	params.Set("key", d.apiKey)
	params.Set("cx", d.searchID)
	params.Set("q", query+" filetype:pdf")
	params.Set("num", strconv.Itoa(maxResults))
	params.Set("safe", "active")
	if config.Language != "" {
		params.Set("lr", "lang_"+config.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create document search request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute document search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden:
		return nil, ErrQuotaExceeded
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("document search request failed with status: %d", resp.StatusCode)
	}

	var apiResponse struct {
		Items []struct {
			Title       string `json:"title"`
			Link        string `json:"link"`
			Snippet     string `json:"snippet"`
			DisplayLink string `json:"displayLink"`
		} `json:"items"`
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error,omitempty"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse document search response: %w", err)
	}

	if apiResponse.Error.Code != 0 {
		return nil, fmt.Errorf("document search API error (%d): %s", apiResponse.Error.Code, apiResponse.Error.Message)
	}

	var results []Result
	for i, item := range apiResponse.Items {
		domain := item.DisplayLink
		if domain == "" {
			domain = extractDomain(item.Link)
		}
		results = append(results, Result{
			ID:             fmt.Sprintf("document_%d", i+1),
			URL:            item.Link,
			Title:          item.Title,
			Snippet:        item.Snippet,
			Domain:         domain,
			FileSize:       extractFileSize(item.Snippet),
			EstimatedLevel: EstimateLevel(item.Title + " " + item.Snippet),
			Source:         "google_custom_search",
			Rank:           i + 1,
		})
	}

	logger.Info("Document search completed", "query", query, "results_found", len(results))

	return results, nil
}

var fileSizePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s?(KB|MB|GB)`)

// extractFileSize pulls a "2.4 MB" style size out of a result snippet, if
// the provider included one.
func extractFileSize(snippet string) string {
	m := fileSizePattern.FindStringSubmatch(snippet)
	if m == nil {
		return ""
	}
	return m[1] + " " + strings.ToUpper(m[2])
}

// extractDomain extracts the domain name from a URL
func extractDomain(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}

	domain := parsed.Hostname()
	return strings.TrimPrefix(domain, "www.")
}
