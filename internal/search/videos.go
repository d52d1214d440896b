package search

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"studypal/internal/logger"
)

// VideoProvider implements Provider using the YouTube Data API, tuned
// toward educational results.
type VideoProvider struct {
	apiKey string
}

const maxVideoResults = 25

// NewVideoProvider creates a new YouTube video provider
func NewVideoProvider(apiKey string) *VideoProvider {
	return &VideoProvider{apiKey: apiKey}
}

// Name returns the name of this provider
func (v *VideoProvider) Name() string {
	return "YouTube Data API"
}

// Search performs an educational video search. The query is suffixed with
// "explained tutorial" and restricted to medium-length, safe videos.
func (v *VideoProvider) Search(ctx context.Context, query string, config Config) ([]Result, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(v.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	maxResults := config.MaxResults
	if maxResults <= 0 || maxResults > maxVideoResults {
		maxResults = maxVideoResults
	}

	order := config.Order
	if order == "" {
		order = "relevance"
	}

	call := service.Search.List([]string{"snippet"}).
		Q(query + " explained tutorial").
		Type("video").
		MaxResults(int64(maxResults)).
		Order(order).
		SafeSearch("strict").
		VideoDuration("medium").
		VideoEmbeddable("true")
	if config.Language != "" {
		call = call.RelevanceLanguage(config.Language)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		if gErr, ok := err.(*googleapi.Error); ok {
			switch gErr.Code {
			case 403:
				return nil, ErrQuotaExceeded
			case 429:
				return nil, ErrRateLimited
			}
		}
		return nil, fmt.Errorf("failed to execute video search request: %w", err)
	}

	var results []Result
	for i, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}

		result := Result{
			ID:        fmt.Sprintf("video_%d", i+1),
			URL:       "https://www.youtube.com/watch?v=" + item.Id.VideoId,
			Title:     item.Snippet.Title,
			Snippet:   item.Snippet.Description,
			Channel:   item.Snippet.ChannelTitle,
			ChannelID: item.Snippet.ChannelId,
			Source:    "youtube_data_api",
			Rank:      i + 1,
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
			result.ThumbnailURL = item.Snippet.Thumbnails.Medium.Url
		}
		if published, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			result.PublishedAt = &published
			result.PublishTime = formatPublishTime(published)
		}
		results = append(results, result)
	}

	logger.Info("Video search completed", "query", query, "results_found", len(results))

	return results, nil
}

// VideoDetails holds the extra metadata fetched for a single video.
type VideoDetails struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Channel      string `json:"channel"`
	Duration     string `json:"duration"`
	ViewCount    uint64 `json:"viewCount"`
	LikeCount    uint64 `json:"likeCount"`
	PublishTime  string `json:"publishTime"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// Details fetches duration and statistics for a single video by ID.
func (v *VideoProvider) Details(ctx context.Context, videoID string) (*VideoDetails, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(v.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	resp, err := service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video details: %w", err)
	}

	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video not found: %s", videoID)
	}

	item := resp.Items[0]
	details := &VideoDetails{ID: videoID}
	if item.Snippet != nil {
		details.Title = item.Snippet.Title
		details.Description = item.Snippet.Description
		details.Channel = item.Snippet.ChannelTitle
		if published, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			details.PublishTime = formatPublishTime(published)
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
			details.ThumbnailURL = item.Snippet.Thumbnails.Medium.Url
		}
	}
	if item.ContentDetails != nil {
		details.Duration = formatDuration(item.ContentDetails.Duration)
	}
	if item.Statistics != nil {
		details.ViewCount = item.Statistics.ViewCount
		details.LikeCount = item.Statistics.LikeCount
	}

	return details, nil
}

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// formatDuration converts an ISO-8601 duration like "PT1H2M30S" into a
// human readable "1:02:30".
func formatDuration(iso string) string {
	m := isoDurationPattern.FindStringSubmatch(iso)
	if m == nil {
		return iso
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// formatPublishTime renders a publish date as a rough relative age,
// e.g. "3 months ago".
func formatPublishTime(published time.Time) string {
	elapsed := time.Since(published)
	days := int(elapsed.Hours() / 24)

	switch {
	case days < 1:
		return "today"
	case days < 30:
		return pluralize(days, "day")
	case days < 365:
		return pluralize(days/30, "month")
	default:
		return pluralize(days/365, "year")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
