package handlers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studypal/internal/config"
	"studypal/internal/core"
	"studypal/internal/logger"
	"studypal/internal/rank"
	"studypal/internal/search"
)

// NewSearchCmd creates the search command for one-shot terminal searches
func NewSearchCmd() *cobra.Command {
	var (
		subject    string
		level      string
		maxResults int
		useMock    bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search and rerank study material",
		Long: `Search for study material and print the reranked results.

Queries both the document and video providers, scores everything for
relevance and quality, and prints the merged ranking.

Examples:
  # Search with subject and level context
  studypal search "linear algebra" --subject math --level beginner

  # Use mock results (no API keys needed)
  studypal search "linear algebra" --mock`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), args[0], subject, level, maxResults, useMock)
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Subject context (e.g. math)")
	cmd.Flags().StringVarP(&level, "level", "l", "", "Learning level (beginner, intermediate, advanced)")
	cmd.Flags().IntVarP(&maxResults, "max", "n", rank.DefaultMaxResults, "Maximum number of results")
	cmd.Flags().BoolVar(&useMock, "mock", false, "Use the mock search provider")

	return cmd
}

func runSearch(ctx context.Context, query, subject, level string, maxResults int, useMock bool) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	documents, videos, err := searchProviders(cfg, useMock)
	if err != nil {
		return err
	}

	parsedLevel, ok := core.ParseLevel(level)
	if !ok {
		return fmt.Errorf("invalid level %q (want beginner, intermediate, or advanced)", level)
	}
	enhanced := search.BuildEnhancedQuery(query, subject, parsedLevel)
	searchCfg := search.Config{MaxResults: cfg.Search.MaxResults, Language: cfg.Search.Language}

	var documentItems, videoItems []core.ContentItem
	if documents != nil {
		results, err := documents.Search(ctx, enhanced, searchCfg)
		if err != nil {
			logger.Warn("Document search failed", "error", err.Error())
		} else {
			documentItems = toContentItems(results, core.ContentTypeDocument)
		}
	}
	if videos != nil {
		results, err := videos.Search(ctx, enhanced, searchCfg)
		if err != nil {
			logger.Warn("Video search failed", "error", err.Error())
		} else {
			videoItems = toContentItems(results, core.ContentTypeVideo)
		}
	}

	if len(documentItems)+len(videoItems) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	reranker := rank.New()
	result, err := reranker.Rerank(documentItems, videoItems, rank.Options{
		Query:      query,
		Subject:    subject,
		Level:      parsedLevel,
		MaxResults: maxResults,
	})
	if err != nil {
		return fmt.Errorf("failed to rerank results: %w", err)
	}

	fmt.Printf("Top %d results for %q:\n\n", len(result.Merged), query)
	for i, item := range result.Merged {
		fmt.Printf("%2d. [%s] %s (score %.1f, %s)\n", i+1, item.Type, item.Title, item.FinalScore, item.Recommendation)
		fmt.Printf("    %s\n", item.Link)
	}

	return nil
}

// searchProviders builds the document and video providers, or the mock
// provider for both when requested.
func searchProviders(cfg *config.Config, useMock bool) (search.Provider, search.Provider, error) {
	if useMock {
		mock := search.NewMockProvider()
		return mock, mock, nil
	}

	factory := search.NewProviderFactory(
		cfg.Search.Providers.Google.APIKey,
		cfg.Search.Providers.Google.SearchID,
		cfg.Search.Providers.YouTube.APIKey,
	)

	documents, err := factory.CreateProvider(search.ProviderTypeDocuments)
	if err != nil {
		logger.Warn("Document search disabled", "reason", err.Error())
		documents = nil
	}
	videos, err := factory.CreateProvider(search.ProviderTypeVideos)
	if err != nil {
		logger.Warn("Video search disabled", "reason", err.Error())
		videos = nil
	}

	if documents == nil && videos == nil {
		return nil, nil, fmt.Errorf("no search provider configured; set API keys or use --mock")
	}

	return documents, videos, nil
}

// toContentItems converts provider results into content items for the
// reranker.
func toContentItems(results []search.Result, contentType core.ContentType) []core.ContentItem {
	items := make([]core.ContentItem, 0, len(results))
	for _, r := range results {
		items = append(items, core.ContentItem{
			ID:          r.ID,
			Title:       r.Title,
			Snippet:     r.Snippet,
			Link:        r.URL,
			Type:        contentType,
			Channel:     r.Channel,
			PublishedAt: r.PublishedAt,
		})
	}
	return items
}
