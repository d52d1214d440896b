package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"studypal/internal/auth"
	"studypal/internal/config"
	"studypal/internal/llm"
	"studypal/internal/logger"
	"studypal/internal/search"
	"studypal/internal/server"
	"studypal/internal/store"
)

// NewServeCmd creates the serve command for starting the HTTP server
func NewServeCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the studypal API server the mobile client talks to.

The server provides:
  • Result reranking and content recommendations
  • PDF and video search endpoints
  • AI tutoring endpoints (Gemini)
  • Study schedule management
  • Health check and status endpoints

Search and AI endpoints require their API keys to be configured;
without them the matching endpoints return 503.

Examples:
  # Start server on default port 8080
  studypal serve

  # Start on custom port
  studypal serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, host)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 0.0.0.0)")

	return cmd
}

func runServe(ctx context.Context, port int, host string) error {
	logger.Info("Starting HTTP server")

	// Load configuration
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override server config from flags if provided
	serverCfg := cfg.Server
	if port != 0 {
		serverCfg.Port = port
	}
	if host != "" {
		serverCfg.Host = host
	}

	// Open the schedule store
	st, err := store.NewStore(cfg.Store.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	deps := server.Deps{
		Store:    st,
		Verifier: auth.NewVerifier(cfg.Auth.JWTSecret),
	}

	// Wire up search providers for the configured API keys
	factory := search.NewProviderFactory(
		cfg.Search.Providers.Google.APIKey,
		cfg.Search.Providers.Google.SearchID,
		cfg.Search.Providers.YouTube.APIKey,
	)
	if documents, err := factory.CreateProvider(search.ProviderTypeDocuments); err != nil {
		logger.Warn("Document search disabled", "reason", err.Error())
	} else {
		deps.Documents = documents
	}
	if videos, err := factory.CreateProvider(search.ProviderTypeVideos); err != nil {
		logger.Warn("Video search disabled", "reason", err.Error())
	} else {
		deps.Videos = videos
		if provider, ok := videos.(*search.VideoProvider); ok {
			deps.VideoDetails = provider
		}
	}

	// Wire up the AI tutor when a Gemini key is configured
	if cfg.AI.Gemini.APIKey != "" {
		tutor, err := llm.NewClient(ctx, cfg.AI.Gemini.APIKey, cfg.AI.Gemini.Model)
		if err != nil {
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		defer tutor.Close()
		deps.Tutor = tutor
	} else {
		logger.Warn("AI tutoring disabled", "reason", "no Gemini API key configured")
	}

	// Create HTTP server
	srv := server.New(deps, serverCfg, cfg.Search)

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		logger.Info(fmt.Sprintf("Server listening on http://%s:%d", serverCfg.Host, serverCfg.Port))
		logger.Info("Press Ctrl+C to stop")
		serverErrors <- srv.Start()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive our signal or an error from server
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("Server shutdown initiated", "signal", sig.String())

		// Create shutdown context with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
		defer cancel()

		// Attempt graceful shutdown
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed, forcing close", err)
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info("Server stopped successfully")
	}

	return nil
}
