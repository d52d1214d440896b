package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/spf13/viper"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	// DefaultModel is the default Gemini model used for tutoring requests.
	DefaultModel = "gemini-2.0-flash"
)

// ErrQuotaExceeded indicates the Gemini API rejected the request because
// the key's quota was exhausted.
var ErrQuotaExceeded = errors.New("llm: quota exceeded")

// Client represents a client for the Gemini tutoring model.
type Client struct {
	apiKey    string
	modelName string
	gClient   *genai.Client
}

// NewClient creates a new tutoring client.
// It supports multiple ways to get the API key (in order of preference):
// 1. The apiKey argument
// 2. Environment variable: GEMINI_API_KEY
// 3. Viper configuration: ai.gemini.api_key
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if apiKey == "" {
		if apiKey = os.Getenv("GEMINI_API_KEY"); apiKey == "" {
			apiKey = viper.GetString("ai.gemini.api_key")
		}
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY environment variable or ai.gemini.api_key in config file")
	}

	if modelName == "" {
		modelName = viper.GetString("ai.gemini.model")
		if modelName == "" {
			modelName = DefaultModel
		}
	}

	gClient, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		apiKey:    apiKey,
		modelName: modelName,
		gClient:   gClient,
	}, nil
}

// Close releases the underlying API connection.
func (c *Client) Close() error {
	return c.gClient.Close()
}

// Explain generates an explanation of a topic at the requested difficulty
// (beginner, intermediate or advanced).
func (c *Client) Explain(ctx context.Context, query, difficulty string) (string, error) {
	return c.generateContent(ctx, explanationPrompt(query, difficulty))
}

// Chat answers a student question conversationally, using the optional
// topic context and prior turns.
func (c *Client) Chat(ctx context.Context, message, topic string, history []Message) (string, error) {
	return c.generateContent(ctx, chatPrompt(message, topic, history))
}

// StudyNotes generates study notes for a topic in one of three formats:
// summary, detailed or flashcards.
func (c *Client) StudyNotes(ctx context.Context, topic, subject, noteType string) (string, error) {
	return c.generateContent(ctx, notesPrompt(topic, subject, noteType))
}

// generateContent is a helper that wraps the SDK's GenerateContent call
func (c *Client) generateContent(ctx context.Context, prompt string) (string, error) {
	model := c.gClient.GenerativeModel(c.modelName)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) && (gErr.Code == 429 || strings.Contains(gErr.Message, "quota")) {
			return "", ErrQuotaExceeded
		}
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return text, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
