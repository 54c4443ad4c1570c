package textgen

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"quizforge/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Client wraps the LLM backing all four text-generation stages. The stages
// are separate adapters sharing one connection, so they can be swapped for
// different backends independently of the orchestrator.
type Client struct {
	llm llms.Model
}

// NewClient connects to the inference server configured in cfg.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.ServerURL),
		ollama.WithModel(cfg.Model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return &Client{llm: llm}, nil
}

// NewClientWithModel wraps an existing llms.Model, used by tests.
func NewClientWithModel(llm llms.Model) *Client {
	return &Client{llm: llm}
}

// complete sends a single prompt and returns the raw completion.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt)
	if err != nil {
		return "", err
	}
	return response, nil
}

// cleanJSONResponse strips markdown code fences that models wrap around JSON
// payloads despite instructions not to.
func cleanJSONResponse(response string) string {
	s := strings.TrimSpace(response)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}
