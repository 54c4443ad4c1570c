package textgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quizforge/internal/domain"
)

// KeywordExtractor implements domain.KeywordExtractor on the shared LLM client.
type KeywordExtractor struct {
	client *Client
}

// NewKeywordExtractor creates a new instance of KeywordExtractor.
func NewKeywordExtractor(client *Client) domain.KeywordExtractor {
	return &KeywordExtractor{client: client}
}

// Extract compares the segmented original against the summary and returns the
// terms the summary treats as salient. Each keyword seeds one question.
func (e *KeywordExtractor) Extract(ctx context.Context, sentences []string, summary string) ([]string, error) {
	prompt := fmt.Sprintf(`You are a keyword extractor for quiz generation. Respond with ONLY a JSON array of strings.

Given the original sentences and their summary, return the terms that appear in the
original text and that the summary treats as salient. Each keyword must be a short
noun phrase usable as the correct answer of a multiple-choice question.

Original sentences:
%s

Summary: %s`, strings.Join(sentences, "\n"), summary)

	response, err := e.client.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseKeywordResponse(response)
}

func parseKeywordResponse(response string) ([]string, error) {
	var keywords []string
	if err := json.Unmarshal([]byte(cleanJSONResponse(response)), &keywords); err != nil {
		return nil, fmt.Errorf("failed to parse keyword response: %w", err)
	}
	filtered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			filtered = append(filtered, kw)
		}
	}
	return filtered, nil
}
