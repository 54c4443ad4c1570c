package textgen

import (
	"context"
	"encoding/json"
	"fmt"

	"quizforge/internal/domain"
)

// Summarizer implements domain.Summarizer on the shared LLM client.
type Summarizer struct {
	client *Client
}

// NewSummarizer creates a new instance of Summarizer.
func NewSummarizer(client *Client) domain.Summarizer {
	return &Summarizer{client: client}
}

type summaryResponse struct {
	Summary   string   `json:"summary"`
	Sentences []string `json:"sentences"`
}

// Summarize condenses text and returns the sentence-segmented original. The
// segmentation comes from the same model call so its granularity matches what
// the keyword extractor was trained against.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, []string, error) {
	prompt := fmt.Sprintf(`You are a text summarizer. Respond with ONLY a JSON object in the following format:
{
    "summary": "a condensed summary of the text",
    "sentences": ["the original text", "split into its sentences"]
}

Rules:
1. "summary" keeps the salient facts of the text, under half its length
2. "sentences" contains every sentence of the ORIGINAL text, in order, one string per sentence
3. Do not add, drop or rephrase sentences in "sentences"

Text: %s`, text)

	response, err := s.client.complete(ctx, prompt)
	if err != nil {
		return "", nil, err
	}

	parsed, err := parseSummaryResponse(response)
	if err != nil {
		return "", nil, err
	}
	return parsed.Summary, parsed.Sentences, nil
}

func parseSummaryResponse(response string) (*summaryResponse, error) {
	var parsed summaryResponse
	if err := json.Unmarshal([]byte(cleanJSONResponse(response)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse summarizer response: %w", err)
	}
	if parsed.Summary == "" {
		return nil, fmt.Errorf("summarizer returned an empty summary")
	}
	if len(parsed.Sentences) == 0 {
		return nil, fmt.Errorf("summarizer returned no sentences")
	}
	return &parsed, nil
}
