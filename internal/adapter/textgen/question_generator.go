package textgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quizforge/internal/domain"
)

// QuestionGenerator implements domain.QuestionGenerator on the shared LLM client.
type QuestionGenerator struct {
	client *Client
}

// NewQuestionGenerator creates a new instance of QuestionGenerator.
func NewQuestionGenerator(client *Client) domain.QuestionGenerator {
	return &QuestionGenerator{client: client}
}

// Generate produces one question stem per correct answer, using the summary
// as context.
func (g *QuestionGenerator) Generate(ctx context.Context, summary string, correctAnswers []string) ([]string, error) {
	prompt := fmt.Sprintf(`You are a quiz question generator. Respond with ONLY a JSON array of strings, one question per answer, in the given order.

Each question must be answerable from the context and its answer must be exactly
the corresponding answer below. Do not include the answer in the question text.

Context: %s

Answers: %s`, summary, strings.Join(correctAnswers, ", "))

	response, err := g.client.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseQuestionResponse(response, len(correctAnswers))
}

func parseQuestionResponse(response string, want int) ([]string, error) {
	var stems []string
	if err := json.Unmarshal([]byte(cleanJSONResponse(response)), &stems); err != nil {
		return nil, fmt.Errorf("failed to parse question response: %w", err)
	}
	if len(stems) != want {
		return nil, fmt.Errorf("question generator returned %d stems for %d answers", len(stems), want)
	}
	for i, stem := range stems {
		if strings.TrimSpace(stem) == "" {
			return nil, fmt.Errorf("question generator returned an empty stem at index %d", i)
		}
	}
	return stems, nil
}
