package textgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quizforge/internal/domain"
)

// DistractorGenerator implements domain.DistractorGenerator on the shared LLM client.
type DistractorGenerator struct {
	client *Client
}

// NewDistractorGenerator creates a new instance of DistractorGenerator.
func NewDistractorGenerator(client *Client) domain.DistractorGenerator {
	return &DistractorGenerator{client: client}
}

type distractorEntry struct {
	CorrectAnswer string   `json:"correct_answer"`
	Distractors   []string `json:"distractors"`
}

// Generate produces one correct answer and three distractors per keyword.
// The returned choice list is flattened, four entries per question, ordered
// [correct, distractor, distractor, distractor] so the persistence side can
// slice it by question index.
func (g *DistractorGenerator) Generate(ctx context.Context, keywords []string) ([]string, []string, error) {
	prompt := fmt.Sprintf(`You are a distractor generator for multiple-choice quizzes. Respond with ONLY a JSON array, one object per keyword, in the following format:
[
    {
        "correct_answer": "the keyword, possibly normalized as an answer phrase",
        "distractors": ["wrong but plausible", "wrong but plausible", "wrong but plausible"]
    }
]

Rules:
1. Produce exactly one object per keyword, in the given order
2. "distractors" must contain exactly 3 entries
3. Distractors must be of the same kind as the correct answer and clearly incorrect

Keywords: %s`, strings.Join(keywords, ", "))

	response, err := g.client.complete(ctx, prompt)
	if err != nil {
		return nil, nil, err
	}
	return parseDistractorResponse(response)
}

func parseDistractorResponse(response string) ([]string, []string, error) {
	var entries []distractorEntry
	if err := json.Unmarshal([]byte(cleanJSONResponse(response)), &entries); err != nil {
		return nil, nil, fmt.Errorf("failed to parse distractor response: %w", err)
	}

	correctAnswers := make([]string, 0, len(entries))
	allChoices := make([]string, 0, domain.ChoicesPerQuestion*len(entries))
	for i, entry := range entries {
		if entry.CorrectAnswer == "" {
			return nil, nil, fmt.Errorf("distractor entry %d has no correct answer", i)
		}
		if len(entry.Distractors) != domain.ChoicesPerQuestion-1 {
			return nil, nil, fmt.Errorf("distractor entry %d has %d distractors, want %d",
				i, len(entry.Distractors), domain.ChoicesPerQuestion-1)
		}
		correctAnswers = append(correctAnswers, entry.CorrectAnswer)
		allChoices = append(allChoices, entry.CorrectAnswer)
		allChoices = append(allChoices, entry.Distractors...)
	}
	return correctAnswers, allChoices, nil
}
