package domain

import "context"

// Translator converts text between the user-facing language and the model's
// working language. Implementations talk to an external service; failures are
// fatal for the current call and are not retried.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Summarizer condenses a context into a summary and returns the original
// text segmented into sentences, at the granularity the keyword extractor
// expects.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (summary string, sentences []string, err error)
}

// KeywordExtractor compares the segmented original against its summary and
// returns the terms the summary treats as salient.
type KeywordExtractor interface {
	Extract(ctx context.Context, sentences []string, summary string) ([]string, error)
}

// DistractorGenerator produces, for each retained keyword, one correct answer
// and three distractors. allChoices is flattened: four entries per question,
// ordered [correct, distractor, distractor, distractor].
type DistractorGenerator interface {
	Generate(ctx context.Context, keywords []string) (correctAnswers []string, allChoices []string, err error)
}

// QuestionGenerator produces one question stem per correct answer, using the
// summary as context.
type QuestionGenerator interface {
	Generate(ctx context.Context, summary string, correctAnswers []string) ([]string, error)
}
