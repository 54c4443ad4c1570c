package domain

import (
	"fmt"
	"time"
)

// ChoicesPerQuestion is the fixed number of answer choices every generated
// question carries: one correct answer and three distractors.
const ChoicesPerQuestion = 4

// Question represents a persisted multiple-choice question owned by a user.
type Question struct {
	ID            string
	UserID        string
	Topic         string
	Context       string // source text the question was derived from
	QuestionText  string
	CorrectChoice string
	Tags          []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewQuestion creates a new Question instance
func NewQuestion(userID, topic, context, questionText, correctChoice string, tags []string) *Question {
	now := time.Now()
	return &Question{
		UserID:        userID,
		Topic:         topic,
		Context:       context,
		QuestionText:  questionText,
		CorrectChoice: correctChoice,
		Tags:          tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.UserID == "" {
		return NewValidationError("user ID is required")
	}
	if q.Topic == "" {
		return NewValidationError("topic is required")
	}
	if q.QuestionText == "" {
		return NewValidationError("question text is required")
	}
	if q.CorrectChoice == "" {
		return NewValidationError("correct choice is required")
	}
	return nil
}

// Choice represents one answer option attached to a question.
type Choice struct {
	ID         string
	QuestionID string
	ChoiceText string
	CreatedAt  time.Time
}

// Comment represents a user comment on a question.
type Comment struct {
	ID          string
	QuestionID  string
	UserID      string
	CommentText string
	CreatedAt   time.Time
}

// Rating represents a user rating on a question.
type Rating struct {
	ID          string
	QuestionID  string
	UserID      string
	RatingValue int
	CreatedAt   time.Time
}

// Validate validates the rating
func (r *Rating) Validate() error {
	if r.RatingValue < 1 || r.RatingValue > 5 {
		return NewValidationError("rating value must be between 1 and 5")
	}
	return nil
}

// QuestionDetail bundles a question with its children for listing.
type QuestionDetail struct {
	Question      Question
	Choices       []string
	Comments      []string
	Ratings       []int
	AverageRating float64
}

// AnswerCollision identifies a choice text shared with another question.
type AnswerCollision struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// DuplicateReport lists collisions between a newly created question and the
// owning user's existing corpus. It is transient: built once per generation
// call, returned to the caller, never persisted.
type DuplicateReport struct {
	DuplicateQuestionIDs []string          `json:"duplicate_questions"`
	DuplicateAnswers     []AnswerCollision `json:"duplicate_answers"`
}

// IsEmpty reports whether the report found no collisions.
func (r *DuplicateReport) IsEmpty() bool {
	return len(r.DuplicateQuestionIDs) == 0 && len(r.DuplicateAnswers) == 0
}

// GenerationTuple is one (stem, correct answer, four choices) candidate as
// assembled from the model stages, still in the model's working language.
type GenerationTuple struct {
	Stem          string
	CorrectAnswer string
	Choices       []string
}

// GenerationOutput is the orchestrator's result: parallel stem/answer lists
// plus the flattened choice list, sliced per question by index*4 : index*4+4.
type GenerationOutput struct {
	Topic          string // topic label in the working language
	Context        string // source context in the working language
	Stems          []string
	CorrectAnswers []string
	Choices        []string
}

// Validate enforces the cross-list contract: the flattened choice list must
// hold exactly four entries per stem, and stems and correct answers must be
// parallel. A mismatch is fatal for the whole call, not per item.
func (o *GenerationOutput) Validate() error {
	if len(o.Stems) != len(o.CorrectAnswers) {
		return NewGenerationStageError("assembly", fmt.Errorf(
			"got %d stems but %d correct answers", len(o.Stems), len(o.CorrectAnswers)))
	}
	if len(o.Choices) != ChoicesPerQuestion*len(o.Stems) {
		return NewGenerationStageError("assembly", fmt.Errorf(
			"got %d choices for %d questions, want %d",
			len(o.Choices), len(o.Stems), ChoicesPerQuestion*len(o.Stems)))
	}
	return nil
}

// GeneratedQuestion is one committed pipeline result, with all user-visible
// text already converted back to the user's language.
type GeneratedQuestion struct {
	Question   *Question
	Choices    []string
	Duplicates *DuplicateReport
}

// TupleFailure records one question candidate that could not be persisted.
// Other candidates of the same call may still have succeeded.
type TupleFailure struct {
	Index int
	Err   error
}

// GenerationReport is the outcome of one generation call: the questions that
// were committed plus the candidates that failed.
type GenerationReport struct {
	Questions []GeneratedQuestion
	Failures  []TupleFailure
}

// Tuples slices the validated output into per-question tuples.
func (o *GenerationOutput) Tuples() []GenerationTuple {
	tuples := make([]GenerationTuple, 0, len(o.Stems))
	for i, stem := range o.Stems {
		tuples = append(tuples, GenerationTuple{
			Stem:          stem,
			CorrectAnswer: o.CorrectAnswers[i],
			Choices:       o.Choices[i*ChoicesPerQuestion : (i+1)*ChoicesPerQuestion],
		})
	}
	return tuples
}
