package domain

import "context"

// QuestionRepository defines the interface for question persistence.
// Implementations must honour the transaction stored in the context by the
// TransactionManager, so that SaveQuestion and SaveChoices participate in the
// same unit of work.
type QuestionRepository interface {
	// SaveQuestion inserts the question row and assigns its identifier.
	// The identifier is visible to the caller before the surrounding
	// transaction commits.
	SaveQuestion(ctx context.Context, question *Question) error

	// SaveChoices inserts the choice rows referencing questionID.
	SaveChoices(ctx context.Context, questionID string, texts []string) error

	// GetQuestionByID retrieves a question by its ID; nil if not found.
	GetQuestionByID(ctx context.Context, id string) (*Question, error)

	// GetQuestionsByUserAndTopic returns a user's questions for a topic
	// together with their choices, comments and ratings.
	GetQuestionsByUserAndTopic(ctx context.Context, userID, topic string) ([]*QuestionDetail, error)

	// UpdateQuestion updates the question row and, when choices is
	// non-empty, replaces all four choice rows atomically.
	UpdateQuestion(ctx context.Context, question *Question, choices []string) error

	// DeleteQuestion removes the question and all of its choices, comments
	// and ratings. No orphaned child rows may survive.
	DeleteQuestion(ctx context.Context, id string) error

	// DeleteQuestionsByTopic cascades DeleteQuestion over every question
	// the user owns under the topic.
	DeleteQuestionsByTopic(ctx context.Context, userID, topic string) error

	// FindQuestionIDsByStem returns IDs of the user's other questions whose
	// stem equals stem exactly, excluding excludeID.
	FindQuestionIDsByStem(ctx context.Context, userID, stem, excludeID string) ([]string, error)

	// FindChoiceCollisions returns {question ID, choice text} pairs where a
	// choice of another question owned by the user matches one of texts,
	// excluding excludeID.
	FindChoiceCollisions(ctx context.Context, userID string, texts []string, excludeID string) ([]AnswerCollision, error)
}

// FeedbackRepository defines the interface for question comments and ratings.
type FeedbackRepository interface {
	AddComment(ctx context.Context, comment *Comment) error
	AddRating(ctx context.Context, rating *Rating) error
}

// GenerationStatusStore tracks the per-user "generation in progress" flag.
// The flag is advisory only: it is overwritten, not acquired, and concurrent
// calls for one user race on it. It must never be used for mutual exclusion.
type GenerationStatusStore interface {
	SetGenerating(ctx context.Context, userID string, inProgress bool) error
	IsGenerating(ctx context.Context, userID string) (bool, error)
}

// TransactionManager runs a function inside a database transaction. The
// transaction is committed when fn returns nil and rolled back otherwise.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DuplicateDetector finds exact-match collisions between a candidate question
// and the owning user's already-committed corpus. Detection is best effort:
// implementations return a partial or empty report on lookup failure rather
// than an error, since the question is already persisted when they run.
type DuplicateDetector interface {
	Detect(ctx context.Context, userID, stem string, choices []string, excludeID string) *DuplicateReport
}
