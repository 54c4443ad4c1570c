package service

import (
	"context"
	"slices"

	"quizforge/internal/domain"
)

// QuestionService covers everything that happens to a question after
// generation: listing, editing, deleting and user feedback.
type QuestionService interface {
	ListQuestions(ctx context.Context, userID, topic string) ([]*domain.QuestionDetail, error)
	GetQuestion(ctx context.Context, id string) (*domain.Question, error)
	UpdateQuestion(ctx context.Context, id, questionText, correctChoice string, choices, tags []string) (*domain.Question, error)
	DeleteQuestion(ctx context.Context, id string) error
	DeleteTopic(ctx context.Context, userID, topic string) error
	AddComment(ctx context.Context, questionID, userID, text string) (*domain.Comment, error)
	AddRating(ctx context.Context, questionID, userID string, value int) (*domain.Rating, error)
	GenerationStatus(ctx context.Context, userID string) (bool, error)
}

type questionService struct {
	questionRepo domain.QuestionRepository
	feedbackRepo domain.FeedbackRepository
	txManager    domain.TransactionManager
	status       domain.GenerationStatusStore
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(
	questionRepo domain.QuestionRepository,
	feedbackRepo domain.FeedbackRepository,
	txManager domain.TransactionManager,
	status domain.GenerationStatusStore,
) QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		feedbackRepo: feedbackRepo,
		txManager:    txManager,
		status:       status,
	}
}

// ListQuestions returns the user's questions under a topic together with
// their choices, comments and ratings.
func (s *questionService) ListQuestions(ctx context.Context, userID, topic string) ([]*domain.QuestionDetail, error) {
	if userID == "" || topic == "" {
		return nil, domain.NewInvalidInputError("user ID and topic are required")
	}
	return s.questionRepo.GetQuestionsByUserAndTopic(ctx, userID, topic)
}

// GetQuestion retrieves a single question by ID.
func (s *questionService) GetQuestion(ctx context.Context, id string) (*domain.Question, error) {
	question, err := s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	return question, nil
}

// UpdateQuestion edits a question's text, correct choice, choices and tags.
// Empty fields keep their current value. When choices are supplied there must
// be exactly four and the correct choice must be one of them; the question row
// and all four choice rows are replaced in one transaction.
func (s *questionService) UpdateQuestion(ctx context.Context, id, questionText, correctChoice string, choices, tags []string) (*domain.Question, error) {
	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}

	if questionText != "" {
		question.QuestionText = questionText
	}
	if correctChoice != "" {
		question.CorrectChoice = correctChoice
	}
	if tags != nil {
		question.Tags = tags
	}
	if len(choices) > 0 {
		if len(choices) != domain.ChoicesPerQuestion {
			return nil, domain.NewInvalidInputError("a question must have exactly 4 choices")
		}
		if !slices.Contains(choices, question.CorrectChoice) {
			return nil, domain.NewInvalidInputError("the correct choice must be one of the choices")
		}
	}
	if err := question.Validate(); err != nil {
		return nil, err
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.questionRepo.UpdateQuestion(txCtx, question, choices)
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion removes a question and everything attached to it.
func (s *questionService) DeleteQuestion(ctx context.Context, id string) error {
	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.questionRepo.DeleteQuestion(txCtx, id)
	})
}

// DeleteTopic removes every question the user owns under the topic.
func (s *questionService) DeleteTopic(ctx context.Context, userID, topic string) error {
	if userID == "" || topic == "" {
		return domain.NewInvalidInputError("user ID and topic are required")
	}
	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.questionRepo.DeleteQuestionsByTopic(txCtx, userID, topic)
	})
}

// AddComment attaches a comment to an existing question.
func (s *questionService) AddComment(ctx context.Context, questionID, userID, text string) (*domain.Comment, error) {
	if _, err := s.GetQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	comment := &domain.Comment{
		QuestionID:  questionID,
		UserID:      userID,
		CommentText: text,
	}
	if err := s.feedbackRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// AddRating attaches a 1 to 5 rating to an existing question.
func (s *questionService) AddRating(ctx context.Context, questionID, userID string, value int) (*domain.Rating, error) {
	if _, err := s.GetQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	rating := &domain.Rating{
		QuestionID:  questionID,
		UserID:      userID,
		RatingValue: value,
	}
	if err := rating.Validate(); err != nil {
		return nil, domain.NewInvalidInputError(err.Error())
	}
	if err := s.feedbackRepo.AddRating(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// GenerationStatus reports the user's advisory "generation in progress" flag.
func (s *questionService) GenerationStatus(ctx context.Context, userID string) (bool, error) {
	return s.status.IsGenerating(ctx, userID)
}
