package service

import (
	"context"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	args := m.Called(ctx, text, sourceLang, targetLang)
	return args.String(0), args.Error(1)
}

// echoTranslator returns the input unchanged, for tests where the language
// boundary is not under test.
type echoTranslator struct{}

func (echoTranslator) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}

type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, text string) (string, []string, error) {
	args := m.Called(ctx, text)
	var sentences []string
	if args.Get(1) != nil {
		sentences = args.Get(1).([]string)
	}
	return args.String(0), sentences, args.Error(2)
}

type MockKeywordExtractor struct {
	mock.Mock
}

func (m *MockKeywordExtractor) Extract(ctx context.Context, sentences []string, summary string) ([]string, error) {
	args := m.Called(ctx, sentences, summary)
	var keywords []string
	if args.Get(0) != nil {
		keywords = args.Get(0).([]string)
	}
	return keywords, args.Error(1)
}

type MockDistractorGenerator struct {
	mock.Mock
}

func (m *MockDistractorGenerator) Generate(ctx context.Context, keywords []string) ([]string, []string, error) {
	args := m.Called(ctx, keywords)
	var answers, choices []string
	if args.Get(0) != nil {
		answers = args.Get(0).([]string)
	}
	if args.Get(1) != nil {
		choices = args.Get(1).([]string)
	}
	return answers, choices, args.Error(2)
}

type MockQuestionGenerator struct {
	mock.Mock
}

func (m *MockQuestionGenerator) Generate(ctx context.Context, summary string, correctAnswers []string) ([]string, error) {
	args := m.Called(ctx, summary, correctAnswers)
	var stems []string
	if args.Get(0) != nil {
		stems = args.Get(0).([]string)
	}
	return stems, args.Error(1)
}

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) SaveQuestion(ctx context.Context, question *domain.Question) error {
	args := m.Called(ctx, question)
	if question.ID == "" {
		question.ID = "generated-id"
	}
	return args.Error(0)
}

func (m *MockQuestionRepository) SaveChoices(ctx context.Context, questionID string, texts []string) error {
	args := m.Called(ctx, questionID, texts)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetQuestionsByUserAndTopic(ctx context.Context, userID, topic string) ([]*domain.QuestionDetail, error) {
	args := m.Called(ctx, userID, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuestionDetail), args.Error(1)
}

func (m *MockQuestionRepository) UpdateQuestion(ctx context.Context, question *domain.Question, choices []string) error {
	args := m.Called(ctx, question, choices)
	return args.Error(0)
}

func (m *MockQuestionRepository) DeleteQuestion(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) DeleteQuestionsByTopic(ctx context.Context, userID, topic string) error {
	args := m.Called(ctx, userID, topic)
	return args.Error(0)
}

func (m *MockQuestionRepository) FindQuestionIDsByStem(ctx context.Context, userID, stem, excludeID string) ([]string, error) {
	args := m.Called(ctx, userID, stem, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockQuestionRepository) FindChoiceCollisions(ctx context.Context, userID string, texts []string, excludeID string) ([]domain.AnswerCollision, error) {
	args := m.Called(ctx, userID, texts, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AnswerCollision), args.Error(1)
}

type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) AddComment(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockFeedbackRepository) AddRating(ctx context.Context, rating *domain.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

type MockStatusStore struct {
	mock.Mock
}

func (m *MockStatusStore) SetGenerating(ctx context.Context, userID string, inProgress bool) error {
	args := m.Called(ctx, userID, inProgress)
	return args.Error(0)
}

func (m *MockStatusStore) IsGenerating(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// stubTxManager runs the function directly, committing and rolling back
// nothing. Transaction semantics proper are covered by the repository tests.
type stubTxManager struct{}

func (stubTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type MockDuplicateDetector struct {
	mock.Mock
}

func (m *MockDuplicateDetector) Detect(ctx context.Context, userID, stem string, choices []string, excludeID string) *domain.DuplicateReport {
	args := m.Called(ctx, userID, stem, choices, excludeID)
	return args.Get(0).(*domain.DuplicateReport)
}
