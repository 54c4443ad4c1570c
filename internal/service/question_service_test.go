package service

import (
	"context"
	"testing"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newQuestionService() (QuestionService, *MockQuestionRepository, *MockFeedbackRepository, *MockStatusStore) {
	repo := new(MockQuestionRepository)
	feedback := new(MockFeedbackRepository)
	status := new(MockStatusStore)
	return NewQuestionService(repo, feedback, stubTxManager{}, status), repo, feedback, status
}

func existingQuestion() *domain.Question {
	return &domain.Question{
		ID:            "q-1",
		UserID:        "user-1",
		Topic:         "geography",
		Context:       "source text",
		QuestionText:  "What is the capital of France?",
		CorrectChoice: "Paris",
		Tags:          []string{"Paris"},
	}
}

func TestUpdateQuestionReplacesChoices(t *testing.T) {
	svc, repo, _, _ := newQuestionService()

	repo.On("GetQuestionByID", mock.Anything, "q-1").Return(existingQuestion(), nil)
	repo.On("UpdateQuestion", mock.Anything, mock.Anything,
		[]string{"Paris", "Lyon", "Nice", "Lille"}).Return(nil)

	updated, err := svc.UpdateQuestion(context.Background(), "q-1",
		"Which city is the capital of France?", "",
		[]string{"Paris", "Lyon", "Nice", "Lille"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Which city is the capital of France?", updated.QuestionText)
	assert.Equal(t, "Paris", updated.CorrectChoice)
	repo.AssertExpectations(t)
}

func TestUpdateQuestionNotFound(t *testing.T) {
	svc, repo, _, _ := newQuestionService()

	repo.On("GetQuestionByID", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.UpdateQuestion(context.Background(), "missing", "text", "", nil, nil)
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.ErrQuestionNotFound))
	repo.AssertNotCalled(t, "UpdateQuestion", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateQuestionRejectsWrongChoiceCount(t *testing.T) {
	svc, repo, _, _ := newQuestionService()

	repo.On("GetQuestionByID", mock.Anything, "q-1").Return(existingQuestion(), nil)

	_, err := svc.UpdateQuestion(context.Background(), "q-1", "", "",
		[]string{"Paris", "Lyon"}, nil)
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.ErrInvalidInput))
}

func TestUpdateQuestionRejectsCorrectChoiceOutsideChoices(t *testing.T) {
	svc, repo, _, _ := newQuestionService()

	repo.On("GetQuestionByID", mock.Anything, "q-1").Return(existingQuestion(), nil)

	_, err := svc.UpdateQuestion(context.Background(), "q-1", "", "Rome",
		[]string{"Paris", "Lyon", "Nice", "Lille"}, nil)
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.ErrInvalidInput))
}

func TestAddRatingValidatesRange(t *testing.T) {
	svc, repo, feedback, _ := newQuestionService()

	repo.On("GetQuestionByID", mock.Anything, "q-1").Return(existingQuestion(), nil)

	_, err := svc.AddRating(context.Background(), "q-1", "user-2", 6)
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.ErrInvalidInput))
	feedback.AssertNotCalled(t, "AddRating", mock.Anything, mock.Anything)
}

func TestAddCommentRequiresExistingQuestion(t *testing.T) {
	svc, repo, feedback, _ := newQuestionService()

	repo.On("GetQuestionByID", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.AddComment(context.Background(), "missing", "user-2", "nice question")
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.ErrQuestionNotFound))
	feedback.AssertNotCalled(t, "AddComment", mock.Anything, mock.Anything)
}

func TestAddCommentSuccess(t *testing.T) {
	svc, repo, feedback, _ := newQuestionService()

	repo.On("GetQuestionByID", mock.Anything, "q-1").Return(existingQuestion(), nil)
	feedback.On("AddComment", mock.Anything, mock.MatchedBy(func(c *domain.Comment) bool {
		return c.QuestionID == "q-1" && c.UserID == "user-2" && c.CommentText == "nice question"
	})).Return(nil)

	comment, err := svc.AddComment(context.Background(), "q-1", "user-2", "nice question")
	require.NoError(t, err)
	assert.Equal(t, "q-1", comment.QuestionID)
	feedback.AssertExpectations(t)
}

func TestGenerationStatusPassthrough(t *testing.T) {
	svc, _, _, status := newQuestionService()

	status.On("IsGenerating", mock.Anything, "user-1").Return(true, nil)

	inProgress, err := svc.GenerationStatus(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, inProgress)
}

func TestDeleteTopicRequiresOwnerAndTopic(t *testing.T) {
	svc, repo, _, _ := newQuestionService()

	err := svc.DeleteTopic(context.Background(), "", "geography")
	require.Error(t, err)
	repo.AssertNotCalled(t, "DeleteQuestionsByTopic", mock.Anything, mock.Anything, mock.Anything)

	repo.On("DeleteQuestionsByTopic", mock.Anything, "user-1", "geography").Return(nil)
	require.NoError(t, svc.DeleteTopic(context.Background(), "user-1", "geography"))
	repo.AssertExpectations(t)
}
