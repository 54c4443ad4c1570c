package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/middleware"
	"quizforge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) Generate(ctx context.Context, userID, topic, text string) (*domain.GenerationReport, error) {
	args := m.Called(ctx, userID, topic, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerationReport), args.Error(1)
}

func (m *MockGenerationService) GenerateBatch(ctx context.Context, userID, topic string, texts []string) []service.BatchItem {
	args := m.Called(ctx, userID, topic, texts)
	return args.Get(0).([]service.BatchItem)
}

type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) ListQuestions(ctx context.Context, userID, topic string) ([]*domain.QuestionDetail, error) {
	args := m.Called(ctx, userID, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuestionDetail), args.Error(1)
}

func (m *MockQuestionService) GetQuestion(ctx context.Context, id string) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionService) UpdateQuestion(ctx context.Context, id, questionText, correctChoice string, choices, tags []string) (*domain.Question, error) {
	args := m.Called(ctx, id, questionText, correctChoice, choices, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionService) DeleteQuestion(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionService) DeleteTopic(ctx context.Context, userID, topic string) error {
	args := m.Called(ctx, userID, topic)
	return args.Error(0)
}

func (m *MockQuestionService) AddComment(ctx context.Context, questionID, userID, text string) (*domain.Comment, error) {
	args := m.Called(ctx, questionID, userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockQuestionService) AddRating(ctx context.Context, questionID, userID string, value int) (*domain.Rating, error) {
	args := m.Called(ctx, questionID, userID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *MockQuestionService) GenerationStatus(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

const testQuestionID = "01HZXW1S2T3V4W5X6Y7Z8A9B0C"

func setupTestApp(generation *MockGenerationService, questions *MockQuestionService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	h := NewQuestionHandler(generation, questions)
	vm := middleware.NewValidationMiddleware()

	api := app.Group("/api")
	api.Post("/questions/generate", h.Generate)
	api.Post("/questions/generate/batch", h.GenerateBatch)
	api.Get("/questions", h.ListQuestions)
	api.Delete("/questions", h.DeleteTopic)
	api.Put("/questions/:id", vm.ValidateQuestionID(), h.UpdateQuestion)
	api.Delete("/questions/:id", vm.ValidateQuestionID(), h.DeleteQuestion)
	api.Post("/questions/:id/comments", vm.ValidateQuestionID(), h.AddComment)
	api.Post("/questions/:id/ratings", vm.ValidateQuestionID(), h.AddRating)
	api.Get("/users/:id/generation-status", h.GenerationStatus)
	return app
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestGenerateEndpoint(t *testing.T) {
	generation := new(MockGenerationService)
	questions := new(MockQuestionService)
	app := setupTestApp(generation, questions)

	report := &domain.GenerationReport{
		Questions: []domain.GeneratedQuestion{{
			Question: &domain.Question{
				ID:            testQuestionID,
				UserID:        "user-1",
				Topic:         "geography",
				Context:       "Paris is the capital of France.",
				QuestionText:  "What is the capital of France?",
				CorrectChoice: "Paris",
				Tags:          []string{"Paris"},
			},
			Choices:    []string{"Paris", "London", "Berlin", "Madrid"},
			Duplicates: &domain.DuplicateReport{},
		}},
	}
	generation.On("Generate", mock.Anything, "user-1", "geography",
		"Paris is the capital of France.").Return(report, nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/questions/generate", dto.GenerateRequest{
		UserID: "user-1",
		Topic:  "geography",
		Text:   "Paris is the capital of France.",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body dto.GenerationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, testQuestionID, body.Results[0].QuestionID)
	assert.Equal(t, "Paris", body.Results[0].CorrectAnswer)
	// An empty duplicate report is omitted from the response.
	assert.Nil(t, body.Results[0].DuplicateReport)
	generation.AssertExpectations(t)
}

func TestGenerateEndpointValidatesBody(t *testing.T) {
	generation := new(MockGenerationService)
	questions := new(MockQuestionService)
	app := setupTestApp(generation, questions)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/questions/generate", dto.GenerateRequest{
		UserID: "",
		Topic:  "",
		Text:   "",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	generation.AssertNotCalled(t, "Generate",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateEndpointMapsTranslationFailure(t *testing.T) {
	generation := new(MockGenerationService)
	questions := new(MockQuestionService)
	app := setupTestApp(generation, questions)

	generation.On("Generate", mock.Anything, "user-1", "topic", "text").
		Return(nil, domain.NewTranslationError(assert.AnError))

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/questions/generate", dto.GenerateRequest{
		UserID: "user-1",
		Topic:  "topic",
		Text:   "text",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), string(domain.ErrTranslation))
}

func TestUpdateQuestionEndpointRejectsBadID(t *testing.T) {
	generation := new(MockGenerationService)
	questions := new(MockQuestionService)
	app := setupTestApp(generation, questions)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/questions/not-a-ulid",
		dto.UpdateQuestionRequest{Question: "updated"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	questions.AssertNotCalled(t, "UpdateQuestion", mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteQuestionEndpoint(t *testing.T) {
	generation := new(MockGenerationService)
	questions := new(MockQuestionService)
	app := setupTestApp(generation, questions)

	questions.On("DeleteQuestion", mock.Anything, testQuestionID).Return(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/questions/"+testQuestionID, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	questions.AssertExpectations(t)
}

func TestDeleteQuestionEndpointNotFound(t *testing.T) {
	generation := new(MockGenerationService)
	questions := new(MockQuestionService)
	app := setupTestApp(generation, questions)

	questions.On("DeleteQuestion", mock.Anything, testQuestionID).
		Return(domain.NewQuestionNotFoundError(testQuestionID))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/questions/"+testQuestionID, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddRatingEndpoint(t *testing.T) {
	generation := new(MockGenerationService)
	questions := new(MockQuestionService)
	app := setupTestApp(generation, questions)

	questions.On("AddRating", mock.Anything, testQuestionID, "user-2", 4).
		Return(&domain.Rating{ID: "r-1", QuestionID: testQuestionID}, nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/questions/"+testQuestionID+"/ratings",
		dto.RatingRequest{UserID: "user-2", Rating: 4}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	questions.AssertExpectations(t)
}

func TestAddRatingEndpointRejectsOutOfRange(t *testing.T) {
	generation := new(MockGenerationService)
	questions := new(MockQuestionService)
	app := setupTestApp(generation, questions)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/questions/"+testQuestionID+"/ratings",
		dto.RatingRequest{UserID: "user-2", Rating: 9}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	questions.AssertNotCalled(t, "AddRating",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerationStatusEndpoint(t *testing.T) {
	generation := new(MockGenerationService)
	questions := new(MockQuestionService)
	app := setupTestApp(generation, questions)

	questions.On("GenerationStatus", mock.Anything, "user-1").Return(true, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users/user-1/generation-status", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.GenerationStatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Generating)
}

func TestListQuestionsEndpoint(t *testing.T) {
	generation := new(MockGenerationService)
	questions := new(MockQuestionService)
	app := setupTestApp(generation, questions)

	questions.On("ListQuestions", mock.Anything, "user-1", "geography").
		Return([]*domain.QuestionDetail{{
			Question: domain.Question{
				ID:            testQuestionID,
				UserID:        "user-1",
				Topic:         "geography",
				QuestionText:  "What is the capital of France?",
				CorrectChoice: "Paris",
			},
			Choices:       []string{"Paris", "London", "Berlin", "Madrid"},
			Comments:      []string{"nice"},
			Ratings:       []int{4, 5},
			AverageRating: 4.5,
		}}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/questions?user_id=user-1&topic=geography", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []dto.QuestionDetailResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, 4.5, body[0].AverageRating)
}
