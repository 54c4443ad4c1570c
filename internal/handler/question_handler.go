package handler

import (
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"
	"quizforge/internal/service"
	"quizforge/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	generation service.GenerationService
	questions  service.QuestionService
	validator  *validation.Validator
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(generation service.GenerationService, questions service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		generation: generation,
		questions:  questions,
		validator:  validation.NewValidator(),
	}
}

// Generate handles POST /api/questions/generate
func (h *QuestionHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateGenerateRequest(req.UserID, req.Topic, []string{req.Text}); len(errs) > 0 {
		return errs
	}

	report, err := h.generation.Generate(c.Context(), req.UserID, req.Topic, req.Text)
	if err != nil {
		logger.Get().Error("Generation failed",
			zap.String("user_id", req.UserID),
			zap.String("topic", req.Topic),
			zap.Error(err),
		)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewGenerationResponse(report))
}

// GenerateBatch handles POST /api/questions/generate/batch
func (h *QuestionHandler) GenerateBatch(c *fiber.Ctx) error {
	var req dto.BatchGenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateGenerateRequest(req.UserID, req.Topic, req.Texts); len(errs) > 0 {
		return errs
	}

	items := h.generation.GenerateBatch(c.Context(), req.UserID, req.Topic, req.Texts)

	resp := dto.BatchGenerationResponse{Items: make([]dto.BatchGenerationItem, 0, len(items))}
	for i, item := range items {
		out := dto.BatchGenerationItem{Index: i}
		if item.Err != nil {
			out.Error = item.Err.Error()
		} else {
			out.Response = dto.NewGenerationResponse(item.Report)
		}
		resp.Items = append(resp.Items, out)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListQuestions handles GET /api/questions
func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	topic := c.Query("topic")
	if userID == "" || topic == "" {
		return domain.ValidationErrors{
			domain.NewMissingFieldError("user_id"),
			domain.NewMissingFieldError("topic"),
		}
	}

	details, err := h.questions.ListQuestions(c.Context(), userID, topic)
	if err != nil {
		return err
	}

	results := make([]dto.QuestionDetailResponse, 0, len(details))
	for _, detail := range details {
		results = append(results, dto.NewQuestionDetailResponse(detail))
	}
	return c.JSON(results)
}

// UpdateQuestion handles PUT /api/questions/:id
func (h *QuestionHandler) UpdateQuestion(c *fiber.Ctx) error {
	id := c.Locals("validated_question_id").(string)

	var req dto.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	question, err := h.questions.UpdateQuestion(c.Context(), id,
		req.Question, req.CorrectAnswer, req.Choices, req.Tags)
	if err != nil {
		return err
	}

	return c.JSON(dto.QuestionResult{
		QuestionID:    question.ID,
		Topic:         question.Topic,
		Context:       question.Context,
		Question:      question.QuestionText,
		CorrectAnswer: question.CorrectChoice,
		Choices:       req.Choices,
		Tags:          question.Tags,
	})
}

// DeleteQuestion handles DELETE /api/questions/:id
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	id := c.Locals("validated_question_id").(string)

	if err := h.questions.DeleteQuestion(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteTopic handles DELETE /api/questions
func (h *QuestionHandler) DeleteTopic(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	topic := c.Query("topic")

	if err := h.questions.DeleteTopic(c.Context(), userID, topic); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddComment handles POST /api/questions/:id/comments
func (h *QuestionHandler) AddComment(c *fiber.Ctx) error {
	id := c.Locals("validated_question_id").(string)

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateCommentRequest(req.UserID, req.Comment); len(errs) > 0 {
		return errs
	}

	comment, err := h.questions.AddComment(c.Context(), id, req.UserID, req.Comment)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"comment_id":  comment.ID,
		"question_id": comment.QuestionID,
	})
}

// AddRating handles POST /api/questions/:id/ratings
func (h *QuestionHandler) AddRating(c *fiber.Ctx) error {
	id := c.Locals("validated_question_id").(string)

	var req dto.RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateRatingRequest(req.UserID, req.Rating); len(errs) > 0 {
		return errs
	}

	rating, err := h.questions.AddRating(c.Context(), id, req.UserID, req.Rating)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"rating_id":   rating.ID,
		"question_id": rating.QuestionID,
	})
}

// GenerationStatus handles GET /api/users/:id/generation-status
func (h *QuestionHandler) GenerationStatus(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("id")}
	}

	inProgress, err := h.questions.GenerationStatus(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.GenerationStatusResponse{
		UserID:     userID,
		Generating: inProgress,
	})
}
