package dto

import "quizforge/internal/domain"

// GenerateRequest is the body of a single-text generation call.
type GenerateRequest struct {
	UserID string `json:"user_id"`
	Topic  string `json:"topic"`
	Text   string `json:"text"`
}

// BatchGenerateRequest is the body of a multi-text generation call. Each text
// runs through the pipeline independently.
type BatchGenerateRequest struct {
	UserID string   `json:"user_id"`
	Topic  string   `json:"topic"`
	Texts  []string `json:"texts"`
}

// QuestionResult represents one committed question in the API response.
type QuestionResult struct {
	QuestionID      string                  `json:"question_id"`
	Topic           string                  `json:"topic"`
	Context         string                  `json:"context"`
	Question        string                  `json:"question"`
	CorrectAnswer   string                  `json:"correct_answer"`
	Choices         []string                `json:"choices"`
	Tags            []string                `json:"tags"`
	DuplicateReport *domain.DuplicateReport `json:"duplicate_report,omitempty"`
}

// GenerationError represents one question candidate that failed to persist.
type GenerationError struct {
	Index int    `json:"index"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

// GenerationResponse is the result of one generation call: committed
// questions plus per-candidate failures.
type GenerationResponse struct {
	Results []QuestionResult  `json:"results"`
	Errors  []GenerationError `json:"errors,omitempty"`
}

// BatchGenerationResponse is the per-text breakdown of a multi-text call.
type BatchGenerationResponse struct {
	Items []BatchGenerationItem `json:"items"`
}

// BatchGenerationItem is the outcome of one text in a batch call.
type BatchGenerationItem struct {
	Index    int                 `json:"index"`
	Response *GenerationResponse `json:"response,omitempty"`
	Error    string              `json:"error,omitempty"`
}

// QuestionDetailResponse represents a stored question with its feedback.
type QuestionDetailResponse struct {
	QuestionID    string   `json:"question_id"`
	Topic         string   `json:"topic"`
	Context       string   `json:"context"`
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correct_answer"`
	Choices       []string `json:"choices"`
	Tags          []string `json:"tags"`
	Comments      []string `json:"comments"`
	Ratings       []int    `json:"ratings"`
	AverageRating float64  `json:"average_rating"`
}

// UpdateQuestionRequest is the body of a question edit. Empty fields keep
// their current value.
type UpdateQuestionRequest struct {
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correct_answer"`
	Choices       []string `json:"choices"`
	Tags          []string `json:"tags"`
}

// CommentRequest is the body of a comment submission.
type CommentRequest struct {
	UserID  string `json:"user_id"`
	Comment string `json:"comment"`
}

// RatingRequest is the body of a rating submission.
type RatingRequest struct {
	UserID string `json:"user_id"`
	Rating int    `json:"rating"`
}

// GenerationStatusResponse reports the advisory per-user generation flag.
type GenerationStatusResponse struct {
	UserID     string `json:"user_id"`
	Generating bool   `json:"generating"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewQuestionResult converts a committed pipeline result for the API.
func NewQuestionResult(generated domain.GeneratedQuestion) QuestionResult {
	report := generated.Duplicates
	if report != nil && report.IsEmpty() {
		report = nil
	}
	return QuestionResult{
		QuestionID:      generated.Question.ID,
		Topic:           generated.Question.Topic,
		Context:         generated.Question.Context,
		Question:        generated.Question.QuestionText,
		CorrectAnswer:   generated.Question.CorrectChoice,
		Choices:         generated.Choices,
		Tags:            generated.Question.Tags,
		DuplicateReport: report,
	}
}

// NewGenerationResponse converts a generation report for the API.
func NewGenerationResponse(report *domain.GenerationReport) *GenerationResponse {
	resp := &GenerationResponse{Results: make([]QuestionResult, 0, len(report.Questions))}
	for _, q := range report.Questions {
		resp.Results = append(resp.Results, NewQuestionResult(q))
	}
	for _, f := range report.Failures {
		code := "INTERNAL_ERROR"
		if de, ok := f.Err.(*domain.DomainError); ok {
			code = string(de.Code)
		}
		resp.Errors = append(resp.Errors, GenerationError{
			Index: f.Index,
			Code:  code,
			Error: f.Err.Error(),
		})
	}
	return resp
}

// NewQuestionDetailResponse converts a stored question for the API.
func NewQuestionDetailResponse(detail *domain.QuestionDetail) QuestionDetailResponse {
	return QuestionDetailResponse{
		QuestionID:    detail.Question.ID,
		Topic:         detail.Question.Topic,
		Context:       detail.Question.Context,
		Question:      detail.Question.QuestionText,
		CorrectAnswer: detail.Question.CorrectChoice,
		Choices:       detail.Choices,
		Tags:          detail.Question.Tags,
		Comments:      detail.Comments,
		Ratings:       detail.Ratings,
		AverageRating: detail.AverageRating,
	}
}
