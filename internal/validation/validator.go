package validation

import (
	"regexp"
	"strings"

	"quizforge/internal/domain"
)

// Text longer than this would not fit the VARCHAR2 columns once translated.
const maxTextLength = 3000

const maxBatchTexts = 20

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateRequest validates a generation request body.
func (v *Validator) ValidateGenerateRequest(userID, topic string, texts []string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(userID) == "" {
		errors = append(errors, domain.NewMissingFieldError("user_id"))
	}
	if strings.TrimSpace(topic) == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	}
	if len(texts) == 0 {
		errors = append(errors, domain.NewMissingFieldError("texts"))
	} else if len(texts) > maxBatchTexts {
		errors = append(errors, domain.NewOutOfRangeError("texts", len(texts), 1, maxBatchTexts))
	}
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			errors = append(errors, domain.NewMissingFieldError("texts"))
			break
		}
		if len(text) > maxTextLength {
			errors = append(errors, domain.NewOutOfRangeError("texts", len(text), 1, maxTextLength))
			break
		}
	}

	return errors
}

// ValidateQuestionID validates a question identifier path parameter.
func (v *Validator) ValidateQuestionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("id", id))
	}

	return errors
}

// ValidateCommentRequest validates a comment submission.
func (v *Validator) ValidateCommentRequest(userID, comment string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(userID) == "" {
		errors = append(errors, domain.NewMissingFieldError("user_id"))
	}
	if strings.TrimSpace(comment) == "" {
		errors = append(errors, domain.NewMissingFieldError("comment"))
	} else if len(comment) > 2000 {
		errors = append(errors, domain.NewOutOfRangeError("comment", len(comment), 1, 2000))
	}

	return errors
}

// ValidateRatingRequest validates a rating submission.
func (v *Validator) ValidateRatingRequest(userID string, rating int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(userID) == "" {
		errors = append(errors, domain.NewMissingFieldError("user_id"))
	}
	if rating < 1 || rating > 5 {
		errors = append(errors, domain.NewOutOfRangeError("rating", rating, 1, 5))
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, base32 encoded
	if len(s) != 26 {
		return false
	}
	// Check if all characters are valid base32 (Crockford's Base32)
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
