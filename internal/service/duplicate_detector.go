package service

import (
	"context"

	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"go.uber.org/zap"
)

// DuplicateDetectorService compares a freshly committed question against the
// owning user's corpus. It runs strictly after the commit, so a lookup failure
// can only degrade the report, never the question: errors are logged and the
// affected half of the report stays empty.
type DuplicateDetectorService struct {
	questionRepo domain.QuestionRepository
}

// NewDuplicateDetectorService creates a new DuplicateDetectorService.
func NewDuplicateDetectorService(questionRepo domain.QuestionRepository) domain.DuplicateDetector {
	return &DuplicateDetectorService{questionRepo: questionRepo}
}

// Detect returns the user's other questions sharing the exact stem and the
// {question, choice} pairs sharing any of the choice texts. The question
// identified by excludeID never matches itself.
func (d *DuplicateDetectorService) Detect(ctx context.Context, userID, stem string, choices []string, excludeID string) *domain.DuplicateReport {
	log := logger.Get()
	report := &domain.DuplicateReport{}

	ids, err := d.questionRepo.FindQuestionIDsByStem(ctx, userID, stem, excludeID)
	if err != nil {
		log.Warn("duplicate stem lookup failed",
			zap.String("questionID", excludeID),
			zap.Error(domain.NewDuplicateDetectionError(err)))
	} else {
		report.DuplicateQuestionIDs = ids
	}

	collisions, err := d.questionRepo.FindChoiceCollisions(ctx, userID, choices, excludeID)
	if err != nil {
		log.Warn("duplicate choice lookup failed",
			zap.String("questionID", excludeID),
			zap.Error(domain.NewDuplicateDetectionError(err)))
	} else {
		report.DuplicateAnswers = collisions
	}

	return report
}
