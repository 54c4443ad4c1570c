package repository

import (
	"context"
	"fmt"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/util"

	"github.com/jmoiron/sqlx"
)

// FeedbackDatabaseAdapter implements domain.FeedbackRepository using sqlx.
type FeedbackDatabaseAdapter struct {
	db *sqlx.DB
}

// NewFeedbackDatabaseAdapter creates a new instance of FeedbackDatabaseAdapter
func NewFeedbackDatabaseAdapter(db *sqlx.DB) domain.FeedbackRepository {
	return &FeedbackDatabaseAdapter{db: db}
}

// AddComment inserts a comment row for a question.
func (a *FeedbackDatabaseAdapter) AddComment(ctx context.Context, comment *domain.Comment) error {
	if comment == nil {
		return fmt.Errorf("cannot save nil comment")
	}
	exec := GetExecutor(ctx, a.db)

	if comment.ID == "" {
		comment.ID = util.NewULID()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	query := `INSERT INTO comments (id, question_id, user_id, comment_text, created_at) VALUES (:1, :2, :3, :4, :5)`
	_, err := exec.ExecContext(ctx, query,
		comment.ID,
		comment.QuestionID,
		comment.UserID,
		comment.CommentText,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

// AddRating inserts a rating row for a question.
func (a *FeedbackDatabaseAdapter) AddRating(ctx context.Context, rating *domain.Rating) error {
	if rating == nil {
		return fmt.Errorf("cannot save nil rating")
	}
	if err := rating.Validate(); err != nil {
		return err
	}
	exec := GetExecutor(ctx, a.db)

	if rating.ID == "" {
		rating.ID = util.NewULID()
	}
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = time.Now()
	}

	query := `INSERT INTO ratings (id, question_id, user_id, rating_value, created_at) VALUES (:1, :2, :3, :4, :5)`
	_, err := exec.ExecContext(ctx, query,
		rating.ID,
		rating.QuestionID,
		rating.UserID,
		rating.RatingValue,
		rating.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add rating: %w", err)
	}
	return nil
}
