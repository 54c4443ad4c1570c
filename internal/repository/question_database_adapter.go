package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"
	"quizforge/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.
// All methods resolve their executor through GetExecutor, so they join the
// transaction of the surrounding unit of work when one is active.
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	return &domain.Question{
		ID:            m.ID,
		UserID:        m.UserID,
		Topic:         m.Topic,
		Context:       m.Context,
		QuestionText:  m.QuestionText,
		CorrectChoice: m.CorrectChoice,
		Tags:          m.Tags,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// SaveQuestion inserts the question row and assigns its ULID. The identifier
// is available to the caller immediately, before the surrounding transaction
// commits, which is what the post-commit duplicate check relies on.
func (a *QuestionDatabaseAdapter) SaveQuestion(ctx context.Context, question *domain.Question) error {
	if question == nil {
		return fmt.Errorf("cannot save nil question")
	}
	exec := GetExecutor(ctx, a.db)

	if question.ID == "" {
		question.ID = util.NewULID()
	}
	now := time.Now()
	if question.CreatedAt.IsZero() {
		question.CreatedAt = now
	}
	question.UpdatedAt = now

	// Convert tags to a JSON string manually for Oracle compatibility
	tagsVal, err := models.StringSlice(question.Tags).Value()
	if err != nil {
		return fmt.Errorf("failed to convert tags: %w", err)
	}
	tagsStr, _ := tagsVal.(string)

	query := `INSERT INTO questions (
		id, user_id, topic, context, question_text, correct_choice, tags, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`

	_, err = exec.ExecContext(ctx, query,
		question.ID,
		question.UserID,
		question.Topic,
		question.Context,
		question.QuestionText,
		question.CorrectChoice,
		tagsStr,
		question.CreatedAt,
		question.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}
	return nil
}

// SaveChoices inserts one row per choice text referencing questionID.
func (a *QuestionDatabaseAdapter) SaveChoices(ctx context.Context, questionID string, texts []string) error {
	if questionID == "" {
		return fmt.Errorf("cannot save choices without a question ID")
	}
	exec := GetExecutor(ctx, a.db)

	query := `INSERT INTO choices (id, question_id, choice_text, created_at) VALUES (:1, :2, :3, :4)`
	now := time.Now()
	for _, text := range texts {
		if _, err := exec.ExecContext(ctx, query, util.NewULID(), questionID, text, now); err != nil {
			return fmt.Errorf("failed to save choice for question %s: %w", questionID, err)
		}
	}
	return nil
}

// GetQuestionByID retrieves a question by its ID; nil if not found.
func (a *QuestionDatabaseAdapter) GetQuestionByID(ctx context.Context, id string) (*domain.Question, error) {
	exec := GetExecutor(ctx, a.db)

	var m models.Question
	query := `SELECT id, user_id, topic, context, question_text, correct_choice, tags, created_at, updated_at
	FROM questions WHERE id = :1`

	err := exec.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question by ID %s: %w", id, err)
	}
	return toDomainQuestion(&m), nil
}

// GetQuestionsByUserAndTopic returns a user's questions for a topic together
// with their choices, comments and ratings.
func (a *QuestionDatabaseAdapter) GetQuestionsByUserAndTopic(ctx context.Context, userID, topic string) ([]*domain.QuestionDetail, error) {
	exec := GetExecutor(ctx, a.db)

	var questionModels []models.Question
	query := `SELECT id, user_id, topic, context, question_text, correct_choice, tags, created_at, updated_at
	FROM questions WHERE user_id = :1 AND topic = :2 ORDER BY created_at`

	if err := exec.SelectContext(ctx, &questionModels, query, userID, topic); err != nil {
		return nil, fmt.Errorf("failed to list questions for user %s topic %s: %w", userID, topic, err)
	}
	if len(questionModels) == 0 {
		return []*domain.QuestionDetail{}, nil
	}

	ids := make([]string, len(questionModels))
	for i, q := range questionModels {
		ids[i] = q.ID
	}

	choicesByQuestion, err := a.loadChoices(ctx, exec, ids)
	if err != nil {
		return nil, err
	}
	commentsByQuestion, err := a.loadComments(ctx, exec, ids)
	if err != nil {
		return nil, err
	}
	ratingsByQuestion, err := a.loadRatings(ctx, exec, ids)
	if err != nil {
		return nil, err
	}

	details := make([]*domain.QuestionDetail, 0, len(questionModels))
	for i := range questionModels {
		q := toDomainQuestion(&questionModels[i])
		ratings := ratingsByQuestion[q.ID]
		var avg float64
		if len(ratings) > 0 {
			sum := 0
			for _, r := range ratings {
				sum += r
			}
			avg = float64(sum) / float64(len(ratings))
		}
		details = append(details, &domain.QuestionDetail{
			Question:      *q,
			Choices:       choicesByQuestion[q.ID],
			Comments:      commentsByQuestion[q.ID],
			Ratings:       ratings,
			AverageRating: avg,
		})
	}
	return details, nil
}

func (a *QuestionDatabaseAdapter) loadChoices(ctx context.Context, exec DBTX, questionIDs []string) (map[string][]string, error) {
	placeholders, args := buildInClause(questionIDs, 0)
	var rows []models.Choice
	query := fmt.Sprintf(`SELECT id, question_id, choice_text, created_at FROM choices
	WHERE question_id IN (%s) ORDER BY created_at, id`, placeholders)

	if err := exec.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load choices: %w", err)
	}
	result := make(map[string][]string)
	for _, c := range rows {
		result[c.QuestionID] = append(result[c.QuestionID], c.ChoiceText)
	}
	return result, nil
}

func (a *QuestionDatabaseAdapter) loadComments(ctx context.Context, exec DBTX, questionIDs []string) (map[string][]string, error) {
	placeholders, args := buildInClause(questionIDs, 0)
	var rows []models.Comment
	query := fmt.Sprintf(`SELECT id, question_id, user_id, comment_text, created_at FROM comments
	WHERE question_id IN (%s) ORDER BY created_at`, placeholders)

	if err := exec.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	result := make(map[string][]string)
	for _, c := range rows {
		result[c.QuestionID] = append(result[c.QuestionID], c.CommentText)
	}
	return result, nil
}

func (a *QuestionDatabaseAdapter) loadRatings(ctx context.Context, exec DBTX, questionIDs []string) (map[string][]int, error) {
	placeholders, args := buildInClause(questionIDs, 0)
	var rows []models.Rating
	query := fmt.Sprintf(`SELECT id, question_id, user_id, rating_value, created_at FROM ratings
	WHERE question_id IN (%s) ORDER BY created_at`, placeholders)

	if err := exec.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}
	result := make(map[string][]int)
	for _, r := range rows {
		result[r.QuestionID] = append(result[r.QuestionID], r.RatingValue)
	}
	return result, nil
}

// UpdateQuestion updates the question row and, when choices is non-empty,
// replaces the choice rows. Callers that replace choices must run this inside
// a transaction so the delete and the inserts land together.
func (a *QuestionDatabaseAdapter) UpdateQuestion(ctx context.Context, question *domain.Question, choices []string) error {
	if question == nil || question.ID == "" {
		return fmt.Errorf("cannot update question without an ID")
	}
	exec := GetExecutor(ctx, a.db)

	question.UpdatedAt = time.Now()
	tagsVal, err := models.StringSlice(question.Tags).Value()
	if err != nil {
		return fmt.Errorf("failed to convert tags: %w", err)
	}
	tagsStr, _ := tagsVal.(string)

	query := `UPDATE questions SET
		topic = :1,
		context = :2,
		question_text = :3,
		correct_choice = :4,
		tags = :5,
		updated_at = :6
	WHERE id = :7 AND user_id = :8`

	result, err := exec.ExecContext(ctx, query,
		question.Topic,
		question.Context,
		question.QuestionText,
		question.CorrectChoice,
		tagsStr,
		question.UpdatedAt,
		question.ID,
		question.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewQuestionNotFoundError(question.ID)
	}

	if len(choices) > 0 {
		if _, err := exec.ExecContext(ctx, `DELETE FROM choices WHERE question_id = :1`, question.ID); err != nil {
			return fmt.Errorf("failed to delete old choices: %w", err)
		}
		if err := a.SaveChoices(ctx, question.ID, choices); err != nil {
			return err
		}
	}
	return nil
}

// DeleteQuestion removes the question and all of its child rows. Choices,
// comments and ratings must not survive the question (hard invariant), so the
// children are deleted first within the caller's transaction.
func (a *QuestionDatabaseAdapter) DeleteQuestion(ctx context.Context, id string) error {
	exec := GetExecutor(ctx, a.db)

	for _, stmt := range []string{
		`DELETE FROM ratings WHERE question_id = :1`,
		`DELETE FROM comments WHERE question_id = :1`,
		`DELETE FROM choices WHERE question_id = :1`,
	} {
		if _, err := exec.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("failed to delete question children: %w", err)
		}
	}

	result, err := exec.ExecContext(ctx, `DELETE FROM questions WHERE id = :1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewQuestionNotFoundError(id)
	}
	return nil
}

// DeleteQuestionsByTopic cascades DeleteQuestion over every question the user
// owns under the topic.
func (a *QuestionDatabaseAdapter) DeleteQuestionsByTopic(ctx context.Context, userID, topic string) error {
	exec := GetExecutor(ctx, a.db)

	var ids []string
	query := `SELECT id FROM questions WHERE user_id = :1 AND topic = :2`
	if err := exec.SelectContext(ctx, &ids, query, userID, topic); err != nil {
		return fmt.Errorf("failed to list questions for topic delete: %w", err)
	}

	for _, id := range ids {
		if err := a.DeleteQuestion(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// FindQuestionIDsByStem returns IDs of the user's other questions with the
// exact same stem text. Matching is exact-string equality; no normalization.
func (a *QuestionDatabaseAdapter) FindQuestionIDsByStem(ctx context.Context, userID, stem, excludeID string) ([]string, error) {
	exec := GetExecutor(ctx, a.db)

	var ids []string
	query := `SELECT id FROM questions WHERE user_id = :1 AND question_text = :2 AND id != :3 ORDER BY id`
	if err := exec.SelectContext(ctx, &ids, query, userID, stem, excludeID); err != nil {
		return nil, fmt.Errorf("failed to find questions by stem: %w", err)
	}
	return ids, nil
}

// FindChoiceCollisions returns {question ID, choice text} pairs where another
// question owned by the same user carries one of the given choice texts.
func (a *QuestionDatabaseAdapter) FindChoiceCollisions(ctx context.Context, userID string, texts []string, excludeID string) ([]domain.AnswerCollision, error) {
	if len(texts) == 0 {
		return []domain.AnswerCollision{}, nil
	}
	exec := GetExecutor(ctx, a.db)

	placeholders, args := buildInClause(texts, 2)
	args = append([]interface{}{userID, excludeID}, args...)

	query := fmt.Sprintf(`SELECT c.question_id, c.choice_text
	FROM choices c
	JOIN questions q ON q.id = c.question_id
	WHERE q.user_id = :1 AND c.question_id != :2 AND c.choice_text IN (%s)
	ORDER BY c.question_id, c.choice_text`, placeholders)

	var rows []struct {
		QuestionID string `db:"QUESTION_ID"`
		ChoiceText string `db:"CHOICE_TEXT"`
	}
	if err := exec.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find choice collisions: %w", err)
	}

	collisions := make([]domain.AnswerCollision, 0, len(rows))
	for _, r := range rows {
		collisions = append(collisions, domain.AnswerCollision{QuestionID: r.QuestionID, Answer: r.ChoiceText})
	}
	return collisions, nil
}

// buildInClause renders Oracle positional placeholders :offset+1..:offset+n
// for an IN (...) list and returns the matching args slice.
func buildInClause(values []string, offset int) (string, []interface{}) {
	placeholders := make([]string, len(values))
	args := make([]interface{}, len(values))
	for i, v := range values {
		placeholders[i] = ":" + strconv.Itoa(offset+i+1)
		args[i] = v
	}
	return strings.Join(placeholders, ", "), args
}
