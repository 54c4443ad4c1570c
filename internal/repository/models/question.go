package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice is a custom type for storing string arrays as JSON text.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		// Store nil slices as an empty JSON array string
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte

	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 {
		*s = StringSlice{}
		return nil
	}
	if string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}

	return json.Unmarshal(bytesToParse, s)
}

// Question represents a persisted question row.
type Question struct {
	ID            string      `db:"ID"`             // ULID
	UserID        string      `db:"USER_ID"`        // Owning user
	Topic         string      `db:"TOPIC"`          // Free-text grouping label
	Context       string      `db:"CONTEXT"`        // Source text (CLOB)
	QuestionText  string      `db:"QUESTION_TEXT"`  // Stem (CLOB)
	CorrectChoice string      `db:"CORRECT_CHOICE"` // Must equal one choice text
	Tags          StringSlice `db:"TAGS"`           // JSON array in CLOB
	CreatedAt     time.Time   `db:"CREATED_AT"`
	UpdatedAt     time.Time   `db:"UPDATED_AT"`
}

// Choice represents one answer option row.
type Choice struct {
	ID         string    `db:"ID"`
	QuestionID string    `db:"QUESTION_ID"`
	ChoiceText string    `db:"CHOICE_TEXT"`
	CreatedAt  time.Time `db:"CREATED_AT"`
}

// Comment represents a user comment row.
type Comment struct {
	ID          string    `db:"ID"`
	QuestionID  string    `db:"QUESTION_ID"`
	UserID      string    `db:"USER_ID"`
	CommentText string    `db:"COMMENT_TEXT"`
	CreatedAt   time.Time `db:"CREATED_AT"`
}

// Rating represents a user rating row.
type Rating struct {
	ID          string    `db:"ID"`
	QuestionID  string    `db:"QUESTION_ID"`
	UserID      string    `db:"USER_ID"`
	RatingValue int       `db:"RATING_VALUE"`
	CreatedAt   time.Time `db:"CREATED_AT"`
}
