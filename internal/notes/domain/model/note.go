package model

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "notes-block-api/internal/shared/errors"
)

// Length bounds count characters, not bytes, so multibyte text is measured
// the way a user would count it.
const (
	// MinTitleLength is the minimum accepted title length.
	MinTitleLength = 4
	// MaxTitleLength is the maximum accepted title length.
	MaxTitleLength = 100
	// MinDescriptionLength is the minimum accepted description length.
	MinDescriptionLength = 4
)

// Note is a user-owned note. Every read and write is scoped to the owner;
// a note another user owns is indistinguishable from one that does not
// exist.
type Note struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"-"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// ValidateTitle checks the title length bounds.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.NewValidationError("title is required")
	}
	if utf8.RuneCountInString(title) < MinTitleLength {
		return apperrors.NewValidationError("title must be at least 4 characters")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return apperrors.NewValidationError("title must be at most 100 characters")
	}
	return nil
}

// ValidateDescription checks the description length bound.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return apperrors.NewValidationError("description is required")
	}
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		return apperrors.NewValidationError("description must be at least 4 characters")
	}
	return nil
}

// Validate checks the whole note.
func (n *Note) Validate() error {
	if err := ValidateTitle(n.Title); err != nil {
		return err
	}
	return ValidateDescription(n.Description)
}

// Touch updates the modification timestamp.
func (n *Note) Touch(now time.Time) {
	n.UpdatedAt = now
}
