package repository

import (
	"context"

	"notes-block-api/internal/notes/domain/model"
)

// NoteRepository defines persistence operations for notes. Every operation
// that targets a single note takes the owner's user ID and must not match
// notes owned by anyone else: a note outside the caller's scope behaves
// exactly like an absent one.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	GetByID(ctx context.Context, userID, noteID string) (*model.Note, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Note, error)
	Update(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, userID, noteID string) error
	DeleteAllByUser(ctx context.Context, userID string) (int64, error)
}
