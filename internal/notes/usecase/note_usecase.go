package usecase

import (
	"context"
	"strings"
	"time"

	"notes-block-api/internal/notes/domain/model"
	"notes-block-api/internal/notes/domain/repository"
	apperrors "notes-block-api/internal/shared/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoteNotFound is returned when a note is absent or owned by another
// user. The two cases are deliberately indistinguishable.
var ErrNoteNotFound = apperrors.ErrNoteNotFound

// CreateNoteRequest carries the fields for a new note.
type CreateNoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateNoteRequest carries the fields for a full note update.
type UpdateNoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NoteUsecaseInterface defines the note operations exposed to the HTTP layer.
type NoteUsecaseInterface interface {
	CreateNote(ctx context.Context, userID string, req CreateNoteRequest) (*model.Note, error)
	GetNote(ctx context.Context, userID, noteID string) (*model.Note, error)
	ListNotes(ctx context.Context, userID string) ([]*model.Note, error)
	UpdateNote(ctx context.Context, userID, noteID string, req UpdateNoteRequest) (*model.Note, error)
	UpdateNoteTitle(ctx context.Context, userID, noteID, title string) (*model.Note, error)
	UpdateNoteDescription(ctx context.Context, userID, noteID, description string) (*model.Note, error)
	DeleteNote(ctx context.Context, userID, noteID string) error
	DeleteAllNotes(ctx context.Context, userID string) (int64, error)
}

// NoteUsecase implements the note operations on top of a NoteRepository.
type NoteUsecase struct {
	notes repository.NoteRepository
	log   *zap.Logger
}

// NewNoteUsecase creates a new instance of NoteUsecase.
func NewNoteUsecase(notes repository.NoteRepository, log *zap.Logger) *NoteUsecase {
	return &NoteUsecase{
		notes: notes,
		log:   log.Named("note-usecase"),
	}
}

// CreateNote validates and stores a new note owned by userID.
func (uc *NoteUsecase) CreateNote(ctx context.Context, userID string, req CreateNoteRequest) (*model.Note, error) {
	now := time.Now().UTC()
	note := &model.Note{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := note.Validate(); err != nil {
		return nil, err
	}

	if err := uc.notes.Create(ctx, note); err != nil {
		uc.log.Error("failed to create note", zap.Error(err), zap.String("userID", userID))
		return nil, err
	}

	uc.log.Info("note created", zap.String("noteID", note.ID), zap.String("userID", userID))
	return note, nil
}

// GetNote returns a single note owned by userID.
func (uc *NoteUsecase) GetNote(ctx context.Context, userID, noteID string) (*model.Note, error) {
	return uc.notes.GetByID(ctx, userID, noteID)
}

// ListNotes returns every note owned by userID, newest first.
func (uc *NoteUsecase) ListNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	notes, err := uc.notes.ListByUser(ctx, userID)
	if err != nil {
		uc.log.Error("failed to list notes", zap.Error(err), zap.String("userID", userID))
		return nil, err
	}
	return notes, nil
}

// UpdateNote replaces the title and description of an existing note.
func (uc *NoteUsecase) UpdateNote(ctx context.Context, userID, noteID string, req UpdateNoteRequest) (*model.Note, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if err := model.ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := model.ValidateDescription(description); err != nil {
		return nil, err
	}

	return uc.mutate(ctx, userID, noteID, func(note *model.Note) {
		note.Title = title
		note.Description = description
	})
}

// UpdateNoteTitle changes only the title of an existing note.
func (uc *NoteUsecase) UpdateNoteTitle(ctx context.Context, userID, noteID, title string) (*model.Note, error) {
	title = strings.TrimSpace(title)
	if err := model.ValidateTitle(title); err != nil {
		return nil, err
	}

	return uc.mutate(ctx, userID, noteID, func(note *model.Note) {
		note.Title = title
	})
}

// UpdateNoteDescription changes only the description of an existing note.
func (uc *NoteUsecase) UpdateNoteDescription(ctx context.Context, userID, noteID, description string) (*model.Note, error) {
	description = strings.TrimSpace(description)
	if err := model.ValidateDescription(description); err != nil {
		return nil, err
	}

	return uc.mutate(ctx, userID, noteID, func(note *model.Note) {
		note.Description = description
	})
}

// mutate loads an owned note, applies fn, stamps UpdatedAt and persists.
func (uc *NoteUsecase) mutate(ctx context.Context, userID, noteID string, fn func(*model.Note)) (*model.Note, error) {
	note, err := uc.notes.GetByID(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	fn(note)
	note.Touch(time.Now().UTC())

	if err := uc.notes.Update(ctx, note); err != nil {
		uc.log.Error("failed to update note", zap.Error(err), zap.String("noteID", noteID))
		return nil, err
	}

	uc.log.Info("note updated", zap.String("noteID", note.ID), zap.String("userID", userID))
	return note, nil
}

// DeleteNote removes a single note owned by userID.
func (uc *NoteUsecase) DeleteNote(ctx context.Context, userID, noteID string) error {
	if err := uc.notes.Delete(ctx, userID, noteID); err != nil {
		return err
	}
	uc.log.Info("note deleted", zap.String("noteID", noteID), zap.String("userID", userID))
	return nil
}

// DeleteAllNotes removes every note owned by userID and reports the count.
// Deleting zero notes is a success.
func (uc *NoteUsecase) DeleteAllNotes(ctx context.Context, userID string) (int64, error) {
	deleted, err := uc.notes.DeleteAllByUser(ctx, userID)
	if err != nil {
		uc.log.Error("failed to delete notes", zap.Error(err), zap.String("userID", userID))
		return 0, err
	}
	uc.log.Info("notes deleted", zap.Int64("count", deleted), zap.String("userID", userID))
	return deleted, nil
}
