package notes

import (
	"fmt"

	noteshttp "notes-block-api/internal/notes/adapter/http"
	"notes-block-api/internal/notes/adapter/persistence/mongodb"
	"notes-block-api/internal/notes/usecase"
	"notes-block-api/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// NotesModule represents the complete notes module
type NotesModule struct {
	usecase *usecase.NoteUsecase
	handler *noteshttp.HTTPHandler
}

// NewNotesModule creates a new notes module instance
func NewNotesModule(db *mongo.Database, zlog *zap.Logger, log logger.Logger) (*NotesModule, error) {
	repo, err := mongodb.NewMongoNoteRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create note repository: %w", err)
	}

	uc := usecase.NewNoteUsecase(repo, zlog)

	return &NotesModule{
		usecase: uc,
		handler: noteshttp.NewHTTPHandler(uc, log),
	}, nil
}

// RegisterRoutes registers note routes on the given router behind the given
// authentication middleware.
func (nm *NotesModule) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	nm.handler.RegisterRoutes(router, requireAuth)
}

// GetUsecase returns the note usecase for external access
func (nm *NotesModule) GetUsecase() *usecase.NoteUsecase {
	return nm.usecase
}

// Stop performs cleanup when the module is shut down
func (nm *NotesModule) Stop() error {
	return nil
}
