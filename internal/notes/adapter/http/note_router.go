package http

import (
	"errors"

	authhttp "notes-block-api/internal/auth/adapter/http"
	"notes-block-api/internal/notes/usecase"
	apperrors "notes-block-api/internal/shared/errors"
	"notes-block-api/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// HTTPHandler handles HTTP requests for note operations. Every route
// requires an authenticated user; the owner ID always comes from the
// session, never from the request.
type HTTPHandler struct {
	usecase usecase.NoteUsecaseInterface
	log     logger.Logger
}

// NewHTTPHandler creates a new HTTP handler for note endpoints
func NewHTTPHandler(uc usecase.NoteUsecaseInterface, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		usecase: uc,
		log:     log.WithComponent("notes-http"),
	}
}

// RegisterRoutes registers the note routes on the given router. Every route
// sits behind the authentication middleware.
func (h *HTTPHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	notes := router.Group("/notes", requireAuth)
	notes.Get("/", h.ListNotes)
	notes.Post("/", h.CreateNote)
	notes.Delete("/", h.DeleteAllNotes)
	notes.Get("/:id", h.GetNote)
	notes.Put("/:id", h.UpdateNote)
	notes.Patch("/:id/title", h.UpdateTitle)
	notes.Patch("/:id/description", h.UpdateDescription)
	notes.Delete("/:id", h.DeleteNote)
}

// ListNotes handles GET /notes
func (h *HTTPHandler) ListNotes(c *fiber.Ctx) error {
	userID, ok := authhttp.GetUserID(c)
	if !ok {
		return unauthorized(c)
	}

	notes, err := h.usecase.ListNotes(c.UserContext(), userID)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"notes": notes,
	})
}

// GetNote handles GET /notes/:id
func (h *HTTPHandler) GetNote(c *fiber.Ctx) error {
	userID, ok := authhttp.GetUserID(c)
	if !ok {
		return unauthorized(c)
	}

	note, err := h.usecase.GetNote(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"note": note,
	})
}

// CreateNote handles POST /notes
func (h *HTTPHandler) CreateNote(c *fiber.Ctx) error {
	userID, ok := authhttp.GetUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req usecase.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	note, err := h.usecase.CreateNote(c.UserContext(), userID, req)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"note": note,
	})
}

// UpdateNote handles PUT /notes/:id
func (h *HTTPHandler) UpdateNote(c *fiber.Ctx) error {
	userID, ok := authhttp.GetUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req usecase.UpdateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	note, err := h.usecase.UpdateNote(c.UserContext(), userID, c.Params("id"), req)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"note": note,
	})
}

// UpdateTitle handles PATCH /notes/:id/title
func (h *HTTPHandler) UpdateTitle(c *fiber.Ctx) error {
	userID, ok := authhttp.GetUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	note, err := h.usecase.UpdateNoteTitle(c.UserContext(), userID, c.Params("id"), req.Title)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"note": note,
	})
}

// UpdateDescription handles PATCH /notes/:id/description
func (h *HTTPHandler) UpdateDescription(c *fiber.Ctx) error {
	userID, ok := authhttp.GetUserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	note, err := h.usecase.UpdateNoteDescription(c.UserContext(), userID, c.Params("id"), req.Description)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"note": note,
	})
}

// DeleteNote handles DELETE /notes/:id
func (h *HTTPHandler) DeleteNote(c *fiber.Ctx) error {
	userID, ok := authhttp.GetUserID(c)
	if !ok {
		return unauthorized(c)
	}

	if err := h.usecase.DeleteNote(c.UserContext(), userID, c.Params("id")); err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Note deleted",
	})
}

// DeleteAllNotes handles DELETE /notes
func (h *HTTPHandler) DeleteAllNotes(c *fiber.Ctx) error {
	userID, ok := authhttp.GetUserID(c)
	if !ok {
		return unauthorized(c)
	}

	deleted, err := h.usecase.DeleteAllNotes(c.UserContext(), userID)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"deleted": deleted,
	})
}

func (h *HTTPHandler) handleError(c *fiber.Ctx, err error) error {
	if errors.Is(err, usecase.ErrNoteNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Note not found",
		})
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return c.Status(apperrors.HTTPStatus(appErr)).JSON(fiber.Map{
			"error": appErr.Message,
		})
	}

	h.log.WithContext(c.UserContext()).Errorf("unhandled notes error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal Server Error",
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}
