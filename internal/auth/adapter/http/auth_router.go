package http

import (
	"errors"
	"time"

	"notes-block-api/internal/auth/config"
	"notes-block-api/internal/auth/domain/model"
	"notes-block-api/internal/auth/usecase"
	apperrors "notes-block-api/internal/shared/errors"
	"notes-block-api/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// HTTPHandler handles HTTP requests for authentication operations
type HTTPHandler struct {
	usecase usecase.AuthUsecaseInterface
	config  *config.Config
	log     logger.Logger
}

// NewHTTPHandler creates a new HTTP handler for auth endpoints
func NewHTTPHandler(uc usecase.AuthUsecaseInterface, cfg *config.Config, log logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		usecase: uc,
		config:  cfg,
		log:     log.WithComponent("auth-http"),
	}
}

// userResponse is the public shape of a user. The password hash never
// leaves the server.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// RegisterRoutes registers the authentication routes on the given router.
// Public routes go first; the guarded group is created after them so the
// middleware never intercepts sign-up or sign-in.
func (h *HTTPHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	// Public routes (no authentication required)
	router.Post("/users/sign-up", h.SignUp)
	router.Post("/users/sign-in", h.SignIn)

	// Protected routes (authentication required)
	authorized := router.Group("/users", requireAuth)
	// Log-out is a GET for compatibility with existing clients.
	authorized.Get("/log-out", h.LogOut)
	authorized.Get("/me", h.Me)
	authorized.Post("/log-out-all", h.LogOutAll)
	authorized.Post("/sessions/sweep", h.SweepSessions)
}

// SignUp handles POST /users/sign-up
func (h *HTTPHandler) SignUp(c *fiber.Ctx) error {
	var req usecase.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.usecase.SignUp(c.UserContext(), req)
	if err != nil {
		return h.handleError(c, err)
	}

	h.log.WithContext(c.UserContext()).Infof("user signed up: %s", user.ID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": toUserResponse(user),
	})
}

// SignIn handles POST /users/sign-in
func (h *HTTPHandler) SignIn(c *fiber.Ctx) error {
	var req usecase.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, token, err := h.usecase.SignIn(c.UserContext(), req)
	if err != nil {
		return h.handleError(c, err)
	}

	h.setSessionCookie(c, token)
	h.log.WithContext(c.UserContext()).Infof("user signed in: %s", user.ID)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":  toUserResponse(user),
		"token": token,
	})
}

// LogOut handles GET /users/log-out. Invalidates the session that
// authorized this request.
func (h *HTTPHandler) LogOut(c *fiber.Ctx) error {
	sessionID, ok := GetSessionID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	if err := h.usecase.InvalidateSession(c.UserContext(), sessionID); err != nil {
		return h.handleError(c, err)
	}

	h.clearSessionCookie(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Signed out successfully",
	})
}

// Me handles GET /users/me and returns the authenticated user.
func (h *HTTPHandler) Me(c *fiber.Ctx) error {
	userID, ok := GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	user, err := h.usecase.GetUserByID(c.UserContext(), userID)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": toUserResponse(user),
	})
}

// LogOutAll handles POST /users/log-out-all. Revokes every session the
// authenticated user holds, including the current one.
func (h *HTTPHandler) LogOutAll(c *fiber.Ctx) error {
	userID, ok := GetUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	if err := h.usecase.InvalidateAllSessionsForUser(c.UserContext(), userID); err != nil {
		return h.handleError(c, err)
	}

	h.clearSessionCookie(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "All sessions revoked",
	})
}

// SweepSessions handles POST /users/sessions/sweep. Deletes every expired
// session record and reports how many were removed.
func (h *HTTPHandler) SweepSessions(c *fiber.Ctx) error {
	deleted, err := h.usecase.SweepExpiredSessions(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"deleted": deleted,
	})
}

// handleError maps usecase errors to HTTP responses. Credential failures
// deliberately share one message so callers cannot probe which field was
// wrong or whether an email is registered.
func (h *HTTPHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password",
		})
	case errors.Is(err, usecase.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	case errors.Is(err, usecase.ErrSessionInvalid):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return c.Status(apperrors.HTTPStatus(appErr)).JSON(fiber.Map{
			"error": appErr.Message,
		})
	}

	h.log.WithContext(c.UserContext()).Errorf("unhandled auth error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal Server Error",
	})
}

func (h *HTTPHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.config.CookieName,
		Value:    token,
		Path:     h.config.CookiePath,
		Domain:   h.config.CookieDomain,
		MaxAge:   int(h.config.SessionTTL.Seconds()),
		HTTPOnly: h.config.CookieHTTPOnly,
		Secure:   h.config.CookieSecure,
		SameSite: h.config.CookieSameSite,
	})
}

func (h *HTTPHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.config.CookieName,
		Value:    "",
		Path:     h.config.CookiePath,
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HTTPOnly: h.config.CookieHTTPOnly,
		Secure:   h.config.CookieSecure,
		SameSite: h.config.CookieSameSite,
	})
}
