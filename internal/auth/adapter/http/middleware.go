package http

import (
	"errors"
	"time"

	"notes-block-api/internal/auth/usecase"
	"notes-block-api/internal/shared/contextkeys"
	"notes-block-api/internal/shared/logger"
	"notes-block-api/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// AuthMiddleware provides authentication middleware for Fiber
type AuthMiddleware struct {
	usecase    usecase.AuthUsecaseInterface
	cookieName string
	log        logger.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(uc usecase.AuthUsecaseInterface, cookieName string, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		usecase:    uc,
		cookieName: cookieName,
		log:        log.WithComponent("auth-middleware"),
	}
}

// CORS middleware mirroring the API's public contract
func (m *AuthMiddleware) CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "OPTIONS,GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Authorization,Content-Type",
		MaxAge:       86400, // 24 hours
	})
}

// SecurityHeaders adds security headers
func (m *AuthMiddleware) SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}

// RateLimiter creates rate limiting middleware for the auth endpoints.
// A nil storage falls back to fiber's in-memory store.
func (m *AuthMiddleware) RateLimiter(storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               10,              // 10 requests
		Expiration:        1 * time.Minute, // per minute
		LimiterMiddleware: limiter.SlidingWindow{},
		Storage:           storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.Get("X-Forwarded-For", c.IP())
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	})
}

// RequestID middleware
func (m *AuthMiddleware) RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     "X-Request-ID",
		ContextKey: string(contextkeys.RequestIDKey),
	})
}

// RequireAuth returns middleware that resolves the bearer token to a
// verified user before letting the request through. Every request performs
// a full validation against the session store; nothing is cached between
// requests. A missing, malformed, expired, or orphaned token all produce
// the same 401.
func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := m.extractToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		session, user, err := m.usecase.ValidateSession(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, usecase.ErrSessionInvalid) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Unauthorized",
				})
			}
			m.log.WithContext(c.UserContext()).Errorf("session validation failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal Server Error",
			})
		}

		ctx := c.UserContext()
		ctx = utils.WithUserID(ctx, user.ID)
		ctx = utils.WithUserEmail(ctx, user.Email)
		ctx = utils.WithSessionID(ctx, session.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// extractToken extracts the session token from the Authorization header or,
// failing that, the session cookie.
func (m *AuthMiddleware) extractToken(c *fiber.Ctx) (string, bool) {
	if token, ok := usecase.ExtractBearerToken(c.Get(fiber.HeaderAuthorization)); ok {
		return token, true
	}

	if token := c.Cookies(m.cookieName); token != "" {
		return token, true
	}

	return "", false
}

// GetUserID helper function to get the authenticated user ID from the request
func GetUserID(c *fiber.Ctx) (string, bool) {
	userID, err := utils.GetUserIDFromContext(c.UserContext())
	return userID, err == nil
}

// GetSessionID helper function to get the validated session ID from the request
func GetSessionID(c *fiber.Ctx) (string, bool) {
	sessionID, err := utils.GetSessionIDFromContext(c.UserContext())
	return sessionID, err == nil
}
