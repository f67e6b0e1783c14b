package auth

import (
	"fmt"

	authhttp "notes-block-api/internal/auth/adapter/http"
	"notes-block-api/internal/auth/adapter/persistence/mongodb"
	"notes-block-api/internal/auth/adapter/security"
	"notes-block-api/internal/auth/config"
	"notes-block-api/internal/auth/usecase"
	"notes-block-api/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// AuthModule represents the complete authentication module
type AuthModule struct {
	usecase    *usecase.AuthUsecase
	handler    *authhttp.HTTPHandler
	middleware *authhttp.AuthMiddleware
	config     *config.Config
}

// NewAuthModule creates a new authentication module instance
func NewAuthModule(db *mongo.Database, cfg *config.Config, log logger.Logger) (*AuthModule, error) {
	users, err := mongodb.NewMongoUserRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}

	sessions, err := mongodb.NewMongoSessionStore(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	hasher, err := security.NewBcryptPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}

	uc := usecase.NewAuthUsecase(users, sessions, hasher, security.NewRandomTokenGenerator(), cfg, log)

	return &AuthModule{
		usecase:    uc,
		handler:    authhttp.NewHTTPHandler(uc, cfg, log),
		middleware: authhttp.NewAuthMiddleware(uc, cfg.CookieName, log),
		config:     cfg,
	}, nil
}

// RegisterRoutes registers authentication routes with the provided router
func (am *AuthModule) RegisterRoutes(router fiber.Router) {
	am.handler.RegisterRoutes(router, am.middleware.RequireAuth())
}

// GetUsecase returns the auth usecase for external access
func (am *AuthModule) GetUsecase() *usecase.AuthUsecase {
	return am.usecase
}

// GetMiddleware returns the auth middleware
func (am *AuthModule) GetMiddleware() *authhttp.AuthMiddleware {
	return am.middleware
}

// Stop performs cleanup when the module is shut down
func (am *AuthModule) Stop() error {
	return nil
}
