package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"notes-block-api/internal/auth/config"
	"notes-block-api/internal/auth/domain/model"
	"notes-block-api/internal/auth/domain/repository"
	apperrors "notes-block-api/internal/shared/errors"
	"notes-block-api/internal/shared/logger"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken         = errors.New("email is already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionInvalid     = errors.New("session is invalid")
)

// Input validation constants
const (
	minNameLength     = 4
	minPasswordLength = 8
	maxPasswordLength = 128
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// AuthUsecaseInterface defines the contract for authentication use cases.
type AuthUsecaseInterface interface {
	SignUp(ctx context.Context, req SignUpRequest) (*model.User, error)
	SignIn(ctx context.Context, req SignInRequest) (*model.User, string, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	DeleteUser(ctx context.Context, userID string) error

	// Session manager operations
	CreateSession(ctx context.Context, userID string) (*model.Session, error)
	ValidateSession(ctx context.Context, token string) (*model.Session, *model.User, error)
	InvalidateSession(ctx context.Context, sessionID string) error
	InvalidateAllSessionsForUser(ctx context.Context, userID string) error
	SweepExpiredSessions(ctx context.Context) (int64, error)
}

// SignUpRequest represents the sign-up request
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest represents the sign-in request
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserCleanup is invoked when a user is deleted so owned resources in other
// modules can be cascaded away.
type UserCleanup func(ctx context.Context, userID string) error

// AuthUsecase implements the authentication and session logic.
type AuthUsecase struct {
	users    repository.UserRepository
	sessions repository.SessionStore
	hasher   repository.PasswordHasher
	tokens   repository.TokenGenerator
	config   *config.Config
	log      logger.Logger
	cleanups []UserCleanup
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	users repository.UserRepository,
	sessions repository.SessionStore,
	hasher repository.PasswordHasher,
	tokens repository.TokenGenerator,
	cfg *config.Config,
	log logger.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		config:   cfg,
		log:      log.WithComponent("auth-usecase"),
	}
}

// OnUserDelete registers a cascade hook run after a user's own records are
// removed. Hooks are best-effort; a failing hook is logged, not surfaced.
func (uc *AuthUsecase) OnUserDelete(cleanup UserCleanup) {
	uc.cleanups = append(uc.cleanups, cleanup)
}

// validateEmail validates email format
func (uc *AuthUsecase) validateEmail(email string) error {
	if email == "" {
		return apperrors.NewValidationError("email is required")
	}
	if !emailRegex.MatchString(email) {
		return apperrors.NewValidationError("email is not a valid address").WithCause(ErrInvalidEmailFormat)
	}
	return nil
}

// validatePassword validates password length bounds
func (uc *AuthUsecase) validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return apperrors.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if utf8.RuneCountInString(password) > maxPasswordLength {
		return apperrors.NewValidationError(fmt.Sprintf("password must be at most %d characters", maxPasswordLength))
	}
	return nil
}

// SignUp creates a new user account.
func (uc *AuthUsecase) SignUp(ctx context.Context, req SignUpRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	if utf8.RuneCountInString(name) < minNameLength {
		return nil, apperrors.NewValidationError(fmt.Sprintf("name must be at least %d characters", minNameLength))
	}
	if err := uc.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := uc.validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := uc.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			// Keep the body generic. The caller learns the email is taken,
			// never the underlying constraint text.
			return nil, apperrors.NewConflictError("email is already registered").WithCause(err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.log.WithContext(ctx).Infof("user %s signed up", user.ID)

	user.PasswordHash = ""
	return user, nil
}

// SignIn authenticates a user and issues a fresh session. The returned
// string is the session token the client must present as a bearer token.
func (uc *AuthUsecase) SignIn(ctx context.Context, req SignInRequest) (*model.User, string, error) {
	if err := uc.validateEmail(req.Email); err != nil {
		return nil, "", err
	}
	if req.Password == "" {
		return nil, "", apperrors.NewValidationError("password is required")
	}

	user, err := uc.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Indistinguishable from a wrong password.
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !uc.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	session, err := uc.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	uc.log.WithContext(ctx).Infof("user %s signed in", user.ID)

	user.PasswordHash = ""
	return user, session.ID, nil
}

// GetUserByID retrieves a user by ID.
func (uc *AuthUsecase) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user ID is required")
	}

	user, err := uc.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// DeleteUser removes a user account. Sessions are cascaded first so a
// deleted user can never authenticate again, then registered cleanup hooks
// cascade resources owned in other modules.
func (uc *AuthUsecase) DeleteUser(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.NewValidationError("user ID is required")
	}

	if err := uc.sessions.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	if err := uc.users.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	for _, cleanup := range uc.cleanups {
		if err := cleanup(ctx, userID); err != nil {
			uc.log.WithContext(ctx).Errorf("user cleanup hook failed for %s: %v", userID, err)
		}
	}

	uc.log.WithContext(ctx).Infof("user %s deleted", userID)
	return nil
}

// Ensure AuthUsecase implements AuthUsecaseInterface
var _ AuthUsecaseInterface = (*AuthUsecase)(nil)
