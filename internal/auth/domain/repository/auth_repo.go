package repository

import (
	"context"
	"time"

	"notes-block-api/internal/auth/domain/model"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// SessionStore defines the interface for session persistence.
//
// The store never interprets expiry: GetByID returns an expired session as
// long as it has not been swept, and it is the session manager's job to
// treat it as nonexistent. All delete operations are idempotent on absence.
type SessionStore interface {
	Put(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	GetByUser(ctx context.Context, userID string) ([]*model.Session, error)
	UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error
	DeleteByID(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
