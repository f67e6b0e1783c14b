package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"notes-block-api/internal/auth/domain/model"
)

// bearerPrefix is the only accepted Authorization scheme.
const bearerPrefix = "Bearer "

// renewTimeout bounds the detached expiry-renewal write.
const renewTimeout = 5 * time.Second

// ExtractBearerToken parses an Authorization header value. It returns the
// token and true for a well-formed "Bearer <token>" header, and ("", false)
// for a missing header, a different scheme, or an empty token. It never
// fails any harder than that.
func ExtractBearerToken(headerValue string) (string, bool) {
	if !strings.HasPrefix(headerValue, bearerPrefix) {
		return "", false
	}
	token := headerValue[len(bearerPrefix):]
	if token == "" {
		return "", false
	}
	return token, true
}

// CreateSession issues a new session for the user with a cryptographically
// random token as its ID and persists it with expiry = now + TTL.
func (uc *AuthUsecase) CreateSession(ctx context.Context, userID string) (*model.Session, error) {
	token, err := uc.tokens.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := &model.Session{
		ID:        token,
		UserID:    userID,
		ExpiresAt: now.Add(uc.config.SessionTTL),
		CreatedAt: now,
	}

	if err := uc.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return session, nil
}

// ValidateSession resolves a bearer token to its session and owning user.
//
// An absent, expired, or orphaned session all come back as ErrSessionInvalid
// so the caller cannot tell the cases apart. An expired record found on this
// read path is deleted immediately (lazy sweep). A session inside the
// renewal window gets its expiry slid forward to now + TTL; that write runs
// detached from the request and its failure never fails the validation.
func (uc *AuthUsecase) ValidateSession(ctx context.Context, token string) (*model.Session, *model.User, error) {
	if token == "" {
		return nil, nil, ErrSessionInvalid
	}

	session, err := uc.sessions.GetByID(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, nil, ErrSessionInvalid
		}
		return nil, nil, fmt.Errorf("failed to load session: %w", err)
	}

	now := time.Now()
	if session.ExpiredAt(now) {
		if err := uc.sessions.DeleteByID(ctx, session.ID); err != nil {
			uc.log.WithContext(ctx).Warnf("lazy sweep of session failed: %v", err)
		}
		return nil, nil, ErrSessionInvalid
	}

	user, err := uc.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Orphaned session. Same answer as an invalid token.
			return nil, nil, ErrSessionInvalid
		}
		return nil, nil, fmt.Errorf("failed to load session owner: %w", err)
	}

	if session.ExpiresAt.Sub(now) < uc.config.SessionRenewalWindow {
		session.ExpiresAt = now.Add(uc.config.SessionTTL)
		uc.renewExpiry(session.ID, session.ExpiresAt)
	}

	user.PasswordHash = ""
	return session, user, nil
}

// renewExpiry persists a slid-forward expiry without holding up the caller.
func (uc *AuthUsecase) renewExpiry(sessionID string, expiresAt time.Time) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), renewTimeout)
		defer cancel()
		if err := uc.sessions.UpdateExpiry(ctx, sessionID, expiresAt); err != nil {
			uc.log.Warnf("session renewal failed: %v", err)
		}
	}()
}

// InvalidateSession revokes one session. Revoking an absent session is a no-op.
func (uc *AuthUsecase) InvalidateSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := uc.sessions.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// InvalidateAllSessionsForUser revokes every session owned by the user.
// Used for "log out everywhere" and on password change.
func (uc *AuthUsecase) InvalidateAllSessionsForUser(ctx context.Context, userID string) error {
	if err := uc.sessions.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

// SweepExpiredSessions deletes all sessions whose expiry has passed and
// returns how many were removed. Meant to be driven by an external trigger;
// the module itself owns no timer.
func (uc *AuthUsecase) SweepExpiredSessions(ctx context.Context) (int64, error) {
	removed, err := uc.sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired sessions: %w", err)
	}
	if removed > 0 {
		uc.log.WithContext(ctx).Infof("swept %d expired sessions", removed)
	}
	return removed, nil
}
