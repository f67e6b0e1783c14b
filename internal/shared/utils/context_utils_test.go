package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserIDFromContext(t *testing.T) {
	ctx := WithUserID(context.Background(), "user-123")

	userID, err := GetUserIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	_, err := GetUserIDFromContext(context.Background())
	assert.ErrorIs(t, err, ErrUserIDNotFound)
}

func TestGetUserEmailFromContext(t *testing.T) {
	ctx := WithUserEmail(context.Background(), "bob@x.com")

	email, err := GetUserEmailFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob@x.com", email)

	_, err = GetUserEmailFromContext(context.Background())
	assert.ErrorIs(t, err, ErrUserEmailNotFound)
}

func TestGetSessionIDFromContext(t *testing.T) {
	ctx := WithSessionID(context.Background(), "session-abc")

	sessionID, err := GetSessionIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "session-abc", sessionID)

	_, err = GetSessionIDFromContext(context.Background())
	assert.ErrorIs(t, err, ErrSessionIDNotFound)
}

func TestGetRequestIDFromContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")

	requestID, err := GetRequestIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "req-1", requestID)
}

func TestOrDefaultGetters(t *testing.T) {
	assert.Equal(t, "fallback", GetUserIDOrDefault(context.Background(), "fallback"))
	assert.Equal(t, "fallback", GetRequestIDOrDefault(context.Background(), "fallback"))

	ctx := WithUserID(context.Background(), "user-123")
	assert.Equal(t, "user-123", GetUserIDOrDefault(ctx, "fallback"))
}

func TestHasUserID(t *testing.T) {
	assert.False(t, HasUserID(context.Background()))
	assert.True(t, HasUserID(WithUserID(context.Background(), "user-123")))
}
