package http

import (
	"context"

	"notes-block-api/internal/auth/domain/model"
	"notes-block-api/internal/auth/usecase"

	"github.com/stretchr/testify/mock"
)

type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) SignUp(ctx context.Context, req usecase.SignUpRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	if user := args.Get(0); user != nil {
		return user.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthUsecase) SignIn(ctx context.Context, req usecase.SignInRequest) (*model.User, string, error) {
	args := m.Called(ctx, req)
	if user := args.Get(0); user != nil {
		return user.(*model.User), args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func (m *mockAuthUsecase) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	if user := args.Get(0); user != nil {
		return user.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthUsecase) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockAuthUsecase) CreateSession(ctx context.Context, userID string) (*model.Session, error) {
	args := m.Called(ctx, userID)
	if session := args.Get(0); session != nil {
		return session.(*model.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthUsecase) ValidateSession(ctx context.Context, token string) (*model.Session, *model.User, error) {
	args := m.Called(ctx, token)
	var session *model.Session
	var user *model.User
	if s := args.Get(0); s != nil {
		session = s.(*model.Session)
	}
	if u := args.Get(1); u != nil {
		user = u.(*model.User)
	}
	return session, user, args.Error(2)
}

func (m *mockAuthUsecase) InvalidateSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *mockAuthUsecase) InvalidateAllSessionsForUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockAuthUsecase) SweepExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
