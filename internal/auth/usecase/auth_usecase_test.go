package usecase_test

import (
	"context"
	"testing"
	"time"

	"notes-block-api/internal/auth/config"
	"notes-block-api/internal/auth/domain/model"
	"notes-block-api/internal/auth/usecase"
	apperrors "notes-block-api/internal/shared/errors"
	"notes-block-api/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthUsecaseTestSuite struct {
	suite.Suite
	users    *mockUserRepository
	sessions *mockSessionStore
	hasher   *mockPasswordHasher
	tokens   *mockTokenGenerator
	config   *config.Config
	usecase  *usecase.AuthUsecase
}

func (suite *AuthUsecaseTestSuite) SetupTest() {
	suite.users = &mockUserRepository{}
	suite.sessions = &mockSessionStore{}
	suite.hasher = &mockPasswordHasher{}
	suite.tokens = &mockTokenGenerator{}
	suite.config = &config.Config{
		SessionTTL:           720 * time.Hour,
		SessionRenewalWindow: 360 * time.Hour,
		BcryptCost:           10,
	}
	suite.usecase = usecase.NewAuthUsecase(
		suite.users, suite.sessions, suite.hasher, suite.tokens, suite.config, logger.NewLogger(),
	)
}

func (suite *AuthUsecaseTestSuite) TestSignUp_Success() {
	req := usecase.SignUpRequest{Name: "Bobby", Email: "Bob@X.com", Password: "password1"}

	suite.hasher.On("Hash", "password1").Return("digest", nil)
	suite.users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "bob@x.com" && u.Name == "Bobby" && u.PasswordHash == "digest" && u.ID != ""
	})).Return(nil)

	user, err := suite.usecase.SignUp(context.Background(), req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "bob@x.com", user.Email)
	assert.Empty(suite.T(), user.PasswordHash, "hash must never leave the usecase")
	suite.users.AssertExpectations(suite.T())
}

func (suite *AuthUsecaseTestSuite) TestSignUp_MultibyteNameCountsCharacters() {
	// Four characters is enough even when the byte count says twelve.
	req := usecase.SignUpRequest{Name: "山田太郎", Email: "taro@x.com", Password: "password1"}

	suite.hasher.On("Hash", "password1").Return("digest", nil)
	suite.users.On("CreateUser", mock.Anything, mock.Anything).Return(nil)

	user, err := suite.usecase.SignUp(context.Background(), req)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "山田太郎", user.Name)
}

func (suite *AuthUsecaseTestSuite) TestSignUp_ValidationErrors() {
	testCases := []struct {
		name string
		req  usecase.SignUpRequest
	}{
		{"short name", usecase.SignUpRequest{Name: "Bob", Email: "bob@x.com", Password: "password1"}},
		// Three characters even though nine bytes.
		{"short multibyte name", usecase.SignUpRequest{Name: "山田太", Email: "bob@x.com", Password: "password1"}},
		{"missing email", usecase.SignUpRequest{Name: "Bobby", Email: "", Password: "password1"}},
		{"malformed email", usecase.SignUpRequest{Name: "Bobby", Email: "not-an-email", Password: "password1"}},
		{"short password", usecase.SignUpRequest{Name: "Bobby", Email: "bob@x.com", Password: "short"}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := suite.usecase.SignUp(context.Background(), tc.req)
			require.Error(suite.T(), err)
			assert.True(suite.T(), apperrors.IsValidation(err))
		})
	}
	suite.users.AssertNotCalled(suite.T(), "CreateUser")
}

func (suite *AuthUsecaseTestSuite) TestSignUp_DuplicateEmailIsConflict() {
	req := usecase.SignUpRequest{Name: "Bobby", Email: "bob@x.com", Password: "password1"}

	suite.hasher.On("Hash", "password1").Return("digest", nil)
	suite.users.On("CreateUser", mock.Anything, mock.Anything).Return(usecase.ErrEmailTaken)

	_, err := suite.usecase.SignUp(context.Background(), req)
	require.Error(suite.T(), err)
	assert.True(suite.T(), apperrors.IsConflict(err))
	// The client-facing message stays generic.
	assert.NotContains(suite.T(), err.Error(), "duplicate key")
}

func (suite *AuthUsecaseTestSuite) TestSignIn_Success_ReturnsSessionToken() {
	user := &model.User{ID: "user-1", Email: "bob@x.com", PasswordHash: "digest"}

	suite.users.On("GetUserByEmail", mock.Anything, "bob@x.com").Return(user, nil)
	suite.hasher.On("Verify", "password1", "digest").Return(true)
	suite.tokens.On("Generate").Return("session-token", nil)
	suite.sessions.On("Put", mock.Anything, mock.MatchedBy(func(s *model.Session) bool {
		return s.ID == "session-token" && s.UserID == "user-1" && s.ExpiresAt.After(time.Now())
	})).Return(nil)

	got, token, err := suite.usecase.SignIn(context.Background(), usecase.SignInRequest{Email: "bob@x.com", Password: "password1"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "session-token", token)
	assert.Empty(suite.T(), got.PasswordHash)
	suite.sessions.AssertExpectations(suite.T())
}

func (suite *AuthUsecaseTestSuite) TestSignIn_UnknownEmailAndWrongPasswordLookAlike() {
	suite.users.On("GetUserByEmail", mock.Anything, "ghost@x.com").Return(nil, usecase.ErrUserNotFound)

	_, _, errUnknown := suite.usecase.SignIn(context.Background(), usecase.SignInRequest{Email: "ghost@x.com", Password: "password1"})

	user := &model.User{ID: "user-1", Email: "bob@x.com", PasswordHash: "digest"}
	suite.users.On("GetUserByEmail", mock.Anything, "bob@x.com").Return(user, nil)
	suite.hasher.On("Verify", "wrongpassword", "digest").Return(false)

	_, _, errWrong := suite.usecase.SignIn(context.Background(), usecase.SignInRequest{Email: "bob@x.com", Password: "wrongpassword"})

	assert.ErrorIs(suite.T(), errUnknown, usecase.ErrInvalidCredentials)
	assert.ErrorIs(suite.T(), errWrong, usecase.ErrInvalidCredentials)
	assert.Equal(suite.T(), errUnknown.Error(), errWrong.Error())
}

func (suite *AuthUsecaseTestSuite) TestGetUserByID() {
	user := &model.User{ID: "user-1", Email: "bob@x.com", PasswordHash: "digest"}
	suite.users.On("GetUserByID", mock.Anything, "user-1").Return(user, nil)

	got, err := suite.usecase.GetUserByID(context.Background(), "user-1")
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), got.PasswordHash)

	suite.users.On("GetUserByID", mock.Anything, "missing").Return(nil, usecase.ErrUserNotFound)
	_, err = suite.usecase.GetUserByID(context.Background(), "missing")
	assert.ErrorIs(suite.T(), err, usecase.ErrUserNotFound)
}

func (suite *AuthUsecaseTestSuite) TestDeleteUser_CascadesSessionsAndHooks() {
	suite.sessions.On("DeleteByUser", mock.Anything, "user-1").Return(nil)
	suite.users.On("DeleteUser", mock.Anything, "user-1").Return(nil)

	var cleaned string
	suite.usecase.OnUserDelete(func(ctx context.Context, userID string) error {
		cleaned = userID
		return nil
	})

	err := suite.usecase.DeleteUser(context.Background(), "user-1")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "user-1", cleaned)
	suite.sessions.AssertCalled(suite.T(), "DeleteByUser", mock.Anything, "user-1")
}

func TestAuthUsecaseTestSuite(t *testing.T) {
	suite.Run(t, new(AuthUsecaseTestSuite))
}
