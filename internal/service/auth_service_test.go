package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"timecraft/internal/auth"
	apperrors "timecraft/internal/errors"
	"timecraft/internal/model"
)

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, username, role string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, username, role, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.String(2), args.Error(3)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func testUser(t *testing.T, username, password, role string, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &model.User{
		ID:           1,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       active,
	}
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUserRepository)
	store := new(MockTokenStore)
	svc := NewAuthService(users, auth.NewJWTService("test-secret"), store)

	users.On("FindByUsername", mock.Anything, "demo").
		Return(testUser(t, "demo", "demo123", auth.RoleUser, true), nil)
	store.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(1), "demo", auth.RoleUser, auth.RefreshTokenExpiry).
		Return(nil)

	user, pair, err := svc.Login(context.Background(), "  Demo ", "demo123")

	assert.NoError(t, err)
	assert.Equal(t, "demo", user.Username)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "bearer", pair.TokenType)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	store := new(MockTokenStore)
	svc := NewAuthService(users, auth.NewJWTService("test-secret"), store)

	users.On("FindByUsername", mock.Anything, "demo").
		Return(testUser(t, "demo", "demo123", auth.RoleUser, true), nil)

	_, _, err := svc.Login(context.Background(), "demo", "wrong")

	httpErr, ok := err.(*apperrors.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, "INVALID_CREDENTIALS", httpErr.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	store := new(MockTokenStore)
	svc := NewAuthService(users, auth.NewJWTService("test-secret"), store)

	users.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := svc.Login(context.Background(), "ghost", "pw")

	httpErr, ok := err.(*apperrors.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, "INVALID_CREDENTIALS", httpErr.Code)
}

func TestLogin_DisabledAccount(t *testing.T) {
	users := new(MockUserRepository)
	store := new(MockTokenStore)
	svc := NewAuthService(users, auth.NewJWTService("test-secret"), store)

	users.On("FindByUsername", mock.Anything, "demo").
		Return(testUser(t, "demo", "demo123", auth.RoleUser, false), nil)

	_, _, err := svc.Login(context.Background(), "demo", "demo123")

	httpErr, ok := err.(*apperrors.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, "ACCOUNT_DISABLED", httpErr.Code)
}

func TestRefresh_RotatesToken(t *testing.T) {
	users := new(MockUserRepository)
	store := new(MockTokenStore)
	jwtSvc := auth.NewJWTService("test-secret")
	svc := NewAuthService(users, jwtSvc, store)

	tokenID, refreshToken, err := jwtSvc.GenerateRefreshToken(1, "demo", auth.RoleUser)
	assert.NoError(t, err)

	store.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(1), "demo", auth.RoleUser, nil)
	store.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)
	store.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(1), "demo", auth.RoleUser, auth.RefreshTokenExpiry).
		Return(nil)

	pair, err := svc.Refresh(context.Background(), refreshToken)

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	store.AssertCalled(t, "DeleteRefreshToken", mock.Anything, tokenID)
}

func TestRefresh_InvalidToken(t *testing.T) {
	users := new(MockUserRepository)
	store := new(MockTokenStore)
	svc := NewAuthService(users, auth.NewJWTService("test-secret"), store)

	_, err := svc.Refresh(context.Background(), "not-a-token")

	httpErr, ok := err.(*apperrors.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, "INVALID_REFRESH_TOKEN", httpErr.Code)
}
