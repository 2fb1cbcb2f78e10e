package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"timecraft/internal/auth"
	"timecraft/internal/handler"
	"timecraft/internal/model"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) GrantPermission(ctx context.Context, userID uint, clientID string) error {
	return m.Called(ctx, userID, clientID).Error(0)
}

func (m *MockUserRepository) RevokePermission(ctx context.Context, userID uint, clientID string) error {
	return m.Called(ctx, userID, clientID).Error(0)
}

func (m *MockUserRepository) ReplacePermissions(ctx context.Context, userID uint, clientIDs []string) error {
	return m.Called(ctx, userID, clientIDs).Error(0)
}

func (m *MockUserRepository) PermittedClientIDs(ctx context.Context, userID uint) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) HasPermission(ctx context.Context, userID uint, clientID string) (bool, error) {
	args := m.Called(ctx, userID, clientID)
	return args.Bool(0), args.Error(1)
}

type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, username, role string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, userID, username, role, ttl).Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.String(2), args.Error(3)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return m.Called(ctx, tokenID).Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, ttl).Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

const testSecret = "router-test-secret"

func newSecuredEcho(t *testing.T, users *MockUserRepository, tokens *MockTokenStore) *echo.Echo {
	t.Helper()

	jwtService := auth.NewJWTService(testSecret)
	e := echo.New()
	secured := e.Group("/api", jwtMiddleware(testSecret), loadUser(jwtService, users, tokens))
	secured.GET("/whoami", func(c echo.Context) error {
		user, err := handler.UserFrom(c)
		if err != nil {
			return err
		}
		claims, err := handler.ClaimsFrom(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"username": user.Username,
			"token_id": claims.ID,
		})
	})
	secured.GET("/admin-only", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, adminOnly())
	return e
}

func request(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSecuredRoute_ResolvesUserFromToken(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenStore)
	e := newSecuredEcho(t, users, tokens)

	token, err := auth.NewJWTService(testSecret).GenerateAccessToken(7, "demo", "user")
	assert.NoError(t, err)

	tokens.On("IsAccessTokenBlacklisted", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	users.On("FindByID", mock.Anything, uint(7)).Return(&model.User{ID: 7, Username: "demo", Role: "user", Active: true}, nil)

	rec := request(e, token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"demo"`)
	users.AssertExpectations(t)
}

func TestSecuredRoute_RejectsMissingToken(t *testing.T) {
	e := newSecuredEcho(t, new(MockUserRepository), new(MockTokenStore))

	rec := request(e, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSecuredRoute_RejectsWrongSignature(t *testing.T) {
	e := newSecuredEcho(t, new(MockUserRepository), new(MockTokenStore))

	token, err := auth.NewJWTService("another-secret").GenerateAccessToken(7, "demo", "user")
	assert.NoError(t, err)

	rec := request(e, token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSecuredRoute_RejectsBlacklistedToken(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenStore)
	e := newSecuredEcho(t, users, tokens)

	token, err := auth.NewJWTService(testSecret).GenerateAccessToken(7, "demo", "user")
	assert.NoError(t, err)

	tokens.On("IsAccessTokenBlacklisted", mock.Anything, mock.AnythingOfType("string")).Return(true, nil)

	rec := request(e, token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestSecuredRoute_RejectsDisabledAccount(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenStore)
	e := newSecuredEcho(t, users, tokens)

	token, err := auth.NewJWTService(testSecret).GenerateAccessToken(7, "demo", "user")
	assert.NoError(t, err)

	tokens.On("IsAccessTokenBlacklisted", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	users.On("FindByID", mock.Anything, uint(7)).Return(&model.User{ID: 7, Username: "demo", Role: "user", Active: false}, nil)

	rec := request(e, token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnly_RejectsRegularUser(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenStore)
	e := newSecuredEcho(t, users, tokens)

	token, err := auth.NewJWTService(testSecret).GenerateAccessToken(7, "demo", "user")
	assert.NoError(t, err)

	tokens.On("IsAccessTokenBlacklisted", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	users.On("FindByID", mock.Anything, uint(7)).Return(&model.User{ID: 7, Username: "demo", Role: "user", Active: true}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin-only", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
