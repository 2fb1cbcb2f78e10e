package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"timecraft/internal/auth"
	apperrors "timecraft/internal/errors"
	"timecraft/internal/model"
	"timecraft/internal/repository"
)

// TokenPair holds a newly issued access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, accessClaims *auth.Claims, refreshToken string) error
}

type authService struct {
	users      repository.UserRepository
	jwt        *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwt *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{users: users, jwt: jwt, tokenStore: tokenStore}
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.User, *TokenPair, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, apperrors.NewHTTPError(http.StatusUnauthorized, "invalid username or password", "INVALID_CREDENTIALS")
		}
		return nil, nil, err
	}
	if !user.Active {
		return nil, nil, apperrors.NewHTTPError(http.StatusUnauthorized, "account is disabled", "ACCOUNT_DISABLED")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperrors.NewHTTPError(http.StatusUnauthorized, "invalid username or password", "INVALID_CREDENTIALS")
	}

	pair, err := s.issueTokens(ctx, user.ID, user.Username, user.Role)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	tokenID, err := s.jwt.ExtractTokenID(refreshToken)
	if err != nil {
		return nil, apperrors.NewHTTPError(http.StatusUnauthorized, "invalid refresh token", "INVALID_REFRESH_TOKEN")
	}

	userID, username, role, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return nil, apperrors.NewHTTPError(http.StatusUnauthorized, "refresh token expired or revoked", "INVALID_REFRESH_TOKEN")
	}

	// Rotate: the old refresh token becomes unusable.
	if err := s.tokenStore.DeleteRefreshToken(ctx, tokenID); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, userID, username, role)
}

func (s *authService) Logout(ctx context.Context, accessClaims *auth.Claims, refreshToken string) error {
	if refreshToken != "" {
		if tokenID, err := s.jwt.ExtractTokenID(refreshToken); err == nil {
			_ = s.tokenStore.DeleteRefreshToken(ctx, tokenID)
		}
	}
	if accessClaims != nil && accessClaims.ID != "" {
		ttl := auth.AccessTokenExpiry
		if accessClaims.ExpiresAt != nil {
			ttl = accessClaims.ExpiresAt.Sub(accessClaims.IssuedAt.Time)
		}
		return s.tokenStore.BlacklistAccessToken(ctx, accessClaims.ID, ttl)
	}
	return nil
}

func (s *authService) issueTokens(ctx context.Context, userID uint, username, role string) (*TokenPair, error) {
	accessToken, err := s.jwt.GenerateAccessToken(userID, username, role)
	if err != nil {
		return nil, err
	}

	tokenID, refreshToken, err := s.jwt.GenerateRefreshToken(userID, username, role)
	if err != nil {
		return nil, err
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, userID, username, role, auth.RefreshTokenExpiry); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(auth.AccessTokenExpiry.Seconds()),
	}, nil
}

const minPasswordLength = 8

// ValidatePassword enforces the password policy: minimum length plus at
// least one uppercase letter, one lowercase letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("password must be at least %d characters long", minPasswordLength), "WEAK_PASSWORD")
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		return apperrors.NewHTTPError(http.StatusBadRequest, "password must contain at least one uppercase letter", "WEAK_PASSWORD")
	}
	if !hasLower {
		return apperrors.NewHTTPError(http.StatusBadRequest, "password must contain at least one lowercase letter", "WEAK_PASSWORD")
	}
	if !hasDigit {
		return apperrors.NewHTTPError(http.StatusBadRequest, "password must contain at least one number", "WEAK_PASSWORD")
	}
	return nil
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
