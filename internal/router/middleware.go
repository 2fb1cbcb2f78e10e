package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"timecraft/internal/auth"
	"timecraft/internal/handler"
	"timecraft/internal/repository"
)

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// jwtMiddleware rejects requests without a valid signed bearer token.
func jwtMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	})
}

// loadUser parses the bearer token into typed claims, rejects blacklisted
// tokens and disabled accounts, and stores the claims and account for
// handlers.
func loadUser(jwtService *auth.JWTService, users repository.UserRepository, tokens auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := bearerClaims(c, jwtService)
			if err != nil {
				return err
			}

			if claims.ID != "" {
				blacklisted, err := tokens.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
				if err == nil && blacklisted {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "account not found")
			}
			if !user.Active {
				return echo.NewHTTPError(http.StatusUnauthorized, "account disabled")
			}

			handler.SetClaims(c, claims)
			handler.SetUser(c, user)
			return next(c)
		}
	}
}

// bearerClaims extracts and validates the Authorization bearer token.
func bearerClaims(c echo.Context, jwtService *auth.JWTService) (*auth.Claims, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" || tokenString == header {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	claims, err := jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

// adminOnly rejects callers without the admin role.
func adminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := handler.UserFrom(c)
			if err != nil {
				return err
			}
			if !user.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}
