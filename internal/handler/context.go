package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"timecraft/internal/auth"
	"timecraft/internal/model"
	"timecraft/internal/pagination"
)

// Context keys used by the user-loading middleware.
const (
	currentUserKey   = "currentUser"
	currentClaimsKey = "currentClaims"
)

// ClaimsFrom extracts the typed JWT claims set by the auth middleware.
func ClaimsFrom(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get(currentClaimsKey).(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

// SetClaims stores the validated token claims on the request context.
func SetClaims(c echo.Context, claims *auth.Claims) {
	c.Set(currentClaimsKey, claims)
}

// UserFrom returns the resolved account stored by the user-loading
// middleware.
func UserFrom(c echo.Context) (*model.User, error) {
	user, ok := c.Get(currentUserKey).(*model.User)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "user not resolved")
	}
	return user, nil
}

// SetUser stores the resolved account on the request context.
func SetUser(c echo.Context, user *model.User) {
	c.Set(currentUserKey, user)
}

// pageParams parses page and page_size query parameters.
func pageParams(c echo.Context) pagination.Params {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("page_size"))
	return pagination.Params{Page: page, PageSize: size}.Normalize()
}
