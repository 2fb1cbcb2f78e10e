package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"timecraft/internal/service"
)

// GamificationHandler handles XP, streak, leaderboard and badge endpoints.
type GamificationHandler struct {
	gamificationService service.GamificationService
	badgeService        service.BadgeService
}

// NewGamificationHandler creates a new gamification handler.
func NewGamificationHandler(gamificationService service.GamificationService, badgeService service.BadgeService) *GamificationHandler {
	return &GamificationHandler{gamificationService: gamificationService, badgeService: badgeService}
}

// Profile godoc
// @Summary The caller's XP, level, streak and leaderboard rank
// @Tags gamification
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ProfileView
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *GamificationHandler) Profile(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	profile, err := h.gamificationService.Profile(c.Request().Context(), user.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// Transactions godoc
// @Summary The caller's recent XP transactions
// @Tags gamification
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum rows" default(20)
// @Success 200 {array} model.XPTransaction
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile/transactions [get]
func (h *GamificationHandler) Transactions(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	transactions, err := h.gamificationService.Transactions(c.Request().Context(), user.ID, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, transactions)
}

// Leaderboard godoc
// @Summary Top learners ranked by XP
// @Tags gamification
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum rows" default(10)
// @Success 200 {array} cache.LeaderboardEntry
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /leaderboard [get]
func (h *GamificationHandler) Leaderboard(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	entries, err := h.gamificationService.Leaderboard(c.Request().Context(), limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// BadgeCatalog godoc
// @Summary List all badges that can be earned
// @Tags gamification
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Badge
// @Failure 401 {object} errors.ErrorResponse
// @Router /badges [get]
func (h *GamificationHandler) BadgeCatalog(c echo.Context) error {
	badges, err := h.badgeService.Catalog(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, badges)
}

// UserBadges godoc
// @Summary List the badges the caller has earned
// @Tags gamification
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.UserBadge
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile/badges [get]
func (h *GamificationHandler) UserBadges(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	userBadges, err := h.badgeService.UserBadges(c.Request().Context(), user.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, userBadges)
}
