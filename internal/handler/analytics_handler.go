package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"timecraft/internal/service"
)

// AnalyticsHandler handles dashboard and audit trail endpoints.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
	auditService     service.AuditService
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService, auditService service.AuditService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, auditService: auditService}
}

// Dashboard godoc
// @Summary Usage dashboard with totals, client breakdown and monthly trend
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Dashboard
// @Failure 401 {object} errors.ErrorResponse
// @Router /analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	dashboard, err := h.analyticsService.Dashboard(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dashboard)
}

// ListAudits godoc
// @Summary List recent rewrite audit events
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum rows" default(50)
// @Success 200 {array} model.AuditEvent
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/audits [get]
func (h *AnalyticsHandler) ListAudits(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	events, err := h.auditService.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, events)
}
