package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"timecraft/internal/llm"
	"timecraft/internal/service"
)

// RewriteHandler handles narrative rewrite endpoints.
type RewriteHandler struct {
	rewriteService service.RewriteService
}

// NewRewriteHandler creates a new rewrite handler.
func NewRewriteHandler(rewriteService service.RewriteService) *RewriteHandler {
	return &RewriteHandler{rewriteService: rewriteService}
}

// RewriteRequest is a stateless rewrite with caller-supplied rules.
type RewriteRequest struct {
	Original string          `json:"original" validate:"required"`
	Hours    decimal.Decimal `json:"hours" validate:"required"`
	Rules    llm.Rules       `json:"rules"`
}

// RewriteAndSaveRequest is a client-aware rewrite that is persisted.
type RewriteAndSaveRequest struct {
	ClientID string          `json:"client_id" validate:"required"`
	Original string          `json:"original" validate:"required"`
	Hours    decimal.Decimal `json:"hours" validate:"required"`
}

// Rewrite godoc
// @Summary Rewrite a narrative without persisting anything
// @Tags rewrites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RewriteRequest true "Narrative, hours and optional rules"
// @Success 200 {object} llm.Result
// @Failure 400 {object} errors.ErrorResponse
// @Router /rewrite [post]
func (h *RewriteHandler) Rewrite(c echo.Context) error {
	var req RewriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.rewriteService.Rewrite(c.Request().Context(), req.Original, req.Hours, req.Rules)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// RewriteAndSave godoc
// @Summary Rewrite a narrative with client rules and persist the result
// @Tags rewrites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RewriteAndSaveRequest true "Client, narrative and hours"
// @Success 201 {object} service.SavedRewrite
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rewrite-and-save [post]
func (h *RewriteHandler) RewriteAndSave(c echo.Context) error {
	var req RewriteAndSaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	saved, err := h.rewriteService.RewriteAndSave(c.Request().Context(), user, req.ClientID, req.Original, req.Hours)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// ListRecent godoc
// @Summary List recent time entries with their latest rewrite
// @Tags rewrites
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} pagination.Page[service.EntryView]
// @Failure 401 {object} errors.ErrorResponse
// @Router /entries [get]
func (h *RewriteHandler) ListRecent(c echo.Context) error {
	params := pageParams(c)

	page, err := h.rewriteService.ListRecent(c.Request().Context(), params)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, page)
}

// TagFeedback godoc
// @Summary Tag a rewrite with reviewer feedback
// @Tags rewrites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rewrite ID"
// @Param request body service.FeedbackInput true "Feedback status, variant and notes"
// @Success 200 {object} service.FeedbackResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rewrites/{id}/feedback [post]
func (h *RewriteHandler) TagFeedback(c echo.Context) error {
	var input service.FeedbackInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.rewriteService.TagFeedback(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, result)
}
