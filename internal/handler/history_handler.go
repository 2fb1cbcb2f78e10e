package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"timecraft/internal/model"
	"timecraft/internal/repository"
	"timecraft/internal/service"
)

// HistoryHandler handles rewrite version history and template endpoints.
type HistoryHandler struct {
	historyService  service.HistoryService
	templateService service.TemplateService
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(historyService service.HistoryService, templateService service.TemplateService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService, templateService: templateService}
}

// ListVersions godoc
// @Summary List all rewrite versions of a time entry
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param id path string true "Time entry ID"
// @Success 200 {array} model.RewriteVersion
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /entries/{id}/versions [get]
func (h *HistoryHandler) ListVersions(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	versions, err := h.historyService.ListVersions(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, versions)
}

// RestoreVersion godoc
// @Summary Restore an older rewrite version as the current one
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param id path string true "Time entry ID"
// @Param versionId path string true "Version ID"
// @Success 200 {object} service.RestoredVersion
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /entries/{id}/versions/{versionId}/restore [post]
func (h *HistoryHandler) RestoreVersion(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	restored, err := h.historyService.RestoreVersion(c.Request().Context(), user, c.Param("id"), c.Param("versionId"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, restored)
}

// CreateTemplate godoc
// @Summary Create a rewrite template
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.TemplateInput true "Template fields"
// @Success 201 {object} model.Template
// @Failure 400 {object} errors.ErrorResponse
// @Router /templates [post]
func (h *HistoryHandler) CreateTemplate(c echo.Context) error {
	var input service.TemplateInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	template, err := h.templateService.Create(c.Request().Context(), user, input)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, template)
}

// ListTemplates godoc
// @Summary List the caller's templates
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param client_id query string false "Filter by client"
// @Param template_type query string false "Filter by type" Enums(phrase, full_rewrite)
// @Param category query string false "Filter by category"
// @Success 200 {array} model.Template
// @Failure 401 {object} errors.ErrorResponse
// @Router /templates [get]
func (h *HistoryHandler) ListTemplates(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	filter := repository.TemplateFilter{
		ClientID:     c.QueryParam("client_id"),
		TemplateType: model.TemplateType(c.QueryParam("template_type")),
		Category:     c.QueryParam("category"),
	}

	templates, err := h.templateService.List(c.Request().Context(), user, filter)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, templates)
}

// GetTemplate godoc
// @Summary Get one of the caller's templates
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 200 {object} model.Template
// @Failure 404 {object} errors.ErrorResponse
// @Router /templates/{id} [get]
func (h *HistoryHandler) GetTemplate(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	template, err := h.templateService.Get(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, template)
}

// UpdateTemplate godoc
// @Summary Update one of the caller's templates
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Param request body service.TemplateUpdate true "Fields to change"
// @Success 200 {object} model.Template
// @Failure 404 {object} errors.ErrorResponse
// @Router /templates/{id} [put]
func (h *HistoryHandler) UpdateTemplate(c echo.Context) error {
	var update service.TemplateUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	template, err := h.templateService.Update(c.Request().Context(), user, c.Param("id"), update)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, template)
}

// DeleteTemplate godoc
// @Summary Delete one of the caller's templates
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /templates/{id} [delete]
func (h *HistoryHandler) DeleteTemplate(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	if err := h.templateService.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "template deleted"})
}

// UseTemplate godoc
// @Summary Record a template use and return it
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 200 {object} model.Template
// @Failure 404 {object} errors.ErrorResponse
// @Router /templates/{id}/use [post]
func (h *HistoryHandler) UseTemplate(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	template, err := h.templateService.Use(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, template)
}
