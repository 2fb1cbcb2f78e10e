package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"timecraft/internal/service"
)

// BulkHandler handles CSV import and export endpoints.
type BulkHandler struct {
	bulkService service.BulkService
}

// NewBulkHandler creates a new bulk operations handler.
func NewBulkHandler(bulkService service.BulkService) *BulkHandler {
	return &BulkHandler{bulkService: bulkService}
}

// Import godoc
// @Summary Import time entries from a CSV file
// @Tags bulk
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV with client_id, original and hours columns"
// @Success 200 {object} model.BatchOperation
// @Failure 400 {object} errors.ErrorResponse
// @Router /bulk/import [post]
func (h *BulkHandler) Import(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}
	defer src.Close()

	batch, err := h.bulkService.ImportCSV(c.Request().Context(), user, fileHeader.Filename, src)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, batch)
}

// Export godoc
// @Summary Export time entries as a CSV download
// @Tags bulk
// @Produce text/csv
// @Security BearerAuth
// @Param client_id query string false "Limit export to one client"
// @Success 200 {string} string "CSV content"
// @Failure 403 {object} errors.ErrorResponse
// @Router /bulk/export [get]
func (h *BulkHandler) Export(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	file, err := h.bulkService.ExportCSV(c.Request().Context(), user, c.QueryParam("client_id"))
	if err != nil {
		return toHTTPError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Blob(http.StatusOK, "text/csv", file.Content)
}

// ListBatches godoc
// @Summary List the caller's bulk operations
// @Tags bulk
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum rows" default(20)
// @Success 200 {array} model.BatchOperation
// @Failure 401 {object} errors.ErrorResponse
// @Router /bulk/batches [get]
func (h *BulkHandler) ListBatches(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	batches, err := h.bulkService.ListBatches(c.Request().Context(), user, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, batches)
}

// GetBatch godoc
// @Summary Get one of the caller's bulk operations
// @Tags bulk
// @Produce json
// @Security BearerAuth
// @Param id path string true "Batch ID"
// @Success 200 {object} model.BatchOperation
// @Failure 404 {object} errors.ErrorResponse
// @Router /bulk/batches/{id} [get]
func (h *BulkHandler) GetBatch(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	batch, err := h.bulkService.GetBatch(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, batch)
}
