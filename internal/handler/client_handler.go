package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"timecraft/internal/pdftext"
	"timecraft/internal/service"
)

// ClientHandler handles billing client endpoints.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new client handler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// PDFUploadResponse reports how much text an upload produced.
type PDFUploadResponse struct {
	ClientID       string `json:"client_id"`
	Document       string `json:"document"`
	ExtractedChars int    `json:"extracted_chars"`
}

// List godoc
// @Summary List clients visible to the caller
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ClientSummary
// @Failure 401 {object} errors.ErrorResponse
// @Router /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	summaries, err := h.clientService.ListForUser(c.Request().Context(), user)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, summaries)
}

// AdminList godoc
// @Summary List clients with full guidance material
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Client
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/clients [get]
func (h *ClientHandler) AdminList(c echo.Context) error {
	clients, err := h.clientService.List(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, clients)
}

// Get godoc
// @Summary Get one client with guidance material
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} model.Client
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.clientService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, client)
}

// Create godoc
// @Summary Create a client
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ClientInput true "Client fields"
// @Success 201 {object} model.Client
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var input service.ClientInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.clientService.Create(c.Request().Context(), input)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, client)
}

// Update godoc
// @Summary Update a client
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param request body service.ClientInput true "Client fields"
// @Success 200 {object} model.Client
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	var input service.ClientInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	client, err := h.clientService.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, client)
}

// Delete godoc
// @Summary Delete a client
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := h.clientService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "client deleted"})
}

// UploadGuidelinesPDF godoc
// @Summary Upload a billing guidelines PDF
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param file formData file true "PDF document"
// @Success 200 {object} PDFUploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/clients/{id}/guidelines-pdf [post]
func (h *ClientHandler) UploadGuidelinesPDF(c echo.Context) error {
	return h.uploadPDF(c, service.PDFSlotGuidelines)
}

// UploadSuccessfulExamplesPDF godoc
// @Summary Upload a PDF of approved narrative examples
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param file formData file true "PDF document"
// @Success 200 {object} PDFUploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/clients/{id}/successful-examples-pdf [post]
func (h *ClientHandler) UploadSuccessfulExamplesPDF(c echo.Context) error {
	return h.uploadPDF(c, service.PDFSlotSuccessfulExamples)
}

// UploadFailedExamplesPDF godoc
// @Summary Upload a PDF of rejected narrative examples
// @Tags admin
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param file formData file true "PDF document"
// @Success 200 {object} PDFUploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/clients/{id}/failed-examples-pdf [post]
func (h *ClientHandler) UploadFailedExamplesPDF(c echo.Context) error {
	return h.uploadPDF(c, service.PDFSlotFailedExamples)
}

func (h *ClientHandler) uploadPDF(c echo.Context, slot service.PDFSlot) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fileHeader.Size > pdftext.MaxUploadBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "file too large")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, pdftext.MaxUploadBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}

	client, chars, err := h.clientService.AttachPDF(c.Request().Context(), c.Param("id"), slot, data)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, PDFUploadResponse{
		ClientID:       client.ID,
		Document:       string(slot),
		ExtractedChars: chars,
	})
}
