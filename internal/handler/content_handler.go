package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"timecraft/internal/service"
)

// ContentHandler handles learning catalog endpoints.
type ContentHandler struct {
	contentService service.ContentService
}

// NewContentHandler creates a new content handler.
func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// ListTracks godoc
// @Summary List all learning tracks
// @Tags content
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Track
// @Failure 401 {object} errors.ErrorResponse
// @Router /tracks [get]
func (h *ContentHandler) ListTracks(c echo.Context) error {
	tracks, err := h.contentService.ListTracks(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, tracks)
}

// GetTrack godoc
// @Summary Get a track with its modules and lessons
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Track slug"
// @Success 200 {object} model.Track
// @Failure 404 {object} errors.ErrorResponse
// @Router /tracks/{slug} [get]
func (h *ContentHandler) GetTrack(c echo.Context) error {
	track, err := h.contentService.GetTrack(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, track)
}

// GetLesson godoc
// @Summary Get a lesson with its steps
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} model.Lesson
// @Failure 404 {object} errors.ErrorResponse
// @Router /lessons/{id} [get]
func (h *ContentHandler) GetLesson(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid lesson id")
	}

	lesson, err := h.contentService.GetLesson(c.Request().Context(), uint(id))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, lesson)
}
