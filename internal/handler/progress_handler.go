package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"timecraft/internal/service"
)

// ProgressHandler handles lesson progress endpoints.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new progress handler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// CompleteStepRequest carries the learner's answer for a step.
type CompleteStepRequest struct {
	Answer string `json:"answer"`
}

// StartLesson godoc
// @Summary Start or resume a lesson
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} model.UserProgress
// @Failure 404 {object} errors.ErrorResponse
// @Router /lessons/{id}/start [post]
func (h *ProgressHandler) StartLesson(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}
	lessonID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid lesson id")
	}

	progress, err := h.progressService.StartLesson(c.Request().Context(), user.ID, uint(lessonID))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, progress)
}

// CompleteStep godoc
// @Summary Submit a step answer and record completion
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Step ID"
// @Param request body CompleteStepRequest true "Answer for quiz and code steps"
// @Success 200 {object} service.StepResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /steps/{id}/complete [post]
func (h *ProgressHandler) CompleteStep(c echo.Context) error {
	var req CompleteStepRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := UserFrom(c)
	if err != nil {
		return err
	}
	stepID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid step id")
	}

	result, err := h.progressService.CompleteStep(c.Request().Context(), user.ID, uint(stepID), req.Answer)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// Resume godoc
// @Summary List the caller's in-flight lessons with their next step
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.ResumePoint
// @Failure 401 {object} errors.ErrorResponse
// @Router /progress/resume [get]
func (h *ProgressHandler) Resume(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	points, err := h.progressService.Resume(c.Request().Context(), user.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, points)
}
