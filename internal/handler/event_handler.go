package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"timecraft/internal/service"
)

// EventHandler handles learner activity event endpoints.
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// RecordEventRequest carries one activity event.
type RecordEventRequest struct {
	EventType string `json:"event_type" validate:"required"`
	Payload   string `json:"payload"`
}

// Record godoc
// @Summary Record a learner activity event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecordEventRequest true "Event type and payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /events [post]
func (h *EventHandler) Record(c echo.Context) error {
	var req RecordEventRequest
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

	if err := h.eventService.Record(c.Request().Context(), user.ID, req.EventType, req.Payload); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "event recorded"})
}

// Counts godoc
// @Summary Count the caller's events grouped by type
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {array} repository.EventCountRow
// @Failure 401 {object} errors.ErrorResponse
// @Router /events/counts [get]
func (h *EventHandler) Counts(c echo.Context) error {
	user, err := UserFrom(c)
	if err != nil {
		return err
	}

	counts, err := h.eventService.Counts(c.Request().Context(), user.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, counts)
}
