package service

import (
	"context"
	"net/http"

	apperrors "timecraft/internal/errors"
	"timecraft/internal/model"
	"timecraft/internal/repository"
)

// EventService ingests product analytics events and answers simple counts.
type EventService interface {
	Record(ctx context.Context, userID uint, eventType, payload string) error
	Counts(ctx context.Context, userID uint) ([]repository.EventCountRow, error)
}

type eventService struct {
	events repository.AnalyticsRepository
}

// NewEventService creates a new event service.
func NewEventService(events repository.AnalyticsRepository) EventService {
	return &eventService{events: events}
}

func (s *eventService) Record(ctx context.Context, userID uint, eventType, payload string) error {
	if err := sanitizeFields(&eventType, &payload); err != nil {
		return err
	}
	if eventType == "" {
		return apperrors.NewHTTPError(http.StatusBadRequest, "event_type is required", "INVALID_EVENT")
	}
	return s.events.Create(ctx, &model.AnalyticsEvent{
		UserID:    userID,
		EventType: eventType,
		Payload:   payload,
	})
}

func (s *eventService) Counts(ctx context.Context, userID uint) ([]repository.EventCountRow, error) {
	return s.events.CountByType(ctx, userID)
}
