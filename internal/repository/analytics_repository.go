package repository

import (
	"context"

	"gorm.io/gorm"

	"timecraft/internal/model"
)

// EventCountRow is an aggregate of analytics events by type.
type EventCountRow struct {
	EventType string `json:"event_type"`
	Count     int64  `json:"count"`
}

// AnalyticsRepository defines analytics event persistence.
type AnalyticsRepository interface {
	Create(ctx context.Context, event *model.AnalyticsEvent) error
	CountByType(ctx context.Context, userID uint) ([]EventCountRow, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository.
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Create(ctx context.Context, event *model.AnalyticsEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// CountByType groups a user's events by type. userID zero means all users.
func (r *analyticsRepository) CountByType(ctx context.Context, userID uint) ([]EventCountRow, error) {
	q := r.db.WithContext(ctx).Model(&model.AnalyticsEvent{})
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	var rows []EventCountRow
	err := q.Select("event_type, COUNT(*) AS count").
		Group("event_type").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
