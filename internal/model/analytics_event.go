package model

import "time"

// AnalyticsEvent is an append-only product analytics record.
type AnalyticsEvent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	EventType string    `json:"event_type" gorm:"size:100;not null;index"`
	Payload   string    `json:"payload,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
