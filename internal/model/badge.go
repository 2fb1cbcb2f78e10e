package model

import "time"

// BadgeMetric names the counter a badge threshold is evaluated against.
type BadgeMetric string

const (
	MetricLessonsCompleted BadgeMetric = "lessons_completed"
	MetricStreakDays       BadgeMetric = "streak_days"
	MetricXPEarned         BadgeMetric = "xp_earned"
	MetricTracksCompleted  BadgeMetric = "tracks_completed"
)

// Badge is awarded when a user's counter reaches the threshold.
type Badge struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Slug        string      `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	Title       string      `json:"title" gorm:"size:255;not null"`
	Description string      `json:"description,omitempty" gorm:"type:text"`
	Metric      BadgeMetric `json:"metric" gorm:"type:varchar(30);not null"`
	Threshold   int64       `json:"threshold" gorm:"not null"`
	CreatedAt   time.Time   `json:"created_at"`
}

// UserBadge is an awarded badge. The unique (user, badge) pair makes awards
// idempotent.
type UserBadge struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_badge"`
	BadgeID   uint      `json:"badge_id" gorm:"not null;uniqueIndex:idx_user_badge"`
	AwardedAt time.Time `json:"awarded_at"`

	// Relations
	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Badge Badge `json:"badge" gorm:"foreignKey:BadgeID"`
}
