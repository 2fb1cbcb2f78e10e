package model

import "time"

// UserProgress tracks where a user stands inside a lesson. The (user, lesson)
// pair is unique so a duplicate progress row cannot be created.
type UserProgress struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	UserID        uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	LessonID      uint       `json:"lesson_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	CurrentStepID uint       `json:"current_step_id"`
	Completed     bool       `json:"completed" gorm:"default:false;index"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations
	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Lesson Lesson `json:"-" gorm:"foreignKey:LessonID"`
}

// StepCompletion records a single completed step. The unique (user, step)
// pair makes step XP idempotent.
type StepCompletion struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_step"`
	StepID      uint      `json:"step_id" gorm:"not null;uniqueIndex:idx_user_step"`
	CompletedAt time.Time `json:"completed_at"`

	// Relations
	User User       `json:"-" gorm:"foreignKey:UserID"`
	Step LessonStep `json:"-" gorm:"foreignKey:StepID"`
}
