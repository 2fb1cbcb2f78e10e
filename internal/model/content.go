package model

import "time"

// Track is the top level of the learning content hierarchy.
type Track struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:100;not null"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Position    int       `json:"position" gorm:"not null;default:0;index"`
	Published   bool      `json:"published" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Modules []CourseModule `json:"modules,omitempty" gorm:"foreignKey:TrackID"`
}

// CourseModule groups lessons inside a track.
type CourseModule struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	TrackID  uint   `json:"track_id" gorm:"not null;index"`
	Title    string `json:"title" gorm:"size:255;not null"`
	Position int    `json:"position" gorm:"not null;default:0;index"`

	// Relations
	Track   Track    `json:"-" gorm:"foreignKey:TrackID"`
	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:ModuleID"`
}

// Lesson is an ordered unit of study inside a module.
type Lesson struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	ModuleID uint   `json:"module_id" gorm:"not null;index"`
	Title    string `json:"title" gorm:"size:255;not null"`
	Position int    `json:"position" gorm:"not null;default:0;index"`
	XPReward int    `json:"xp_reward" gorm:"not null;default:0"`

	// Relations
	Module CourseModule `json:"-" gorm:"foreignKey:ModuleID"`
	Steps  []LessonStep `json:"steps,omitempty" gorm:"foreignKey:LessonID"`
}

// StepKind is the interaction type of a lesson step.
type StepKind string

const (
	StepContent       StepKind = "content"
	StepQuiz          StepKind = "quiz"
	StepCodeChallenge StepKind = "code_challenge"
)

// LessonStep is the smallest unit of progress. Quiz steps carry an expected
// answer; code challenge steps carry a regex the submission must match.
type LessonStep struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	LessonID uint     `json:"lesson_id" gorm:"not null;index"`
	Kind     StepKind `json:"kind" gorm:"type:varchar(20);not null"`
	Position int      `json:"position" gorm:"not null;default:0;index"`
	Title    string   `json:"title" gorm:"size:255;not null"`
	Body     string   `json:"body,omitempty" gorm:"type:text"`
	XPReward int      `json:"xp_reward" gorm:"not null;default:0"`

	// Validation material, interpreted per Kind.
	ExpectedAnswer  string `json:"-" gorm:"size:500"`
	ExpectedPattern string `json:"-" gorm:"size:500"`

	// Relations
	Lesson Lesson `json:"-" gorm:"foreignKey:LessonID"`
}
