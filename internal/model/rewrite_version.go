package model

import "time"

// RewriteVersion is a numbered snapshot of a time entry's rewrite history.
// Exactly one version per entry carries IsCurrent=true.
type RewriteVersion struct {
	ID            string `json:"id" gorm:"size:64;primaryKey"`
	TimeEntryID   string `json:"time_entry_id" gorm:"size:64;not null;index"`
	VersionNumber int    `json:"version_number" gorm:"not null"`

	Standard        string `json:"standard" gorm:"type:text;not null"`
	ClientCompliant string `json:"client_compliant" gorm:"type:text;not null"`
	AuditSafe       string `json:"audit_safe" gorm:"type:text;not null"`
	Notes           string `json:"notes,omitempty" gorm:"type:text"`

	CreatedBy string    `json:"created_by" gorm:"size:30;not null"`
	IsCurrent bool      `json:"is_current" gorm:"default:true;index"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	TimeEntry TimeEntry `json:"-" gorm:"foreignKey:TimeEntryID"`
}
