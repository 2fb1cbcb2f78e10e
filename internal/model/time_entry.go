package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeEntry represents a billable time entry narrative submitted for rewriting.
type TimeEntry struct {
	ID        string          `json:"id" gorm:"size:64;primaryKey"`
	ClientID  string          `json:"client_id" gorm:"size:50;not null;index"`
	Original  string          `json:"original" gorm:"type:text;not null"`
	Hours     decimal.Decimal `json:"hours" gorm:"type:decimal(6,2);not null"`
	CreatedAt time.Time       `json:"created_at" gorm:"index"`

	// Relations
	Client   Client          `json:"-" gorm:"foreignKey:ClientID"`
	Rewrites []RewriteRecord `json:"-" gorm:"foreignKey:TimeEntryID"`
}

// NewEntryID mints a time entry identifier.
func NewEntryID() string {
	return "TE-" + uuid.New().String()
}
