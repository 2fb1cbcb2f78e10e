package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditEvent records who generated which rewrite, for which client, with
// which model and rule set. One event per persisted rewrite.
type AuditEvent struct {
	ID            string    `json:"id" gorm:"size:64;primaryKey"`
	Timestamp     time.Time `json:"timestamp" gorm:"index"`
	Username      string    `json:"username" gorm:"size:30;not null"`
	Role          string    `json:"role" gorm:"size:50;not null"`
	ClientID      string    `json:"client_id" gorm:"size:50;not null;index"`
	TimeEntryID   string    `json:"time_entry_id" gorm:"size:64;not null"`
	RewriteID     string    `json:"rewrite_id" gorm:"size:64;not null"`
	ModelName     string    `json:"model_name" gorm:"size:100;not null"`
	RulesSnapshot string    `json:"rules_snapshot" gorm:"type:text;not null"`
}

// NewAuditID mints an audit event identifier.
func NewAuditID() string {
	return "AE-" + uuid.New().String()
}
