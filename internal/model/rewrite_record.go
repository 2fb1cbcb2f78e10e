package model

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackStatus captures how a rewrite fared with the billing reviewer.
type FeedbackStatus string

const (
	FeedbackSuccess      FeedbackStatus = "success"
	FeedbackFailure      FeedbackStatus = "failure"
	FeedbackNotSubmitted FeedbackStatus = "not_submitted"
)

// Rewrite variant names, matching the three fields produced by the model.
const (
	VariantStandard        = "standard"
	VariantClientCompliant = "client_compliant"
	VariantAuditSafe       = "audit_safe"
)

// RewriteRecord holds the three rewrite variants produced for a time entry,
// plus reviewer feedback once the entry has been submitted to the client.
type RewriteRecord struct {
	ID          string `json:"id" gorm:"size:64;primaryKey"`
	TimeEntryID string `json:"time_entry_id" gorm:"size:64;not null;index"`

	Standard        string `json:"standard" gorm:"type:text;not null"`
	ClientCompliant string `json:"client_compliant" gorm:"type:text;not null"`
	AuditSafe       string `json:"audit_safe" gorm:"type:text;not null"`
	Notes           string `json:"notes,omitempty" gorm:"type:text"`

	Status          FeedbackStatus `json:"status,omitempty" gorm:"type:varchar(20);index"`
	SelectedVariant string         `json:"selected_variant,omitempty" gorm:"size:30"`
	FeedbackNotes   string         `json:"feedback_notes,omitempty" gorm:"type:text"`
	FeedbackDate    *time.Time     `json:"feedback_date,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`

	// Relations
	TimeEntry TimeEntry `json:"-" gorm:"foreignKey:TimeEntryID"`
}

// VariantText returns the text of the named variant, or empty when unknown.
func (r *RewriteRecord) VariantText(variant string) string {
	switch variant {
	case VariantStandard:
		return r.Standard
	case VariantClientCompliant:
		return r.ClientCompliant
	case VariantAuditSafe:
		return r.AuditSafe
	}
	return ""
}

// NewRewriteID mints a rewrite record identifier.
func NewRewriteID() string {
	return "RW-" + uuid.New().String()
}
