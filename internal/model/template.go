package model

import "time"

// TemplateType distinguishes quick phrases from full saved rewrites.
type TemplateType string

const (
	TemplatePhrase      TemplateType = "phrase"
	TemplateFullRewrite TemplateType = "full_rewrite"
)

// Template is a user-saved rewrite or phrase for quick reuse.
// ClientID is empty for global templates.
type Template struct {
	ID           string       `json:"id" gorm:"size:64;primaryKey"`
	UserID       uint         `json:"user_id" gorm:"not null;index"`
	ClientID     string       `json:"client_id,omitempty" gorm:"size:50;index"`
	Name         string       `json:"name" gorm:"size:255;not null"`
	TemplateType TemplateType `json:"template_type" gorm:"type:varchar(20);not null"`
	OriginalText string       `json:"original_text,omitempty" gorm:"type:text"`
	RewriteText  string       `json:"rewrite_text" gorm:"type:text;not null"`
	Category     string       `json:"category,omitempty" gorm:"size:100"`
	UsageCount   int          `json:"usage_count" gorm:"default:0"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
