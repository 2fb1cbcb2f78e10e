package model

import "time"

// BatchStatus is the lifecycle state of a bulk CSV operation.
type BatchStatus string

const (
	BatchProcessing          BatchStatus = "processing"
	BatchCompleted           BatchStatus = "completed"
	BatchCompletedWithErrors BatchStatus = "completed_with_errors"
	BatchFailed              BatchStatus = "failed"
)

// BatchOperation tracks a bulk CSV import or export run.
type BatchOperation struct {
	ID             string      `json:"id" gorm:"size:64;primaryKey"`
	UserID         uint        `json:"user_id" gorm:"not null;index"`
	OperationType  string      `json:"operation_type" gorm:"size:20;not null"` // "import" or "export"
	Filename       string      `json:"filename" gorm:"size:255;not null"`
	TotalRows      int         `json:"total_rows" gorm:"not null"`
	SuccessfulRows int         `json:"successful_rows" gorm:"default:0"`
	FailedRows     int         `json:"failed_rows" gorm:"default:0"`
	Status         BatchStatus `json:"status" gorm:"type:varchar(30);default:'processing';index"`
	ErrorLog       string      `json:"error_log,omitempty" gorm:"type:text"`
	CreatedAt      time.Time   `json:"created_at" gorm:"index"`
	CompletedAt    *time.Time  `json:"completed_at,omitempty"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
