package models

import (
	"time"
)

// ImportStatus represents the processing state of a CSV import
type ImportStatus string

const (
	ImportStatusPending    ImportStatus = "pending"
	ImportStatusProcessing ImportStatus = "processing"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
)

// ImportLog records one CSV trade import, including per-row failures.
// RawData holds the uploaded CSV until the import worker processes it.
type ImportLog struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"index;not null" json:"user_id"`
	Filename     string       `gorm:"size:255;not null" json:"filename"`
	Status       ImportStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	TotalRows    int          `json:"total_rows"`
	ImportedRows int          `json:"imported_rows"`
	FailedRows   int          `json:"failed_rows"`
	RowErrors    StringList   `gorm:"type:jsonb" json:"row_errors"`
	RawData      []byte       `gorm:"type:bytea" json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TableName specifies the table name for ImportLog model
func (ImportLog) TableName() string {
	return "import_logs"
}
