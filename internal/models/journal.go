package models

import (
	"time"

	"gorm.io/gorm"
)

// JournalEntry represents a dated journal note with mood tracking
type JournalEntry struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"index;not null" json:"user_id"`
	Date            time.Time      `gorm:"index;not null" json:"date"`
	Title           string         `gorm:"size:200" json:"title"`
	Content         string         `gorm:"type:text" json:"content"`
	Mood            string         `gorm:"size:50" json:"mood"`
	ConfidenceLevel int            `json:"confidence_level"`
	Lessons         string         `gorm:"type:text" json:"lessons"`
	ImageURLs       StringList     `gorm:"type:jsonb" json:"image_urls"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for JournalEntry model
func (JournalEntry) TableName() string {
	return "journal_entries"
}
