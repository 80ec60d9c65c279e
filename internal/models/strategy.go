package models

import (
	"time"

	"gorm.io/gorm"
)

// Strategy represents a named trading strategy trades can be tagged with
type Strategy struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index;not null" json:"user_id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Rules       StringList     `gorm:"type:jsonb" json:"rules"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Strategy model
func (Strategy) TableName() string {
	return "strategies"
}
