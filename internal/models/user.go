package models

import (
	"time"

	"gorm.io/gorm"
)

// Theme represents the UI theme preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// User represents a registered user and their journal preferences
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	Theme        Theme          `gorm:"size:10;default:'dark'" json:"theme"`
	AccountSize  float64        `gorm:"type:decimal(20,8);default:0" json:"account_size"`
	RiskPerTrade float64        `gorm:"type:decimal(10,4);default:1" json:"risk_per_trade"`
	MonthlyGoal  float64        `gorm:"type:decimal(20,8);default:0" json:"monthly_goal"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// TradesTableColumns stores the user's visible trade-table columns
	TradesTableColumns StringList `gorm:"type:jsonb" json:"trades_table_columns"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
