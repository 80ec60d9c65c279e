package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// TradeType represents the direction of a trade
type TradeType string

const (
	TradeTypeLong  TradeType = "long"
	TradeTypeShort TradeType = "short"
)

// TradeStatus represents the lifecycle state of a trade
type TradeStatus string

const (
	TradeStatusOpen   TradeStatus = "open"
	TradeStatusClosed TradeStatus = "closed"
)

// StringList is a string slice stored as a JSONB column
type StringList []string

// Value implements driver.Valuer for StringList
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for StringList
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// Trade represents a single journaled trade.
// Pricing fields are pointers because a trade may be logged while still
// open; the derived P&L fields are recomputed on every read and never
// written to the database.
type Trade struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     uint        `gorm:"index;not null" json:"user_id"`
	Symbol     string      `gorm:"size:20;not null;index" json:"symbol"`
	TradeType  TradeType   `gorm:"size:10;not null;default:'long'" json:"trade_type"`
	Status     TradeStatus `gorm:"size:10;not null;default:'open';index" json:"status"`
	EntryPrice *float64    `gorm:"type:decimal(20,8)" json:"entry_price"`
	ExitPrice  *float64    `gorm:"type:decimal(20,8)" json:"exit_price"`
	Quantity   float64     `gorm:"type:decimal(20,8)" json:"quantity"`
	PointValue float64     `gorm:"type:decimal(20,8);default:1" json:"point_value"`
	Fees       float64     `gorm:"type:decimal(20,8);default:0" json:"fees"`
	EntryDate  *time.Time  `gorm:"index" json:"entry_date"`
	ExitDate   *time.Time  `gorm:"index" json:"exit_date"`
	StrategyID *uint       `gorm:"index" json:"strategy_id"`

	// Behavioral annotations
	Setup           string     `gorm:"size:100" json:"setup"`
	Notes           string     `gorm:"type:text" json:"notes"`
	EmotionBefore   string     `gorm:"size:50" json:"emotion_before"`
	EmotionAfter    string     `gorm:"size:50" json:"emotion_after"`
	ConfidenceLevel int        `json:"confidence_level"`
	FollowedPlan    bool       `gorm:"default:true" json:"followed_plan"`
	MistakeTags     StringList `gorm:"type:jsonb" json:"mistake_tags"`
	Screenshots     StringList `gorm:"type:jsonb" json:"screenshots"`

	// Derived fields, populated by the metrics engine on read
	ProfitLossGross   *float64 `gorm:"-" json:"profit_loss_gross"`
	ProfitLoss        *float64 `gorm:"-" json:"profit_loss"`
	ProfitLossPercent *float64 `gorm:"-" json:"profit_loss_percent"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Trade model
func (Trade) TableName() string {
	return "trades"
}
