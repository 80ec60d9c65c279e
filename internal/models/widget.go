package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// WidgetType identifies what a dashboard widget renders
type WidgetType string

const (
	// KPI cards
	WidgetTotalPnL     WidgetType = "total_pnl"
	WidgetWinRate      WidgetType = "win_rate"
	WidgetProfitFactor WidgetType = "profit_factor"
	WidgetExpectancy   WidgetType = "expectancy"
	WidgetAvgWin       WidgetType = "avg_win"
	WidgetAvgLoss      WidgetType = "avg_loss"
	WidgetTradeCount   WidgetType = "trade_count"
	WidgetBestWorstDay WidgetType = "best_worst_day"
	WidgetDrawdown     WidgetType = "drawdown"

	// Charts and gauges
	WidgetEquityCurve  WidgetType = "equity_curve"
	WidgetDailyPnL     WidgetType = "daily_pnl"
	WidgetDayOfWeek    WidgetType = "day_of_week_pnl"
	WidgetStrategyPnL  WidgetType = "strategy_pnl"
	WidgetWinRateGauge WidgetType = "win_rate_gauge"

	// Lists and calendar
	WidgetRecentTrades WidgetType = "recent_trades"
	WidgetOpenTrades   WidgetType = "open_trades"
	WidgetCalendar     WidgetType = "calendar"

	// Container holding up to four stacked child widgets
	WidgetStacked WidgetType = "stacked"
)

// Widget is a single dashboard panel placed on the 4-column grid.
// Hidden widgets stay in the stored layout so their geometry survives
// a remove/re-add cycle. Widgets with a non-empty ParentID live inside
// a stacked container and do not occupy grid cells themselves.
type Widget struct {
	ID       string     `json:"id"`
	Type     WidgetType `json:"type"`
	Visible  bool       `json:"visible"`
	X        int        `json:"x"`
	Y        int        `json:"y"`
	W        int        `json:"w"`
	H        int        `json:"h"`
	ParentID string     `json:"parent_id,omitempty"`
	Slot     int        `json:"slot,omitempty"`
}

// WidgetList is a widget array stored as a JSONB column
type WidgetList []Widget

// Value implements driver.Valuer for WidgetList
func (l WidgetList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for WidgetList
func (l *WidgetList) Scan(value interface{}) error {
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
		return errors.New("unsupported type for WidgetList")
	}
}

// DashboardLayout is the persisted widget arrangement for one user.
// Revision increments on every save; writers must echo the revision
// they read so concurrent sessions cannot silently clobber each other.
type DashboardLayout struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Widgets   WidgetList `gorm:"type:jsonb;not null" json:"widgets"`
	Revision  int64      `gorm:"not null;default:0" json:"revision"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name for DashboardLayout model
func (DashboardLayout) TableName() string {
	return "dashboard_layouts"
}
