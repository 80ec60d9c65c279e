package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trade-journal/internal/models"
)

// TestParseTradeCSV tests a clean file with long and short rows
func TestParseTradeCSV(t *testing.T) {
	data := []byte(`symbol,trade_type,status,entry_price,exit_price,quantity,point_value,fees,entry_date,exit_date,setup,notes
ES,long,closed,5000.25,5010.25,2,50,4.2,2026-01-05,2026-01-05,breakout,clean fill
NQ,short,open,18000,,1,,,2026-01-06 09:30:00,,fade,`)

	trades, rowErrors, total := parseTradeCSV(data)
	require.Empty(t, rowErrors, "Clean file should have no row errors")
	assert.Equal(t, 2, total)
	require.Len(t, trades, 2)

	es := trades[0]
	assert.Equal(t, "ES", es.Symbol)
	assert.Equal(t, models.TradeTypeLong, es.TradeType)
	assert.Equal(t, models.TradeStatusClosed, es.Status)
	require.NotNil(t, es.EntryPrice)
	assert.InDelta(t, 5000.25, *es.EntryPrice, 1e-9)
	require.NotNil(t, es.ExitPrice)
	assert.InDelta(t, 5010.25, *es.ExitPrice, 1e-9)
	assert.InDelta(t, 2.0, es.Quantity, 1e-9)
	assert.InDelta(t, 50.0, es.PointValue, 1e-9)
	assert.InDelta(t, 4.2, es.Fees, 1e-9)
	require.NotNil(t, es.ExitDate)
	assert.Equal(t, "breakout", es.Setup)

	nq := trades[1]
	assert.Equal(t, models.TradeStatusOpen, nq.Status)
	assert.Nil(t, nq.ExitPrice, "Blank cells stay unset")
	assert.Nil(t, nq.ExitDate)
	assert.InDelta(t, 1.0, nq.PointValue, 1e-9, "Blank point value defaults to 1")
	require.NotNil(t, nq.EntryDate)
	assert.Equal(t, 9, nq.EntryDate.Hour(), "Datetime cells keep their time of day")
}

// TestParseTradeCSVRowErrors tests that bad rows are reported without losing good ones
func TestParseTradeCSVRowErrors(t *testing.T) {
	data := []byte(`symbol,trade_type,status,entry_price,exit_price,quantity,point_value,fees,entry_date,exit_date,setup,notes
ES,long,closed,5000,5010,1,,,,,,
,long,closed,100,110,1,,,,,,
NQ,sideways,closed,100,110,1,,,,,,
CL,long,closed,abc,110,1,,,,,,
GC,long,closed,100,110,1,,,13th of May,,,`)

	trades, rowErrors, total := parseTradeCSV(data)
	assert.Equal(t, 5, total)
	require.Len(t, trades, 1, "Only the valid row should survive")
	assert.Equal(t, "ES", trades[0].Symbol)

	require.Len(t, rowErrors, 4)
	assert.Contains(t, rowErrors[0], "row 2", "Row numbers are 1-based data rows")
	assert.Contains(t, rowErrors[0], "symbol")
	assert.Contains(t, rowErrors[1], "row 3")
	assert.Contains(t, rowErrors[2], "row 4")
	assert.Contains(t, rowErrors[2], "entry_price")
	assert.Contains(t, rowErrors[3], "row 5")
	assert.Contains(t, rowErrors[3], "entry_date")
}

// TestParseTradeCSVInvalidFile tests a structurally broken file
func TestParseTradeCSVInvalidFile(t *testing.T) {
	data := []byte(`symbol,trade_type
"unterminated`)

	trades, rowErrors, total := parseTradeCSV(data)
	assert.Empty(t, trades)
	assert.Zero(t, total)
	require.Len(t, rowErrors, 1)
	assert.Contains(t, rowErrors[0], "invalid csv")
}

// TestParseTradeRowDateFormats tests the accepted date layouts
func TestParseTradeRowDateFormats(t *testing.T) {
	tests := []struct {
		value string
		want  time.Time
	}{
		{"2026-01-05", time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)},
		{"2026-01-05 14:45:00", time.Date(2026, 1, 5, 14, 45, 0, 0, time.Local)},
		{"01/05/2026", time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			parsed, err := parseOptionalDate("entry_date", tt.value)
			require.NoError(t, err)
			require.NotNil(t, parsed)
			assert.True(t, parsed.Equal(tt.want), "Expected %v, got %v", tt.want, parsed)
		})
	}

	blank, err := parseOptionalDate("entry_date", "  ")
	require.NoError(t, err)
	assert.Nil(t, blank, "Whitespace-only cells count as unset")
}

// TestParseTradeRowDefaults tests status and plan defaults
func TestParseTradeRowDefaults(t *testing.T) {
	trade, err := parseTradeRow(&csvTradeRow{Symbol: " ES ", TradeType: "LONG"})
	require.NoError(t, err)

	assert.Equal(t, "ES", trade.Symbol, "Symbol should be trimmed")
	assert.Equal(t, models.TradeTypeLong, trade.TradeType, "Type matching is case-insensitive")
	assert.Equal(t, models.TradeStatusOpen, trade.Status, "Missing status defaults to open")
	assert.True(t, trade.FollowedPlan)
}
