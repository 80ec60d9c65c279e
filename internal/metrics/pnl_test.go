package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trade-journal/internal/metrics"
	"github.com/trade-journal/internal/models"
)

func fptr(v float64) *float64 {
	return &v
}

func closedTrade(tradeType models.TradeType, entry, exit, qty, pointValue, fees float64) models.Trade {
	exitDate := time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)
	return models.Trade{
		Symbol:     "ES",
		TradeType:  tradeType,
		Status:     models.TradeStatusClosed,
		EntryPrice: fptr(entry),
		ExitPrice:  fptr(exit),
		Quantity:   qty,
		PointValue: pointValue,
		Fees:       fees,
		ExitDate:   &exitDate,
	}
}

// TestCalculateTradePnLLong tests net, gross and percent for a long trade
func TestCalculateTradePnLLong(t *testing.T) {
	trade := closedTrade(models.TradeTypeLong, 100, 110, 2, 1, 4)

	result := metrics.CalculateTradePnL(&trade)
	require.NotNil(t, result.ProfitLossGross, "Closed priced trade should have gross P&L")
	require.NotNil(t, result.ProfitLoss, "Closed priced trade should have net P&L")
	require.NotNil(t, result.ProfitLossPercent, "Closed priced trade should have percent P&L")

	assert.InDelta(t, 20.0, *result.ProfitLossGross, 1e-9, "Gross should be (exit-entry)*pv*qty")
	assert.InDelta(t, 16.0, *result.ProfitLoss, 1e-9, "Net should be gross minus fees")
	assert.InDelta(t, 10.0, *result.ProfitLossPercent, 1e-9, "Percent should be gross over entry value")
}

// TestCalculateTradePnLShort tests that a short trade mirrors the long formula
func TestCalculateTradePnLShort(t *testing.T) {
	trade := closedTrade(models.TradeTypeShort, 100, 90, 2, 1, 0)

	result := metrics.CalculateTradePnL(&trade)
	require.NotNil(t, result.ProfitLossGross)

	assert.InDelta(t, 20.0, *result.ProfitLossGross, 1e-9, "Short gross should be (entry-exit)*pv*qty")
	assert.InDelta(t, 10.0, *result.ProfitLossPercent, 1e-9, "Short percent uses the same base")
}

// TestCalculateTradePnLPointValue tests futures-style point value scaling
func TestCalculateTradePnLPointValue(t *testing.T) {
	trade := closedTrade(models.TradeTypeLong, 50, 55, 1, 20, 0)

	result := metrics.CalculateTradePnL(&trade)
	require.NotNil(t, result.ProfitLossGross)

	assert.InDelta(t, 100.0, *result.ProfitLossGross, 1e-9, "Point value should scale gross")
	assert.InDelta(t, 10.0, *result.ProfitLossPercent, 1e-9, "Percent base includes point value")
}

// TestCalculateTradePnLZeroPointValue tests that a missing point value defaults to 1
func TestCalculateTradePnLZeroPointValue(t *testing.T) {
	trade := closedTrade(models.TradeTypeLong, 100, 105, 1, 0, 0)

	result := metrics.CalculateTradePnL(&trade)
	require.NotNil(t, result.ProfitLossGross)

	assert.InDelta(t, 5.0, *result.ProfitLossGross, 1e-9, "Zero point value should act as 1")
}

// TestCalculateTradePnLOpenTrade tests that open trades produce no P&L
func TestCalculateTradePnLOpenTrade(t *testing.T) {
	trade := closedTrade(models.TradeTypeLong, 100, 110, 1, 1, 0)
	trade.Status = models.TradeStatusOpen

	result := metrics.CalculateTradePnL(&trade)
	assert.Nil(t, result.ProfitLoss, "Open trade should have nil net P&L")
	assert.Nil(t, result.ProfitLossGross, "Open trade should have nil gross P&L")
	assert.Nil(t, result.ProfitLossPercent, "Open trade should have nil percent P&L")
}

// TestCalculateTradePnLMissingInputs tests that missing or zero inputs yield nil
func TestCalculateTradePnLMissingInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Trade)
	}{
		{"nil entry price", func(tr *models.Trade) { tr.EntryPrice = nil }},
		{"zero entry price", func(tr *models.Trade) { tr.EntryPrice = fptr(0) }},
		{"nil exit price", func(tr *models.Trade) { tr.ExitPrice = nil }},
		{"zero exit price", func(tr *models.Trade) { tr.ExitPrice = fptr(0) }},
		{"zero quantity", func(tr *models.Trade) { tr.Quantity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trade := closedTrade(models.TradeTypeLong, 100, 110, 1, 1, 0)
			tt.mutate(&trade)

			result := metrics.CalculateTradePnL(&trade)
			assert.Nil(t, result.ProfitLoss, "Incomplete trade should have nil P&L")
		})
	}
}

// TestCalculateTradePnLPercentGuard tests that the percent base is never divided by zero
func TestCalculateTradePnLPercentGuard(t *testing.T) {
	trade := closedTrade(models.TradeTypeLong, -100, -90, 1, 1, 0)

	result := metrics.CalculateTradePnL(&trade)
	require.NotNil(t, result.ProfitLossPercent)

	assert.InDelta(t, 10.0, *result.ProfitLossGross, 1e-9, "Gross still computed for negative prices")
	assert.Zero(t, *result.ProfitLossPercent, "Percent should be 0 when entry is not positive")
}

// TestEnrichTradesPnL tests that enrichment returns copies and leaves the input alone
func TestEnrichTradesPnL(t *testing.T) {
	trades := []models.Trade{
		closedTrade(models.TradeTypeLong, 100, 110, 1, 1, 0),
	}

	enriched := metrics.EnrichTradesPnL(trades)
	require.Len(t, enriched, 1)

	require.NotNil(t, enriched[0].ProfitLoss)
	assert.InDelta(t, 10.0, *enriched[0].ProfitLoss, 1e-9)
	assert.Nil(t, trades[0].ProfitLoss, "Input slice should not be mutated")
}
