package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trade-journal/internal/metrics"
	"github.com/trade-journal/internal/models"
)

// tradeOn builds a closed long trade whose net P&L equals pnl, exiting at
// the given time
func tradeOn(exit time.Time, pnl float64) models.Trade {
	return models.Trade{
		Symbol:     "NQ",
		TradeType:  models.TradeTypeLong,
		Status:     models.TradeStatusClosed,
		EntryPrice: fptr(100),
		ExitPrice:  fptr(100 + pnl),
		Quantity:   1,
		PointValue: 1,
		ExitDate:   &exit,
	}
}

// TestSummarizeEmpty tests the zero-value result for no trades
func TestSummarizeEmpty(t *testing.T) {
	stats := metrics.Summarize(nil)

	assert.Zero(t, stats.TotalTrades)
	assert.Zero(t, stats.TotalPnL)
	assert.Zero(t, stats.WinRate)
	assert.Zero(t, stats.ProfitFactor)
	assert.Zero(t, stats.LargestDrawdown)
	assert.Nil(t, stats.BestDay, "No trades should mean no best day")
	assert.Nil(t, stats.WorstDay, "No trades should mean no worst day")
	assert.Empty(t, stats.DailyPnL)
}

// TestSummarizeSkipsIncompleteTrades tests that open and unpriced trades are excluded
func TestSummarizeSkipsIncompleteTrades(t *testing.T) {
	exit := time.Date(2026, 1, 5, 10, 0, 0, 0, time.Local)

	open := tradeOn(exit, 50)
	open.Status = models.TradeStatusOpen

	noExitDate := tradeOn(exit, 50)
	noExitDate.ExitDate = nil

	unpriced := tradeOn(exit, 50)
	unpriced.ExitPrice = fptr(0)

	stats := metrics.Summarize([]models.Trade{open, noExitDate, unpriced, tradeOn(exit, 25)})

	assert.Equal(t, 1, stats.TotalTrades, "Only the fully closed trade should count")
	assert.InDelta(t, 25.0, stats.TotalPnL, 1e-9)
}

// TestSummarizeCoreNumbers tests win/loss tallies, averages and profit factor
func TestSummarizeCoreNumbers(t *testing.T) {
	monday := time.Date(2026, 1, 5, 10, 0, 0, 0, time.Local)
	tuesday := monday.AddDate(0, 0, 1)

	trades := []models.Trade{
		tradeOn(monday, 50),
		tradeOn(monday, 10),
		tradeOn(tuesday, -30),
		tradeOn(tuesday, 0), // scratch, neither win nor loss
	}

	stats := metrics.Summarize(trades)

	assert.Equal(t, 4, stats.TotalTrades)
	assert.InDelta(t, 30.0, stats.TotalPnL, 1e-9)
	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.InDelta(t, 50.0, stats.WinRate, 1e-9, "Scratch trades count in the denominator")
	assert.InDelta(t, 30.0, stats.AvgWin, 1e-9)
	assert.InDelta(t, 30.0, stats.AvgLoss, 1e-9, "Average loss is reported as a positive magnitude")
	assert.InDelta(t, 2.0, stats.ProfitFactor, 1e-9, "Profit factor is total wins over total losses")
	assert.InDelta(t, 0.0, stats.Expectancy, 1e-9)
}

// TestSummarizeProfitFactorNoLosses tests the degraded profit factor when nothing was lost
func TestSummarizeProfitFactorNoLosses(t *testing.T) {
	exit := time.Date(2026, 1, 5, 10, 0, 0, 0, time.Local)

	stats := metrics.Summarize([]models.Trade{
		tradeOn(exit, 40),
		tradeOn(exit, 60),
	})

	assert.Equal(t, 0, stats.Losses)
	assert.InDelta(t, 100.0, stats.ProfitFactor, 1e-9, "No losses should degrade to the total win amount, not Inf")
}

// TestSummarizeProfitFactorNoWins tests that an all-losing set reports 0
func TestSummarizeProfitFactorNoWins(t *testing.T) {
	exit := time.Date(2026, 1, 5, 10, 0, 0, 0, time.Local)

	stats := metrics.Summarize([]models.Trade{
		tradeOn(exit, -40),
		tradeOn(exit, -10),
	})

	assert.Zero(t, stats.ProfitFactor)
	assert.Zero(t, stats.WinRate)
	assert.InDelta(t, 25.0, stats.AvgLoss, 1e-9)
}

// TestSummarizeDailyPnL tests per-day grouping, ordering and best/worst selection
func TestSummarizeDailyPnL(t *testing.T) {
	day1 := time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 1, 6, 9, 0, 0, 0, time.Local)
	day3 := time.Date(2026, 1, 7, 9, 0, 0, 0, time.Local)

	trades := []models.Trade{
		tradeOn(day2, -80),
		tradeOn(day1, 30),
		tradeOn(day1, 20),
		tradeOn(day3, 100),
	}

	stats := metrics.Summarize(trades)

	require.Len(t, stats.DailyPnL, 3)
	assert.Equal(t, "2026-01-05", stats.DailyPnL[0].Date, "Days should be sorted ascending")
	assert.InDelta(t, 50.0, stats.DailyPnL[0].PnL, 1e-9, "Same-day trades should sum")
	assert.Equal(t, "2026-01-06", stats.DailyPnL[1].Date)
	assert.Equal(t, "2026-01-07", stats.DailyPnL[2].Date)

	require.NotNil(t, stats.BestDay)
	require.NotNil(t, stats.WorstDay)
	assert.Equal(t, "2026-01-07", stats.BestDay.Date)
	assert.InDelta(t, 100.0, stats.BestDay.PnL, 1e-9)
	assert.Equal(t, "2026-01-06", stats.WorstDay.Date)
	assert.InDelta(t, -80.0, stats.WorstDay.PnL, 1e-9)
}

// TestSummarizeLargestDrawdown tests the peak-to-trough equity walk
func TestSummarizeLargestDrawdown(t *testing.T) {
	base := time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local)

	// Equity: 100, 60, 30, 110. Deepest decline from the 100 peak is 70.
	// Trades are supplied out of order to exercise the exit-date sort.
	trades := []models.Trade{
		tradeOn(base.AddDate(0, 0, 3), 80),
		tradeOn(base, 100),
		tradeOn(base.AddDate(0, 0, 2), -30),
		tradeOn(base.AddDate(0, 0, 1), -40),
	}

	stats := metrics.Summarize(trades)
	assert.InDelta(t, 70.0, stats.LargestDrawdown, 1e-9)
}

// TestSummarizeLargestDrawdownAllWins tests that a monotonic equity curve has no drawdown
func TestSummarizeLargestDrawdownAllWins(t *testing.T) {
	base := time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local)

	stats := metrics.Summarize([]models.Trade{
		tradeOn(base, 10),
		tradeOn(base.AddDate(0, 0, 1), 20),
	})

	assert.Zero(t, stats.LargestDrawdown)
}

// TestSummarizeWeekdayBreakdown tests the Monday-first seven-day breakdown
func TestSummarizeWeekdayBreakdown(t *testing.T) {
	monday := time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local)
	wednesday := monday.AddDate(0, 0, 2)

	stats := metrics.Summarize([]models.Trade{
		tradeOn(monday, 40),
		tradeOn(monday, -10),
		tradeOn(wednesday, 20),
	})

	require.Len(t, stats.ByWeekday, 7, "All seven days should be present for chart consumers")
	assert.Equal(t, "Monday", stats.ByWeekday[0].Weekday)
	assert.Equal(t, 2, stats.ByWeekday[0].Trades)
	assert.InDelta(t, 30.0, stats.ByWeekday[0].PnL, 1e-9)
	assert.InDelta(t, 50.0, stats.ByWeekday[0].WinRate, 1e-9)

	assert.Equal(t, "Wednesday", stats.ByWeekday[2].Weekday)
	assert.Equal(t, 1, stats.ByWeekday[2].Trades)

	assert.Equal(t, "Sunday", stats.ByWeekday[6].Weekday)
	assert.Zero(t, stats.ByWeekday[6].Trades, "Untraded days should report zeros")
}

// TestSummarizeStrategyBreakdown tests the per-strategy grouping with an untagged bucket
func TestSummarizeStrategyBreakdown(t *testing.T) {
	exit := time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local)
	strategyA := uint(3)

	tagged := tradeOn(exit, 50)
	tagged.StrategyID = &strategyA
	taggedLoss := tradeOn(exit, -20)
	taggedLoss.StrategyID = &strategyA

	stats := metrics.Summarize([]models.Trade{tagged, taggedLoss, tradeOn(exit, 10)})

	require.Len(t, stats.ByStrategy, 2)
	assert.Equal(t, uint(0), stats.ByStrategy[0].StrategyID, "Untagged trades collect under strategy 0")
	assert.Equal(t, 1, stats.ByStrategy[0].Trades)

	assert.Equal(t, strategyA, stats.ByStrategy[1].StrategyID)
	assert.Equal(t, 2, stats.ByStrategy[1].Trades)
	assert.InDelta(t, 30.0, stats.ByStrategy[1].PnL, 1e-9)
	assert.InDelta(t, 50.0, stats.ByStrategy[1].WinRate, 1e-9)
}
