package metrics

import (
	"sort"
	"time"

	"github.com/trade-journal/internal/models"
)

// DayPnL is one calendar day's summed net P&L
type DayPnL struct {
	Date string  `json:"date"` // YYYY-MM-DD, local time of exit
	PnL  float64 `json:"pnl"`
}

// WeekdayStat is the per-day-of-week performance breakdown
type WeekdayStat struct {
	Weekday string  `json:"weekday"`
	Trades  int     `json:"trades"`
	PnL     float64 `json:"pnl"`
	WinRate float64 `json:"win_rate"`
}

// StrategyStat is the per-strategy performance breakdown.
// StrategyID 0 collects trades without a strategy tag.
type StrategyStat struct {
	StrategyID uint    `json:"strategy_id"`
	Trades     int     `json:"trades"`
	PnL        float64 `json:"pnl"`
	WinRate    float64 `json:"win_rate"`
}

// Stats aggregates a set of closed trades into dashboard metrics.
// Every field has a well-defined zero value for empty input.
type Stats struct {
	TotalTrades     int            `json:"total_trades"`
	TotalPnL        float64        `json:"total_pnl"`
	Wins            int            `json:"wins"`
	Losses          int            `json:"losses"`
	WinRate         float64        `json:"win_rate"`
	AvgWin          float64        `json:"avg_win"`
	AvgLoss         float64        `json:"avg_loss"`
	ProfitFactor    float64        `json:"profit_factor"`
	Expectancy      float64        `json:"expectancy"`
	DailyPnL        []DayPnL       `json:"daily_pnl"`
	BestDay         *DayPnL        `json:"best_day"`
	WorstDay        *DayPnL        `json:"worst_day"`
	LargestDrawdown float64        `json:"largest_drawdown"`
	ByWeekday       []WeekdayStat  `json:"by_weekday"`
	ByStrategy      []StrategyStat `json:"by_strategy"`
}

// closedTrade pairs a trade with its computed net P&L and exit time
type closedTrade struct {
	pnl        float64
	exitDate   time.Time
	strategyID uint
}

// Summarize computes aggregate statistics over the given trades.
// Open or incompletely priced trades are skipped; trades whose net P&L
// is exactly 0 count as neither win nor loss.
func Summarize(trades []models.Trade) Stats {
	stats := Stats{}

	closed := collectClosed(trades)
	stats.TotalTrades = len(closed)
	if len(closed) == 0 {
		return stats
	}

	var totalWinAmount, totalLossAmount float64
	daily := make(map[string]float64)

	for _, ct := range closed {
		stats.TotalPnL += ct.pnl
		if ct.pnl > 0 {
			stats.Wins++
			totalWinAmount += ct.pnl
		} else if ct.pnl < 0 {
			stats.Losses++
			totalLossAmount += -ct.pnl
		}
		daily[ct.exitDate.Local().Format("2006-01-02")] += ct.pnl
	}

	stats.WinRate = float64(stats.Wins) / float64(len(closed)) * 100
	if stats.Wins > 0 {
		stats.AvgWin = totalWinAmount / float64(stats.Wins)
	}
	if stats.Losses > 0 {
		stats.AvgLoss = totalLossAmount / float64(stats.Losses)
	}

	// Zero total losses never produce Inf: the factor degrades to the
	// total win amount, or 0 when there are no wins either.
	if totalLossAmount > 0 {
		stats.ProfitFactor = totalWinAmount / totalLossAmount
	} else if stats.Wins > 0 {
		stats.ProfitFactor = totalWinAmount
	}

	stats.Expectancy = (stats.WinRate/100)*stats.AvgWin - ((100-stats.WinRate)/100)*stats.AvgLoss

	stats.DailyPnL = sortedDailyPnL(daily)
	stats.BestDay, stats.WorstDay = bestWorstDay(stats.DailyPnL)
	stats.LargestDrawdown = largestDrawdown(closed)
	stats.ByWeekday = weekdayBreakdown(closed)
	stats.ByStrategy = strategyBreakdown(closed)

	return stats
}

// collectClosed filters to closed, fully priced trades with an exit date
// and resolves each one's net P&L through the per-trade calculator.
func collectClosed(trades []models.Trade) []closedTrade {
	closed := make([]closedTrade, 0, len(trades))
	for i := range trades {
		trade := trades[i]
		if trade.ExitDate == nil {
			continue
		}
		result := CalculateTradePnL(&trade)
		if result.ProfitLoss == nil {
			continue
		}
		ct := closedTrade{pnl: *result.ProfitLoss, exitDate: *trade.ExitDate}
		if trade.StrategyID != nil {
			ct.strategyID = *trade.StrategyID
		}
		closed = append(closed, ct)
	}
	return closed
}

func sortedDailyPnL(daily map[string]float64) []DayPnL {
	days := make([]DayPnL, 0, len(daily))
	for date, pnl := range daily {
		days = append(days, DayPnL{Date: date, PnL: pnl})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}

func bestWorstDay(days []DayPnL) (*DayPnL, *DayPnL) {
	if len(days) == 0 {
		return nil, nil
	}
	best, worst := days[0], days[0]
	for _, day := range days[1:] {
		if day.PnL > best.PnL {
			best = day
		}
		if day.PnL < worst.PnL {
			worst = day
		}
	}
	return &best, &worst
}

// largestDrawdown walks trades in exit-date order accumulating net P&L,
// tracking the running equity peak. The result is the deepest observed
// peak-to-trough decline, never negative.
func largestDrawdown(closed []closedTrade) float64 {
	ordered := make([]closedTrade, len(closed))
	copy(ordered, closed)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].exitDate.Before(ordered[j].exitDate)
	})

	var cumulative, peak, maxDrawdown float64
	for _, ct := range ordered {
		cumulative += ct.pnl
		if cumulative > peak {
			peak = cumulative
		}
		if drawdown := peak - cumulative; drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}
	return maxDrawdown
}

func weekdayBreakdown(closed []closedTrade) []WeekdayStat {
	type tally struct {
		trades int
		wins   int
		pnl    float64
	}
	tallies := make(map[time.Weekday]*tally)
	for _, ct := range closed {
		weekday := ct.exitDate.Local().Weekday()
		t := tallies[weekday]
		if t == nil {
			t = &tally{}
			tallies[weekday] = t
		}
		t.trades++
		t.pnl += ct.pnl
		if ct.pnl > 0 {
			t.wins++
		}
	}

	// Monday-first ordering, all seven days present for chart consumers
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	breakdown := make([]WeekdayStat, 0, len(order))
	for _, weekday := range order {
		stat := WeekdayStat{Weekday: weekday.String()}
		if t := tallies[weekday]; t != nil {
			stat.Trades = t.trades
			stat.PnL = t.pnl
			stat.WinRate = float64(t.wins) / float64(t.trades) * 100
		}
		breakdown = append(breakdown, stat)
	}
	return breakdown
}

func strategyBreakdown(closed []closedTrade) []StrategyStat {
	type tally struct {
		trades int
		wins   int
		pnl    float64
	}
	tallies := make(map[uint]*tally)
	for _, ct := range closed {
		t := tallies[ct.strategyID]
		if t == nil {
			t = &tally{}
			tallies[ct.strategyID] = t
		}
		t.trades++
		t.pnl += ct.pnl
		if ct.pnl > 0 {
			t.wins++
		}
	}

	breakdown := make([]StrategyStat, 0, len(tallies))
	for strategyID, t := range tallies {
		breakdown = append(breakdown, StrategyStat{
			StrategyID: strategyID,
			Trades:     t.trades,
			PnL:        t.pnl,
			WinRate:    float64(t.wins) / float64(t.trades) * 100,
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].StrategyID < breakdown[j].StrategyID
	})
	return breakdown
}
