package metrics

import (
	"github.com/trade-journal/internal/models"
)

// PnLResult holds the derived profit fields for a single trade.
// All fields are nil when the trade is open or missing pricing inputs.
type PnLResult struct {
	ProfitLoss        *float64 `json:"profit_loss"`
	ProfitLossGross   *float64 `json:"profit_loss_gross"`
	ProfitLossPercent *float64 `json:"profit_loss_percent"`
}

// CalculateTradePnL derives gross, net and percent P&L for a trade.
//
// A trade yields nil results unless it is closed with entry price, exit
// price and quantity all set. A value of exactly 0 counts as missing,
// matching the journal's historical treatment of unset numeric fields
// (flagged for product review; changing it would alter reported stats).
func CalculateTradePnL(trade *models.Trade) PnLResult {
	if trade == nil || trade.Status != models.TradeStatusClosed {
		return PnLResult{}
	}
	if !hasValue(trade.EntryPrice) || !hasValue(trade.ExitPrice) || trade.Quantity == 0 {
		return PnLResult{}
	}

	entry := *trade.EntryPrice
	exit := *trade.ExitPrice
	qty := trade.Quantity
	pointValue := trade.PointValue
	if pointValue == 0 {
		pointValue = 1
	}

	var gross float64
	if trade.TradeType == models.TradeTypeShort {
		gross = (entry - exit) * pointValue * qty
	} else {
		gross = (exit - entry) * pointValue * qty
	}
	net := gross - trade.Fees

	percent := 0.0
	if entry > 0 && qty > 0 {
		percent = gross / (entry * pointValue * qty) * 100
	}

	return PnLResult{
		ProfitLoss:        &net,
		ProfitLossGross:   &gross,
		ProfitLossPercent: &percent,
	}
}

// EnrichTradePnL returns a copy of the trade with derived P&L fields set
func EnrichTradePnL(trade models.Trade) models.Trade {
	result := CalculateTradePnL(&trade)
	trade.ProfitLoss = result.ProfitLoss
	trade.ProfitLossGross = result.ProfitLossGross
	trade.ProfitLossPercent = result.ProfitLossPercent
	return trade
}

// EnrichTradesPnL maps EnrichTradePnL over a trade list without mutating it
func EnrichTradesPnL(trades []models.Trade) []models.Trade {
	enriched := make([]models.Trade, len(trades))
	for i, trade := range trades {
		enriched[i] = EnrichTradePnL(trade)
	}
	return enriched
}

func hasValue(v *float64) bool {
	return v != nil && *v != 0
}
