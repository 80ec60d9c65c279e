package service

import (
	"context"
	"errors"
	"time"

	"github.com/trade-journal/internal/metrics"
	"github.com/trade-journal/internal/models"
	"github.com/trade-journal/internal/repository"
)

var (
	ErrInvalidTradeType   = errors.New("trade type must be long or short")
	ErrInvalidTradeStatus = errors.New("trade status must be open or closed")
	ErrTradeAlreadyClosed = errors.New("trade is already closed")
)

// TradeService handles trade CRUD, enriching every trade it returns
// with derived P&L fields
type TradeService struct {
	tradeRepo *repository.TradeRepository
	cache     *StatsCache
}

// NewTradeService creates a new TradeService
func NewTradeService(tradeRepo *repository.TradeRepository, cache *StatsCache) *TradeService {
	return &TradeService{
		tradeRepo: tradeRepo,
		cache:     cache,
	}
}

// CreateTradeRequest represents the trade creation request
type CreateTradeRequest struct {
	Symbol          string     `json:"symbol" binding:"required"`
	TradeType       string     `json:"trade_type" binding:"required"`
	Status          string     `json:"status"`
	EntryPrice      *float64   `json:"entry_price"`
	ExitPrice       *float64   `json:"exit_price"`
	Quantity        float64    `json:"quantity"`
	PointValue      float64    `json:"point_value"`
	Fees            float64    `json:"fees"`
	EntryDate       *time.Time `json:"entry_date"`
	ExitDate        *time.Time `json:"exit_date"`
	StrategyID      *uint      `json:"strategy_id"`
	Setup           string     `json:"setup"`
	Notes           string     `json:"notes"`
	EmotionBefore   string     `json:"emotion_before"`
	EmotionAfter    string     `json:"emotion_after"`
	ConfidenceLevel int        `json:"confidence_level"`
	FollowedPlan    *bool      `json:"followed_plan"`
	MistakeTags     []string   `json:"mistake_tags"`
	Screenshots     []string   `json:"screenshots"`
}

// UpdateTradeRequest represents a partial trade update; nil fields are
// left unchanged
type UpdateTradeRequest struct {
	Symbol          *string    `json:"symbol"`
	TradeType       *string    `json:"trade_type"`
	Status          *string    `json:"status"`
	EntryPrice      *float64   `json:"entry_price"`
	ExitPrice       *float64   `json:"exit_price"`
	Quantity        *float64   `json:"quantity"`
	PointValue      *float64   `json:"point_value"`
	Fees            *float64   `json:"fees"`
	EntryDate       *time.Time `json:"entry_date"`
	ExitDate        *time.Time `json:"exit_date"`
	StrategyID      *uint      `json:"strategy_id"`
	Setup           *string    `json:"setup"`
	Notes           *string    `json:"notes"`
	EmotionBefore   *string    `json:"emotion_before"`
	EmotionAfter    *string    `json:"emotion_after"`
	ConfidenceLevel *int       `json:"confidence_level"`
	FollowedPlan    *bool      `json:"followed_plan"`
	MistakeTags     []string   `json:"mistake_tags"`
	Screenshots     []string   `json:"screenshots"`
}

// CloseTradeRequest closes an open trade at the given exit
type CloseTradeRequest struct {
	ExitPrice float64    `json:"exit_price" binding:"required"`
	ExitDate  *time.Time `json:"exit_date"`
	Fees      *float64   `json:"fees"`
}

// Create creates a trade for a user
func (s *TradeService) Create(ctx context.Context, userID uint, req *CreateTradeRequest) (*models.Trade, error) {
	tradeType, err := parseTradeType(req.TradeType)
	if err != nil {
		return nil, err
	}
	status := models.TradeStatusOpen
	if req.Status != "" {
		status, err = parseTradeStatus(req.Status)
		if err != nil {
			return nil, err
		}
	}

	pointValue := req.PointValue
	if pointValue == 0 {
		pointValue = 1
	}
	followedPlan := true
	if req.FollowedPlan != nil {
		followedPlan = *req.FollowedPlan
	}

	trade := &models.Trade{
		UserID:          userID,
		Symbol:          req.Symbol,
		TradeType:       tradeType,
		Status:          status,
		EntryPrice:      req.EntryPrice,
		ExitPrice:       req.ExitPrice,
		Quantity:        req.Quantity,
		PointValue:      pointValue,
		Fees:            req.Fees,
		EntryDate:       req.EntryDate,
		ExitDate:        req.ExitDate,
		StrategyID:      req.StrategyID,
		Setup:           req.Setup,
		Notes:           req.Notes,
		EmotionBefore:   req.EmotionBefore,
		EmotionAfter:    req.EmotionAfter,
		ConfidenceLevel: req.ConfidenceLevel,
		FollowedPlan:    followedPlan,
		MistakeTags:     req.MistakeTags,
		Screenshots:     req.Screenshots,
	}

	if err := s.tradeRepo.Create(trade); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, userID)

	enriched := metrics.EnrichTradePnL(*trade)
	return &enriched, nil
}

// Get retrieves one enriched trade
func (s *TradeService) Get(userID, tradeID uint) (*models.Trade, error) {
	trade, err := s.tradeRepo.GetByIDAndUserID(tradeID, userID)
	if err != nil {
		return nil, err
	}
	enriched := metrics.EnrichTradePnL(*trade)
	return &enriched, nil
}

// List retrieves enriched trades matching the filter, paginated
func (s *TradeService) List(userID uint, filter repository.TradeFilter, page, pageSize int) ([]models.Trade, int64, error) {
	trades, total, err := s.tradeRepo.GetByUserIDPaginated(userID, filter, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return metrics.EnrichTradesPnL(trades), total, nil
}

// Update applies a partial update to a trade
func (s *TradeService) Update(ctx context.Context, userID, tradeID uint, req *UpdateTradeRequest) (*models.Trade, error) {
	trade, err := s.tradeRepo.GetByIDAndUserID(tradeID, userID)
	if err != nil {
		return nil, err
	}

	if req.TradeType != nil {
		tradeType, err := parseTradeType(*req.TradeType)
		if err != nil {
			return nil, err
		}
		trade.TradeType = tradeType
	}
	if req.Status != nil {
		status, err := parseTradeStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		trade.Status = status
	}
	if req.Symbol != nil {
		trade.Symbol = *req.Symbol
	}
	if req.EntryPrice != nil {
		trade.EntryPrice = req.EntryPrice
	}
	if req.ExitPrice != nil {
		trade.ExitPrice = req.ExitPrice
	}
	if req.Quantity != nil {
		trade.Quantity = *req.Quantity
	}
	if req.PointValue != nil {
		trade.PointValue = *req.PointValue
	}
	if req.Fees != nil {
		trade.Fees = *req.Fees
	}
	if req.EntryDate != nil {
		trade.EntryDate = req.EntryDate
	}
	if req.ExitDate != nil {
		trade.ExitDate = req.ExitDate
	}
	if req.StrategyID != nil {
		trade.StrategyID = req.StrategyID
	}
	if req.Setup != nil {
		trade.Setup = *req.Setup
	}
	if req.Notes != nil {
		trade.Notes = *req.Notes
	}
	if req.EmotionBefore != nil {
		trade.EmotionBefore = *req.EmotionBefore
	}
	if req.EmotionAfter != nil {
		trade.EmotionAfter = *req.EmotionAfter
	}
	if req.ConfidenceLevel != nil {
		trade.ConfidenceLevel = *req.ConfidenceLevel
	}
	if req.FollowedPlan != nil {
		trade.FollowedPlan = *req.FollowedPlan
	}
	if req.MistakeTags != nil {
		trade.MistakeTags = req.MistakeTags
	}
	if req.Screenshots != nil {
		trade.Screenshots = req.Screenshots
	}

	if err := s.tradeRepo.Update(trade); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, userID)

	enriched := metrics.EnrichTradePnL(*trade)
	return &enriched, nil
}

// Close closes an open trade with the given exit price and date
func (s *TradeService) Close(ctx context.Context, userID, tradeID uint, req *CloseTradeRequest) (*models.Trade, error) {
	trade, err := s.tradeRepo.GetByIDAndUserID(tradeID, userID)
	if err != nil {
		return nil, err
	}
	if trade.Status == models.TradeStatusClosed {
		return nil, ErrTradeAlreadyClosed
	}

	exitDate := time.Now()
	if req.ExitDate != nil {
		exitDate = *req.ExitDate
	}
	trade.Status = models.TradeStatusClosed
	trade.ExitPrice = &req.ExitPrice
	trade.ExitDate = &exitDate
	if req.Fees != nil {
		trade.Fees = *req.Fees
	}

	if err := s.tradeRepo.Update(trade); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, userID)

	enriched := metrics.EnrichTradePnL(*trade)
	return &enriched, nil
}

// Delete soft deletes a trade
func (s *TradeService) Delete(ctx context.Context, userID, tradeID uint) error {
	if err := s.tradeRepo.Delete(tradeID, userID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, userID)
	return nil
}

// BulkCreate inserts a batch of trades, used by the CSV importer
func (s *TradeService) BulkCreate(ctx context.Context, userID uint, trades []models.Trade) ([]models.Trade, error) {
	for i := range trades {
		trades[i].UserID = userID
		if trades[i].PointValue == 0 {
			trades[i].PointValue = 1
		}
	}
	if err := s.tradeRepo.BulkCreate(trades); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, userID)
	return metrics.EnrichTradesPnL(trades), nil
}

func parseTradeType(value string) (models.TradeType, error) {
	switch models.TradeType(value) {
	case models.TradeTypeLong, models.TradeTypeShort:
		return models.TradeType(value), nil
	default:
		return "", ErrInvalidTradeType
	}
}

func parseTradeStatus(value string) (models.TradeStatus, error) {
	switch models.TradeStatus(value) {
	case models.TradeStatusOpen, models.TradeStatusClosed:
		return models.TradeStatus(value), nil
	default:
		return "", ErrInvalidTradeStatus
	}
}
