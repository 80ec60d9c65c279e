package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/trade-journal/internal/models"
)

var (
	ErrTradeNotFound = errors.New("trade not found")
)

// TradeFilter narrows trade queries to a status, symbol, strategy or
// exit-date window. Zero-valued fields are ignored.
type TradeFilter struct {
	Status     models.TradeStatus
	Symbol     string
	StrategyID *uint
	From       *time.Time
	To         *time.Time
}

// TradeRepository handles trade data access
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create creates a new trade
func (r *TradeRepository) Create(trade *models.Trade) error {
	return r.db.Create(trade).Error
}

// BulkCreate inserts a batch of trades in one statement
func (r *TradeRepository) BulkCreate(trades []models.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	return r.db.Create(&trades).Error
}

// GetByIDAndUserID retrieves a trade by ID scoped to its owner
func (r *TradeRepository) GetByIDAndUserID(id, userID uint) (*models.Trade, error) {
	var trade models.Trade
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&trade)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTradeNotFound
		}
		return nil, result.Error
	}
	return &trade, nil
}

// GetByUserID retrieves all trades for a user matching the filter,
// newest entry first
func (r *TradeRepository) GetByUserID(userID uint, filter TradeFilter) ([]models.Trade, error) {
	var trades []models.Trade
	result := r.applyFilter(r.db.Where("user_id = ?", userID), filter).
		Order("entry_date DESC NULLS LAST, id DESC").
		Find(&trades)
	return trades, result.Error
}

// GetByUserIDPaginated retrieves filtered trades with pagination
func (r *TradeRepository) GetByUserIDPaginated(userID uint, filter TradeFilter, page, pageSize int) ([]models.Trade, int64, error) {
	var trades []models.Trade
	var total int64

	base := r.applyFilter(r.db.Model(&models.Trade{}).Where("user_id = ?", userID), filter)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := r.applyFilter(r.db.Where("user_id = ?", userID), filter).
		Order("entry_date DESC NULLS LAST, id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&trades)

	return trades, total, result.Error
}

// GetClosedByUserID retrieves a user's closed trades with an exit date,
// oldest exit first, for aggregate statistics
func (r *TradeRepository) GetClosedByUserID(userID uint, filter TradeFilter) ([]models.Trade, error) {
	filter.Status = models.TradeStatusClosed
	var trades []models.Trade
	result := r.applyFilter(r.db.Where("user_id = ? AND exit_date IS NOT NULL", userID), filter).
		Order("exit_date ASC").
		Find(&trades)
	return trades, result.Error
}

// Update updates a trade
func (r *TradeRepository) Update(trade *models.Trade) error {
	return r.db.Save(trade).Error
}

// Delete soft deletes a trade scoped to its owner
func (r *TradeRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Trade{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTradeNotFound
	}
	return nil
}

// CountByUserID counts trades for a user
func (r *TradeRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Trade{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *TradeRepository) applyFilter(query *gorm.DB, filter TradeFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Symbol != "" {
		query = query.Where("symbol = ?", filter.Symbol)
	}
	if filter.StrategyID != nil {
		query = query.Where("strategy_id = ?", *filter.StrategyID)
	}
	if filter.From != nil {
		query = query.Where("exit_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("exit_date <= ?", *filter.To)
	}
	return query
}
