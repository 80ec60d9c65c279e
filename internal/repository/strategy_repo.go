package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/trade-journal/internal/models"
)

var (
	ErrStrategyNotFound = errors.New("strategy not found")
)

// StrategyRepository handles strategy data access
type StrategyRepository struct {
	db *gorm.DB
}

// NewStrategyRepository creates a new StrategyRepository
func NewStrategyRepository(db *gorm.DB) *StrategyRepository {
	return &StrategyRepository{db: db}
}

// Create creates a new strategy
func (r *StrategyRepository) Create(strategy *models.Strategy) error {
	return r.db.Create(strategy).Error
}

// GetByIDAndUserID retrieves a strategy by ID scoped to its owner
func (r *StrategyRepository) GetByIDAndUserID(id, userID uint) (*models.Strategy, error) {
	var strategy models.Strategy
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&strategy)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStrategyNotFound
		}
		return nil, result.Error
	}
	return &strategy, nil
}

// GetByUserID retrieves all strategies for a user
func (r *StrategyRepository) GetByUserID(userID uint) ([]models.Strategy, error) {
	var strategies []models.Strategy
	result := r.db.Where("user_id = ?", userID).Order("name ASC").Find(&strategies)
	return strategies, result.Error
}

// Update updates a strategy
func (r *StrategyRepository) Update(strategy *models.Strategy) error {
	return r.db.Save(strategy).Error
}

// Delete soft deletes a strategy scoped to its owner
func (r *StrategyRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Strategy{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStrategyNotFound
	}
	return nil
}
