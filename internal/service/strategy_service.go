package service

import (
	"github.com/trade-journal/internal/models"
	"github.com/trade-journal/internal/repository"
)

// StrategyService handles strategy CRUD
type StrategyService struct {
	strategyRepo *repository.StrategyRepository
}

// NewStrategyService creates a new StrategyService
func NewStrategyService(strategyRepo *repository.StrategyRepository) *StrategyService {
	return &StrategyService{strategyRepo: strategyRepo}
}

// CreateStrategyRequest represents the strategy creation request
type CreateStrategyRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Rules       []string `json:"rules"`
}

// UpdateStrategyRequest represents a partial strategy update
type UpdateStrategyRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Rules       []string `json:"rules"`
	IsActive    *bool    `json:"is_active"`
}

// Create creates a strategy for a user
func (s *StrategyService) Create(userID uint, req *CreateStrategyRequest) (*models.Strategy, error) {
	strategy := &models.Strategy{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Rules:       req.Rules,
		IsActive:    true,
	}
	if err := s.strategyRepo.Create(strategy); err != nil {
		return nil, err
	}
	return strategy, nil
}

// Get retrieves one strategy
func (s *StrategyService) Get(userID, strategyID uint) (*models.Strategy, error) {
	return s.strategyRepo.GetByIDAndUserID(strategyID, userID)
}

// List retrieves all strategies for a user
func (s *StrategyService) List(userID uint) ([]models.Strategy, error) {
	return s.strategyRepo.GetByUserID(userID)
}

// Update applies a partial update to a strategy
func (s *StrategyService) Update(userID, strategyID uint, req *UpdateStrategyRequest) (*models.Strategy, error) {
	strategy, err := s.strategyRepo.GetByIDAndUserID(strategyID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		strategy.Name = *req.Name
	}
	if req.Description != nil {
		strategy.Description = *req.Description
	}
	if req.Rules != nil {
		strategy.Rules = req.Rules
	}
	if req.IsActive != nil {
		strategy.IsActive = *req.IsActive
	}

	if err := s.strategyRepo.Update(strategy); err != nil {
		return nil, err
	}
	return strategy, nil
}

// Delete soft deletes a strategy
func (s *StrategyService) Delete(userID, strategyID uint) error {
	return s.strategyRepo.Delete(strategyID, userID)
}
