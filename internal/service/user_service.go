package service

import (
	"github.com/trade-journal/internal/models"
	"github.com/trade-journal/internal/repository"
)

// UserService handles profile reads and preference updates. Preference
// writes touch only the columns present in the request, so a partial
// update can never clobber unrelated profile fields.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdatePreferencesRequest represents a partial preference update
type UpdatePreferencesRequest struct {
	Theme              *string  `json:"theme"`
	AccountSize        *float64 `json:"account_size"`
	RiskPerTrade       *float64 `json:"risk_per_trade"`
	MonthlyGoal        *float64 `json:"monthly_goal"`
	TradesTableColumns []string `json:"trades_table_columns"`
}

// Get retrieves a user profile
func (s *UserService) Get(userID uint) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdatePreferences applies a partial preference update and returns the
// refreshed profile
func (s *UserService) UpdatePreferences(userID uint, req *UpdatePreferencesRequest) (*models.User, error) {
	updates := make(map[string]interface{})
	if req.Theme != nil {
		updates["theme"] = *req.Theme
	}
	if req.AccountSize != nil {
		updates["account_size"] = *req.AccountSize
	}
	if req.RiskPerTrade != nil {
		updates["risk_per_trade"] = *req.RiskPerTrade
	}
	if req.MonthlyGoal != nil {
		updates["monthly_goal"] = *req.MonthlyGoal
	}
	if req.TradesTableColumns != nil {
		updates["trades_table_columns"] = models.StringList(req.TradesTableColumns)
	}

	if len(updates) > 0 {
		if err := s.userRepo.UpdatePreferences(userID, updates); err != nil {
			return nil, err
		}
	}
	return s.userRepo.GetByID(userID)
}
