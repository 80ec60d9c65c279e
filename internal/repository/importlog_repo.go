package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/trade-journal/internal/models"
)

var (
	ErrImportLogNotFound = errors.New("import log not found")
)

// ImportLogRepository handles import log data access
type ImportLogRepository struct {
	db *gorm.DB
}

// NewImportLogRepository creates a new ImportLogRepository
func NewImportLogRepository(db *gorm.DB) *ImportLogRepository {
	return &ImportLogRepository{db: db}
}

// Create creates a new import log
func (r *ImportLogRepository) Create(log *models.ImportLog) error {
	return r.db.Create(log).Error
}

// GetByIDAndUserID retrieves an import log by ID scoped to its owner
func (r *ImportLogRepository) GetByIDAndUserID(id, userID uint) (*models.ImportLog, error) {
	var log models.ImportLog
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&log)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrImportLogNotFound
		}
		return nil, result.Error
	}
	return &log, nil
}

// GetByUserID retrieves a user's import logs, newest first
func (r *ImportLogRepository) GetByUserID(userID uint, limit int) ([]models.ImportLog, error) {
	var logs []models.ImportLog
	result := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs)
	return logs, result.Error
}

// GetPending retrieves queued imports for the worker, oldest first
func (r *ImportLogRepository) GetPending(limit int) ([]models.ImportLog, error) {
	var logs []models.ImportLog
	result := r.db.Where("status = ?", models.ImportStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&logs)
	return logs, result.Error
}

// Update updates an import log
func (r *ImportLogRepository) Update(log *models.ImportLog) error {
	return r.db.Save(log).Error
}

// MarkProcessing transitions a pending import to processing, returning
// false if another worker already claimed it
func (r *ImportLogRepository) MarkProcessing(id uint) (bool, error) {
	result := r.db.Model(&models.ImportLog{}).
		Where("id = ? AND status = ?", id, models.ImportStatusPending).
		Update("status", models.ImportStatusProcessing)
	return result.RowsAffected > 0, result.Error
}
