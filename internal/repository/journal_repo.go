package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/trade-journal/internal/models"
)

var (
	ErrJournalEntryNotFound = errors.New("journal entry not found")
)

// JournalRepository handles journal entry data access
type JournalRepository struct {
	db *gorm.DB
}

// NewJournalRepository creates a new JournalRepository
func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Create creates a new journal entry
func (r *JournalRepository) Create(entry *models.JournalEntry) error {
	return r.db.Create(entry).Error
}

// GetByIDAndUserID retrieves a journal entry by ID scoped to its owner
func (r *JournalRepository) GetByIDAndUserID(id, userID uint) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	result := r.db.Where("id = ? AND user_id = ?", id, userID).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrJournalEntryNotFound
		}
		return nil, result.Error
	}
	return &entry, nil
}

// GetByUserIDPaginated retrieves journal entries newest first
func (r *JournalRepository) GetByUserIDPaginated(userID uint, page, pageSize int) ([]models.JournalEntry, int64, error) {
	var entries []models.JournalEntry
	var total int64

	if err := r.db.Model(&models.JournalEntry{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := r.db.Where("user_id = ?", userID).
		Order("date DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&entries)

	return entries, total, result.Error
}

// GetByDateRange retrieves journal entries within a date window
func (r *JournalRepository) GetByDateRange(userID uint, start, end time.Time) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	result := r.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").
		Find(&entries)
	return entries, result.Error
}

// Update updates a journal entry
func (r *JournalRepository) Update(entry *models.JournalEntry) error {
	return r.db.Save(entry).Error
}

// Delete soft deletes a journal entry scoped to its owner
func (r *JournalRepository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.JournalEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJournalEntryNotFound
	}
	return nil
}
