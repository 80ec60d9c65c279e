package service

import (
	"time"

	"github.com/trade-journal/internal/models"
	"github.com/trade-journal/internal/repository"
)

// JournalService handles journal entry CRUD
type JournalService struct {
	journalRepo *repository.JournalRepository
}

// NewJournalService creates a new JournalService
func NewJournalService(journalRepo *repository.JournalRepository) *JournalService {
	return &JournalService{journalRepo: journalRepo}
}

// CreateJournalRequest represents the journal entry creation request
type CreateJournalRequest struct {
	Date            time.Time `json:"date" binding:"required"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Mood            string    `json:"mood"`
	ConfidenceLevel int       `json:"confidence_level"`
	Lessons         string    `json:"lessons"`
	ImageURLs       []string  `json:"image_urls"`
}

// UpdateJournalRequest represents a partial journal entry update
type UpdateJournalRequest struct {
	Date            *time.Time `json:"date"`
	Title           *string    `json:"title"`
	Content         *string    `json:"content"`
	Mood            *string    `json:"mood"`
	ConfidenceLevel *int       `json:"confidence_level"`
	Lessons         *string    `json:"lessons"`
	ImageURLs       []string   `json:"image_urls"`
}

// Create creates a journal entry for a user
func (s *JournalService) Create(userID uint, req *CreateJournalRequest) (*models.JournalEntry, error) {
	entry := &models.JournalEntry{
		UserID:          userID,
		Date:            req.Date,
		Title:           req.Title,
		Content:         req.Content,
		Mood:            req.Mood,
		ConfidenceLevel: req.ConfidenceLevel,
		Lessons:         req.Lessons,
		ImageURLs:       req.ImageURLs,
	}
	if err := s.journalRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Get retrieves one journal entry
func (s *JournalService) Get(userID, entryID uint) (*models.JournalEntry, error) {
	return s.journalRepo.GetByIDAndUserID(entryID, userID)
}

// List retrieves journal entries, paginated, newest first
func (s *JournalService) List(userID uint, page, pageSize int) ([]models.JournalEntry, int64, error) {
	return s.journalRepo.GetByUserIDPaginated(userID, page, pageSize)
}

// Update applies a partial update to a journal entry
func (s *JournalService) Update(userID, entryID uint, req *UpdateJournalRequest) (*models.JournalEntry, error) {
	entry, err := s.journalRepo.GetByIDAndUserID(entryID, userID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		entry.Date = *req.Date
	}
	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.Content != nil {
		entry.Content = *req.Content
	}
	if req.Mood != nil {
		entry.Mood = *req.Mood
	}
	if req.ConfidenceLevel != nil {
		entry.ConfidenceLevel = *req.ConfidenceLevel
	}
	if req.Lessons != nil {
		entry.Lessons = *req.Lessons
	}
	if req.ImageURLs != nil {
		entry.ImageURLs = req.ImageURLs
	}

	if err := s.journalRepo.Update(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete soft deletes a journal entry
func (s *JournalService) Delete(userID, entryID uint) error {
	return s.journalRepo.Delete(entryID, userID)
}
