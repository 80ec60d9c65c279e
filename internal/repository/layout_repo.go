package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/trade-journal/internal/models"
)

var (
	ErrLayoutNotFound = errors.New("dashboard layout not found")
	// ErrRevisionMismatch means another session saved the layout since
	// this one read it; the caller should re-fetch and retry.
	ErrRevisionMismatch = errors.New("layout revision mismatch")
)

// LayoutRepository owns the dashboard layout with a deliberately narrow
// contract: read one user's layout, write it back with a revision check.
// Keeping it apart from the user profile prevents unrelated profile
// updates from clobbering the widget arrangement.
type LayoutRepository struct {
	db *gorm.DB
}

// NewLayoutRepository creates a new LayoutRepository
func NewLayoutRepository(db *gorm.DB) *LayoutRepository {
	return &LayoutRepository{db: db}
}

// GetLayout retrieves a user's dashboard layout
func (r *LayoutRepository) GetLayout(userID uint) (*models.DashboardLayout, error) {
	var layout models.DashboardLayout
	result := r.db.Where("user_id = ?", userID).First(&layout)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrLayoutNotFound
		}
		return nil, result.Error
	}
	return &layout, nil
}

// SaveLayout writes a user's widget array as a versioned update. The
// write only lands if the stored revision still equals expectedRevision;
// otherwise ErrRevisionMismatch is returned and nothing changes. A user
// with no stored layout gets a fresh row at revision 1.
func (r *LayoutRepository) SaveLayout(userID uint, widgets models.WidgetList, expectedRevision int64) (*models.DashboardLayout, error) {
	result := r.db.Model(&models.DashboardLayout{}).
		Where("user_id = ? AND revision = ?", userID, expectedRevision).
		Updates(map[string]interface{}{
			"widgets":  widgets,
			"revision": expectedRevision + 1,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Either the row does not exist yet or the revision moved on
		if _, err := r.GetLayout(userID); err == nil {
			return nil, ErrRevisionMismatch
		} else if !errors.Is(err, ErrLayoutNotFound) {
			return nil, err
		}
		layout := &models.DashboardLayout{
			UserID:   userID,
			Widgets:  widgets,
			Revision: 1,
		}
		if err := r.db.Create(layout).Error; err != nil {
			return nil, err
		}
		return layout, nil
	}
	return r.GetLayout(userID)
}
