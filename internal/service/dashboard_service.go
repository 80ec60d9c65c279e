package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trade-journal/internal/layout"
	"github.com/trade-journal/internal/metrics"
	"github.com/trade-journal/internal/models"
	"github.com/trade-journal/internal/repository"
)

// DashboardService computes aggregate statistics and mediates every
// structural edit to the widget layout. Layout edits are applied through
// the layout engine and persisted as a versioned write; a concurrent
// save from another session surfaces as ErrRevisionMismatch.
type DashboardService struct {
	tradeRepo  *repository.TradeRepository
	layoutRepo *repository.LayoutRepository
	cache      *StatsCache
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	tradeRepo *repository.TradeRepository,
	layoutRepo *repository.LayoutRepository,
	cache *StatsCache,
) *DashboardService {
	return &DashboardService{
		tradeRepo:  tradeRepo,
		layoutRepo: layoutRepo,
		cache:      cache,
	}
}

// StatsRequest narrows the trade set feeding the aggregate computation
type StatsRequest struct {
	From       *time.Time
	To         *time.Time
	Symbol     string
	StrategyID *uint
}

// GetStats returns aggregate statistics over the user's closed trades,
// served from the Redis cache when the underlying trades are unchanged
func (s *DashboardService) GetStats(ctx context.Context, userID uint, req StatsRequest) (*metrics.Stats, error) {
	filterKey := statsFilterKey(req)
	if cached, ok := s.cache.Get(ctx, userID, filterKey); ok {
		return cached, nil
	}

	trades, err := s.tradeRepo.GetClosedByUserID(userID, repository.TradeFilter{
		Symbol:     req.Symbol,
		StrategyID: req.StrategyID,
		From:       req.From,
		To:         req.To,
	})
	if err != nil {
		return nil, err
	}

	stats := metrics.Summarize(trades)
	s.cache.Set(ctx, userID, filterKey, &stats)
	return &stats, nil
}

// GetLayout returns the user's dashboard layout, creating the default
// arrangement on first use. Stored footprints outside the current
// allowed-size sets are coerced back to defaults before rendering.
func (s *DashboardService) GetLayout(userID uint) (*models.DashboardLayout, error) {
	stored, err := s.layoutRepo.GetLayout(userID)
	if err == nil {
		stored.Widgets = layout.Normalize(stored.Widgets)
		return stored, nil
	}
	if !errors.Is(err, repository.ErrLayoutNotFound) {
		return nil, err
	}
	return s.layoutRepo.SaveLayout(userID, layout.Default(), 0)
}

// SaveLayout replaces the widget array wholesale at the given revision
func (s *DashboardService) SaveLayout(userID uint, widgets models.WidgetList, revision int64) (*models.DashboardLayout, error) {
	return s.layoutRepo.SaveLayout(userID, layout.Normalize(widgets), revision)
}

// AddWidget adds a widget of the given type. Unknown types and duplicate
// single-instance types leave the layout untouched (still persisted, so
// the revision advances and the caller gets a consistent echo).
func (s *DashboardService) AddWidget(userID uint, widgetType models.WidgetType) (*models.DashboardLayout, error) {
	return s.mutate(userID, func(widgets models.WidgetList) models.WidgetList {
		return layout.Add(widgets, widgetType)
	})
}

// ToggleWidget flips a widget's visibility
func (s *DashboardService) ToggleWidget(userID uint, widgetID string) (*models.DashboardLayout, error) {
	return s.mutate(userID, func(widgets models.WidgetList) models.WidgetList {
		return layout.ToggleVisibility(widgets, widgetID)
	})
}

// RemoveWidget hides a widget, keeping its settings for a later re-add
func (s *DashboardService) RemoveWidget(userID uint, widgetID string) (*models.DashboardLayout, error) {
	return s.mutate(userID, func(widgets models.WidgetList) models.WidgetList {
		return layout.Remove(widgets, widgetID)
	})
}

// ResizeWidget applies a validated resize, falling back to the type's
// default footprint for disallowed sizes
func (s *DashboardService) ResizeWidget(userID uint, widgetID string, w, h int) (*models.DashboardLayout, error) {
	return s.mutate(userID, func(widgets models.WidgetList) models.WidgetList {
		return layout.Resize(widgets, widgetID, w, h)
	})
}

// RepositionWidgets merges a drag/resize batch into the layout
func (s *DashboardService) RepositionWidgets(userID uint, placements []layout.Placement) (*models.DashboardLayout, error) {
	return s.mutate(userID, func(widgets models.WidgetList) models.WidgetList {
		return layout.Reposition(widgets, placements)
	})
}

// ResetLayout replaces the layout with the fixed default arrangement
func (s *DashboardService) ResetLayout(userID uint) (*models.DashboardLayout, error) {
	return s.mutate(userID, func(models.WidgetList) models.WidgetList {
		return layout.Default()
	})
}

// AddToStack parks a stackable widget into a container slot
func (s *DashboardService) AddToStack(userID uint, containerID string, widgetType models.WidgetType) (*models.DashboardLayout, error) {
	return s.mutate(userID, func(widgets models.WidgetList) models.WidgetList {
		return layout.AddToStack(widgets, containerID, widgetType)
	})
}

// RemoveFromStack releases a child widget from a container
func (s *DashboardService) RemoveFromStack(userID uint, containerID, childID string) (*models.DashboardLayout, error) {
	return s.mutate(userID, func(widgets models.WidgetList) models.WidgetList {
		return layout.RemoveFromStack(widgets, containerID, childID)
	})
}

// ReorderStack reassigns a container's children to the given slot order
func (s *DashboardService) ReorderStack(userID uint, containerID string, orderedIDs []string) (*models.DashboardLayout, error) {
	return s.mutate(userID, func(widgets models.WidgetList) models.WidgetList {
		return layout.ReorderStack(widgets, containerID, orderedIDs)
	})
}

// AvailableWidgets lists the descriptors a user can still add
func (s *DashboardService) AvailableWidgets(userID uint) ([]layout.Descriptor, error) {
	current, err := s.GetLayout(userID)
	if err != nil {
		return nil, err
	}
	available := layout.AvailableTypes(current.Widgets)
	descriptors := make([]layout.Descriptor, 0, len(available))
	for _, widgetType := range available {
		if desc, ok := layout.Lookup(widgetType); ok {
			descriptors = append(descriptors, desc)
		}
	}
	return descriptors, nil
}

// mutate loads the layout, applies an engine operation and persists the
// result against the loaded revision
func (s *DashboardService) mutate(userID uint, op func(models.WidgetList) models.WidgetList) (*models.DashboardLayout, error) {
	current, err := s.GetLayout(userID)
	if err != nil {
		return nil, err
	}
	return s.layoutRepo.SaveLayout(userID, op(current.Widgets), current.Revision)
}

func statsFilterKey(req StatsRequest) string {
	from, to := "", ""
	if req.From != nil {
		from = req.From.UTC().Format("2006-01-02")
	}
	if req.To != nil {
		to = req.To.UTC().Format("2006-01-02")
	}
	strategy := ""
	if req.StrategyID != nil {
		strategy = fmt.Sprintf("%d", *req.StrategyID)
	}
	return fmt.Sprintf("%s:%s:%s:%s", from, to, req.Symbol, strategy)
}
