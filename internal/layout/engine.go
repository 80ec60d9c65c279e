package layout

import (
	"github.com/google/uuid"

	"github.com/trade-journal/internal/models"
)

// Placement is one widget's geometry delta from a drag or resize
// interaction on the grid.
type Placement struct {
	ID string `json:"id" binding:"required"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
	W  int    `json:"w"`
	H  int    `json:"h"`
}

// ToggleVisibility flips a widget's visible flag, leaving all other
// fields untouched. Unknown ids are a no-op. A widget re-shown while
// parked in a stack stays in its slot.
func ToggleVisibility(widgets models.WidgetList, id string) models.WidgetList {
	updated := clone(widgets)
	for i := range updated {
		if updated[i].ID == id {
			updated[i].Visible = !updated[i].Visible
			break
		}
	}
	return Compact(updated)
}

// Remove hides a widget rather than deleting it, so its type, geometry
// and settings survive a later re-add. Removing a stacked container also
// releases its children back to standalone hidden widgets.
func Remove(widgets models.WidgetList, id string) models.WidgetList {
	updated := clone(widgets)
	for i := range updated {
		if updated[i].ID == id {
			updated[i].Visible = false
			if updated[i].Type == models.WidgetStacked {
				updated = releaseChildren(updated, id)
			}
			break
		}
	}
	return Compact(updated)
}

// Add creates a fresh widget of the given type at its default size, in
// the first free grid slot. Unknown types and non-multi-instance types
// that already have a visible widget are no-ops.
func Add(widgets models.WidgetList, widgetType models.WidgetType) models.WidgetList {
	desc, ok := Lookup(widgetType)
	if !ok {
		return widgets
	}
	if !desc.MultiInstance && hasVisible(widgets, widgetType) {
		return widgets
	}

	updated := clone(widgets)
	x, y := findFreePosition(updated, desc.DefaultSize.W, desc.DefaultSize.H)
	updated = append(updated, models.Widget{
		ID:      uuid.New().String(),
		Type:    widgetType,
		Visible: true,
		X:       x,
		Y:       y,
		W:       desc.DefaultSize.W,
		H:       desc.DefaultSize.H,
	})
	return Compact(updated)
}

// Resize applies (w, h) to a widget if the size is allowed for its type;
// anything else falls back to the type's default size. The layout stays
// usable rather than strict.
func Resize(widgets models.WidgetList, id string, w, h int) models.WidgetList {
	updated := clone(widgets)
	for i := range updated {
		if updated[i].ID != id {
			continue
		}
		desc, ok := Lookup(updated[i].Type)
		if !ok {
			break
		}
		if !ValidSize(updated[i].Type, w, h) {
			w, h = desc.DefaultSize.W, desc.DefaultSize.H
		}
		updated[i].W = w
		updated[i].H = h
		break
	}
	return Compact(updated)
}

// Reposition merges a batch of drag/resize placements into the layout.
// Geometry outside a widget type's allowed sizes keeps the widget's
// current footprint; positions are clamped to the grid and the whole
// arrangement is re-compacted.
func Reposition(widgets models.WidgetList, placements []Placement) models.WidgetList {
	updated := clone(widgets)
	for _, p := range placements {
		for i := range updated {
			if updated[i].ID != p.ID {
				continue
			}
			updated[i].X = p.X
			updated[i].Y = p.Y
			if ValidSize(updated[i].Type, p.W, p.H) {
				updated[i].W = p.W
				updated[i].H = p.H
			}
			break
		}
	}
	return Compact(updated)
}

// Normalize coerces any widget whose footprint is outside its type's
// allowed-size set back to the type's default, then re-compacts. Run on
// every layout load so stored layouts from older registry versions stay
// renderable. Unknown types pass through untouched.
func Normalize(widgets models.WidgetList) models.WidgetList {
	updated := clone(widgets)
	for i := range updated {
		desc, ok := Lookup(updated[i].Type)
		if !ok {
			continue
		}
		if !ValidSize(updated[i].Type, updated[i].W, updated[i].H) {
			updated[i].W = desc.DefaultSize.W
			updated[i].H = desc.DefaultSize.H
		}
	}
	return Compact(updated)
}

// AvailableTypes lists the widget types that Add would accept: every
// multi-instance type plus any type without a visible instance.
func AvailableTypes(widgets models.WidgetList) []models.WidgetType {
	available := make([]models.WidgetType, 0, len(registry))
	for _, desc := range Descriptors() {
		if desc.MultiInstance || !hasVisible(widgets, desc.Type) {
			available = append(available, desc.Type)
		}
	}
	return available
}

// Default returns the fixed starter layout: a KPI card row, equity chart
// and win-rate gauge, the recent trade list and the calendar.
func Default() models.WidgetList {
	place := func(t models.WidgetType, x, y, w, h int) models.Widget {
		return models.Widget{
			ID:      uuid.New().String(),
			Type:    t,
			Visible: true,
			X:       x,
			Y:       y,
			W:       w,
			H:       h,
		}
	}
	return models.WidgetList{
		place(models.WidgetTotalPnL, 0, 0, 1, 1),
		place(models.WidgetWinRate, 1, 0, 1, 1),
		place(models.WidgetProfitFactor, 2, 0, 1, 1),
		place(models.WidgetExpectancy, 3, 0, 1, 1),
		place(models.WidgetEquityCurve, 0, 1, 2, 2),
		place(models.WidgetWinRateGauge, 2, 1, 2, 2),
		place(models.WidgetRecentTrades, 0, 3, 4, 2),
		place(models.WidgetCalendar, 0, 5, 4, 2),
	}
}

func hasVisible(widgets models.WidgetList, widgetType models.WidgetType) bool {
	for i := range widgets {
		if widgets[i].Type == widgetType && widgets[i].Visible {
			return true
		}
	}
	return false
}

func releaseChildren(widgets models.WidgetList, containerID string) models.WidgetList {
	for i := range widgets {
		if widgets[i].ParentID == containerID {
			widgets[i].ParentID = ""
			widgets[i].Slot = 0
			widgets[i].Visible = false
		}
	}
	return widgets
}

func clone(widgets models.WidgetList) models.WidgetList {
	cloned := make(models.WidgetList, len(widgets))
	copy(cloned, widgets)
	return cloned
}
