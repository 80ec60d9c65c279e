package layout

import (
	"github.com/google/uuid"

	"github.com/trade-journal/internal/models"
)

// StackChildren returns a container's children ordered by slot
func StackChildren(widgets models.WidgetList, containerID string) []models.Widget {
	children := make([]models.Widget, 0, MaxStackChildren)
	for slot := 0; slot < MaxStackChildren; slot++ {
		for i := range widgets {
			if widgets[i].ParentID == containerID && widgets[i].Slot == slot {
				children = append(children, widgets[i])
				break
			}
		}
	}
	return children
}

// AddToStack parks a widget of the given type into the first free slot
// of a stacked container. An existing hidden widget of that type is
// reused so its settings carry over; otherwise a fresh one is created.
// No-ops: unknown container, full container, non-stackable type (which
// rules out nesting another container), or a type already visible.
func AddToStack(widgets models.WidgetList, containerID string, widgetType models.WidgetType) models.WidgetList {
	if !isStackContainer(widgets, containerID) {
		return widgets
	}
	desc, ok := Lookup(widgetType)
	if !ok || !desc.Stackable {
		return widgets
	}
	if hasVisible(widgets, widgetType) {
		return widgets
	}
	slot, ok := freeSlot(widgets, containerID)
	if !ok {
		return widgets
	}

	updated := clone(widgets)
	for i := range updated {
		if updated[i].Type == widgetType && !updated[i].Visible && updated[i].ParentID == "" {
			updated[i].Visible = true
			updated[i].ParentID = containerID
			updated[i].Slot = slot
			return updated
		}
	}
	updated = append(updated, models.Widget{
		ID:       uuid.New().String(),
		Type:     widgetType,
		Visible:  true,
		W:        desc.DefaultSize.W,
		H:        desc.DefaultSize.H,
		ParentID: containerID,
		Slot:     slot,
	})
	return updated
}

// RemoveFromStack releases a child from its container. The child
// becomes a standalone hidden widget, the same state Remove leaves a
// grid widget in, so it can be re-added later.
func RemoveFromStack(widgets models.WidgetList, containerID, childID string) models.WidgetList {
	updated := clone(widgets)
	for i := range updated {
		if updated[i].ID == childID && updated[i].ParentID == containerID {
			updated[i].ParentID = ""
			updated[i].Slot = 0
			updated[i].Visible = false
			break
		}
	}
	return updated
}

// ReorderStack reassigns a container's children to slots in the order
// given. Ids that are not children of the container are skipped; children
// missing from the list keep their relative order after the listed ones.
func ReorderStack(widgets models.WidgetList, containerID string, orderedIDs []string) models.WidgetList {
	updated := clone(widgets)

	slot := 0
	assigned := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		for i := range updated {
			if updated[i].ID == id && updated[i].ParentID == containerID {
				updated[i].Slot = slot
				assigned[id] = true
				slot++
				break
			}
		}
	}
	for _, child := range StackChildren(widgets, containerID) {
		if assigned[child.ID] {
			continue
		}
		for i := range updated {
			if updated[i].ID == child.ID {
				updated[i].Slot = slot
				slot++
				break
			}
		}
	}
	return updated
}

func isStackContainer(widgets models.WidgetList, containerID string) bool {
	for i := range widgets {
		if widgets[i].ID == containerID {
			return widgets[i].Type == models.WidgetStacked && widgets[i].Visible
		}
	}
	return false
}

func freeSlot(widgets models.WidgetList, containerID string) (int, bool) {
	used := make(map[int]bool, MaxStackChildren)
	for i := range widgets {
		if widgets[i].ParentID == containerID {
			used[widgets[i].Slot] = true
		}
	}
	for slot := 0; slot < MaxStackChildren; slot++ {
		if !used[slot] {
			return slot, true
		}
	}
	return 0, false
}
