package layout

import (
	"sort"

	"github.com/trade-journal/internal/models"
)

// onGrid reports whether a widget occupies grid cells: visible and not
// parked inside a stacked container.
func onGrid(w *models.Widget) bool {
	return w.Visible && w.ParentID == ""
}

// overlaps reports whether two rectangles share any grid cell
func overlaps(ax, ay, aw, ah, bx, by, bw, bh int) bool {
	return ax < bx+bw && bx < ax+aw && ay < by+bh && by < ay+ah
}

// clampX keeps a widget inside the 4-column grid
func clampX(x, w int) int {
	if w > GridColumns {
		w = GridColumns
	}
	if x < 0 {
		x = 0
	}
	if x+w > GridColumns {
		x = GridColumns - w
	}
	return x
}

// Compact floats every grid widget upward until it rests on another
// widget or the top edge, scanning in reading order so widgets above are
// settled before the ones below them. The result is collision-free for
// any input, including overlapping drag deltas.
func Compact(widgets models.WidgetList) models.WidgetList {
	compacted := make(models.WidgetList, len(widgets))
	copy(compacted, widgets)

	// Indexes of grid widgets in reading order (top-left first)
	order := make([]int, 0, len(compacted))
	for i := range compacted {
		if onGrid(&compacted[i]) {
			compacted[i].X = clampX(compacted[i].X, compacted[i].W)
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		wa, wb := &compacted[order[a]], &compacted[order[b]]
		if wa.Y != wb.Y {
			return wa.Y < wb.Y
		}
		return wa.X < wb.X
	})

	placed := make([]int, 0, len(order))
	for _, idx := range order {
		w := &compacted[idx]
		w.Y = settleY(compacted, placed, w)
		placed = append(placed, idx)
	}
	return compacted
}

// settleY finds the smallest y at or above the widget's requested row
// where it does not collide with any already-placed widget.
func settleY(widgets models.WidgetList, placed []int, w *models.Widget) int {
	y := w.Y
	if y < 0 {
		y = 0
	}
	for {
		if collidesAt(widgets, placed, w, y) {
			// Blocked at this row: the requested spot overlaps a settled
			// widget, push down until free.
			y++
			continue
		}
		if y == 0 {
			return 0
		}
		// Try floating one row up; stop at the first obstruction
		if collidesAt(widgets, placed, w, y-1) {
			return y
		}
		y--
	}
}

func collidesAt(widgets models.WidgetList, placed []int, w *models.Widget, y int) bool {
	for _, idx := range placed {
		other := &widgets[idx]
		if other.ID == w.ID {
			continue
		}
		if overlaps(w.X, y, w.W, w.H, other.X, other.Y, other.W, other.H) {
			return true
		}
	}
	return false
}

// findFreePosition scans row-major for the first slot where a w×h widget
// fits without colliding with any grid widget.
func findFreePosition(widgets models.WidgetList, w, h int) (int, int) {
	for y := 0; ; y++ {
		for x := 0; x+w <= GridColumns; x++ {
			if !collidesAny(widgets, x, y, w, h) {
				return x, y
			}
		}
	}
}

func collidesAny(widgets models.WidgetList, x, y, w, h int) bool {
	for i := range widgets {
		other := &widgets[i]
		if !onGrid(other) {
			continue
		}
		if overlaps(x, y, w, h, other.X, other.Y, other.W, other.H) {
			return true
		}
	}
	return false
}
