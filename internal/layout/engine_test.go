package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trade-journal/internal/layout"
	"github.com/trade-journal/internal/models"
)

func findWidget(widgets models.WidgetList, id string) *models.Widget {
	for i := range widgets {
		if widgets[i].ID == id {
			return &widgets[i]
		}
	}
	return nil
}

func findByType(widgets models.WidgetList, t models.WidgetType) *models.Widget {
	for i := range widgets {
		if widgets[i].Type == t {
			return &widgets[i]
		}
	}
	return nil
}

// assertNoOverlaps fails if any two visible grid widgets share a cell
func assertNoOverlaps(t *testing.T, widgets models.WidgetList) {
	t.Helper()
	for i := range widgets {
		a := &widgets[i]
		if !a.Visible || a.ParentID != "" {
			continue
		}
		assert.LessOrEqual(t, a.X+a.W, layout.GridColumns, "Widget %s should fit inside the grid", a.ID)
		for j := i + 1; j < len(widgets); j++ {
			b := &widgets[j]
			if !b.Visible || b.ParentID != "" {
				continue
			}
			overlap := a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
			assert.False(t, overlap, "Widgets %s and %s should not overlap", a.ID, b.ID)
		}
	}
}

// TestDefaultLayout tests the starter layout's contents and geometry
func TestDefaultLayout(t *testing.T) {
	widgets := layout.Default()

	require.Len(t, widgets, 8)
	assertNoOverlaps(t, widgets)

	for _, w := range widgets {
		assert.True(t, w.Visible, "Default widgets should all be visible")
		assert.NotEmpty(t, w.ID, "Default widgets should have generated ids")
		assert.True(t, layout.ValidSize(w.Type, w.W, w.H), "Default size of %s should be allowed", w.Type)
	}

	// Compacting the default layout should not move anything
	compacted := layout.Compact(widgets)
	assert.Equal(t, widgets, compacted, "Default layout should already be compact")
}

// TestAddWidget tests adding a widget at its default size in a free slot
func TestAddWidget(t *testing.T) {
	widgets := layout.Default()

	updated := layout.Add(widgets, models.WidgetDailyPnL)
	require.Len(t, updated, 9)
	assertNoOverlaps(t, updated)

	added := findByType(updated, models.WidgetDailyPnL)
	require.NotNil(t, added)
	assert.True(t, added.Visible)
	assert.Equal(t, 2, added.W, "New widget should get its default width")
	assert.Equal(t, 2, added.H, "New widget should get its default height")
}

// TestAddWidgetSingleInstance tests that a second visible instance is refused
func TestAddWidgetSingleInstance(t *testing.T) {
	widgets := layout.Default()

	updated := layout.Add(widgets, models.WidgetTotalPnL)
	assert.Len(t, updated, len(widgets), "Adding an already-visible type should be a no-op")
}

// TestAddWidgetUnknownType tests that unregistered types are ignored
func TestAddWidgetUnknownType(t *testing.T) {
	widgets := layout.Default()

	updated := layout.Add(widgets, models.WidgetType("sparkline"))
	assert.Equal(t, widgets, updated)
}

// TestAddStackedContainerTwice tests that containers allow multiple instances
func TestAddStackedContainerTwice(t *testing.T) {
	widgets := layout.Add(layout.Default(), models.WidgetStacked)
	widgets = layout.Add(widgets, models.WidgetStacked)

	count := 0
	for _, w := range widgets {
		if w.Type == models.WidgetStacked && w.Visible {
			count++
		}
	}
	assert.Equal(t, 2, count, "Stacked containers are multi-instance")
	assertNoOverlaps(t, widgets)
}

// TestToggleVisibilityRoundTrip tests that hiding and re-showing a widget restores it
func TestToggleVisibilityRoundTrip(t *testing.T) {
	widgets := layout.Default()
	calendar := findByType(widgets, models.WidgetCalendar)
	require.NotNil(t, calendar)
	originalY := calendar.Y

	hidden := layout.ToggleVisibility(widgets, calendar.ID)
	hiddenCalendar := findWidget(hidden, calendar.ID)
	require.NotNil(t, hiddenCalendar, "Toggle should keep the widget in the list")
	assert.False(t, hiddenCalendar.Visible)

	shown := layout.ToggleVisibility(hidden, calendar.ID)
	shownCalendar := findWidget(shown, calendar.ID)
	require.NotNil(t, shownCalendar)
	assert.True(t, shownCalendar.Visible)
	assert.Equal(t, originalY, shownCalendar.Y, "Bottom-row widget should return to its row")
	assertNoOverlaps(t, shown)
}

// TestToggleVisibilityUnknownID tests that unknown ids change nothing
func TestToggleVisibilityUnknownID(t *testing.T) {
	widgets := layout.Default()

	updated := layout.ToggleVisibility(widgets, "no-such-widget")
	assert.Equal(t, widgets, updated)
}

// TestRemoveKeepsWidget tests soft removal
func TestRemoveKeepsWidget(t *testing.T) {
	widgets := layout.Default()
	equity := findByType(widgets, models.WidgetEquityCurve)
	require.NotNil(t, equity)

	updated := layout.Remove(widgets, equity.ID)
	assert.Len(t, updated, len(widgets), "Remove should hide, not delete")

	removed := findWidget(updated, equity.ID)
	require.NotNil(t, removed)
	assert.False(t, removed.Visible)
	assertNoOverlaps(t, updated)
}

// TestRemoveCompactsBelow tests that widgets below a removed one float up
func TestRemoveCompactsBelow(t *testing.T) {
	widgets := layout.Default()
	recent := findByType(widgets, models.WidgetRecentTrades)
	calendar := findByType(widgets, models.WidgetCalendar)
	require.NotNil(t, recent)
	require.NotNil(t, calendar)
	require.Greater(t, calendar.Y, recent.Y)

	updated := layout.Remove(widgets, recent.ID)
	moved := findWidget(updated, calendar.ID)
	require.NotNil(t, moved)
	assert.Less(t, moved.Y, calendar.Y, "Calendar should float up into the freed rows")
	assertNoOverlaps(t, updated)
}

// TestResizeValid tests applying an allowed footprint
func TestResizeValid(t *testing.T) {
	widgets := layout.Default()
	totalPnL := findByType(widgets, models.WidgetTotalPnL)
	require.NotNil(t, totalPnL)

	updated := layout.Resize(widgets, totalPnL.ID, 2, 2)
	resized := findWidget(updated, totalPnL.ID)
	require.NotNil(t, resized)
	assert.Equal(t, 2, resized.W)
	assert.Equal(t, 2, resized.H)
	assertNoOverlaps(t, updated)
}

// TestResizeInvalidCoercesToDefault tests the fallback for disallowed sizes
func TestResizeInvalidCoercesToDefault(t *testing.T) {
	widgets := layout.Default()
	totalPnL := findByType(widgets, models.WidgetTotalPnL)
	require.NotNil(t, totalPnL)

	updated := layout.Resize(widgets, totalPnL.ID, 3, 7)
	resized := findWidget(updated, totalPnL.ID)
	require.NotNil(t, resized)
	assert.Equal(t, 1, resized.W, "Disallowed size should fall back to the default")
	assert.Equal(t, 1, resized.H)
}

// TestRepositionMovesWidget tests a drag placement batch
func TestRepositionMovesWidget(t *testing.T) {
	widgets := layout.Default()
	equity := findByType(widgets, models.WidgetEquityCurve)
	gauge := findByType(widgets, models.WidgetWinRateGauge)
	require.NotNil(t, equity)
	require.NotNil(t, gauge)

	// Swap the two charts on row 1
	updated := layout.Reposition(widgets, []layout.Placement{
		{ID: equity.ID, X: 2, Y: 1, W: 2, H: 2},
		{ID: gauge.ID, X: 0, Y: 1, W: 2, H: 2},
	})
	assertNoOverlaps(t, updated)

	movedEquity := findWidget(updated, equity.ID)
	movedGauge := findWidget(updated, gauge.ID)
	assert.Equal(t, 2, movedEquity.X)
	assert.Equal(t, 0, movedGauge.X)
}

// TestRepositionInvalidSizeKeepsFootprint tests that bad geometry keeps the old size
func TestRepositionInvalidSizeKeepsFootprint(t *testing.T) {
	widgets := layout.Default()
	calendar := findByType(widgets, models.WidgetCalendar)
	require.NotNil(t, calendar)

	updated := layout.Reposition(widgets, []layout.Placement{
		{ID: calendar.ID, X: 0, Y: calendar.Y, W: 1, H: 1},
	})
	moved := findWidget(updated, calendar.ID)
	require.NotNil(t, moved)
	assert.Equal(t, calendar.W, moved.W, "Disallowed size should keep the current footprint")
	assert.Equal(t, calendar.H, moved.H)
}

// TestCompactFloatsUp tests that a widget dropped far down settles against the top
func TestCompactFloatsUp(t *testing.T) {
	widgets := models.WidgetList{
		{ID: "a", Type: models.WidgetTotalPnL, Visible: true, X: 0, Y: 0, W: 1, H: 1},
		{ID: "b", Type: models.WidgetWinRate, Visible: true, X: 0, Y: 10, W: 1, H: 1},
	}

	compacted := layout.Compact(widgets)
	b := findWidget(compacted, "b")
	require.NotNil(t, b)
	assert.Equal(t, 1, b.Y, "Widget should float up to rest on the one above")
}

// TestCompactClampsToGrid tests that out-of-bounds x positions are pulled inside
func TestCompactClampsToGrid(t *testing.T) {
	widgets := models.WidgetList{
		{ID: "a", Type: models.WidgetEquityCurve, Visible: true, X: 3, Y: 0, W: 2, H: 2},
	}

	compacted := layout.Compact(widgets)
	a := findWidget(compacted, "a")
	require.NotNil(t, a)
	assert.Equal(t, 2, a.X, "Widget should be clamped inside the 4-column grid")
}

// TestCompactResolvesOverlap tests that overlapping inputs come out collision-free
func TestCompactResolvesOverlap(t *testing.T) {
	widgets := models.WidgetList{
		{ID: "a", Type: models.WidgetEquityCurve, Visible: true, X: 0, Y: 0, W: 2, H: 2},
		{ID: "b", Type: models.WidgetDailyPnL, Visible: true, X: 0, Y: 1, W: 2, H: 2},
	}

	compacted := layout.Compact(widgets)
	assertNoOverlaps(t, compacted)

	b := findWidget(compacted, "b")
	require.NotNil(t, b)
	assert.Equal(t, 2, b.Y, "Overlapping widget should be pushed below the settled one")
}

// TestNormalizeCoercesStoredSizes tests that stale stored footprints are repaired on load
func TestNormalizeCoercesStoredSizes(t *testing.T) {
	widgets := models.WidgetList{
		{ID: "a", Type: models.WidgetTotalPnL, Visible: true, X: 0, Y: 0, W: 3, H: 5},
		{ID: "b", Type: models.WidgetType("legacy"), Visible: true, X: 0, Y: 6, W: 9, H: 9},
	}

	normalized := layout.Normalize(widgets)

	a := findWidget(normalized, "a")
	require.NotNil(t, a)
	assert.Equal(t, 1, a.W, "Invalid stored size should be coerced to the default")
	assert.Equal(t, 1, a.H)

	b := findWidget(normalized, "b")
	require.NotNil(t, b)
	assert.Equal(t, 9, b.W, "Unknown types pass through untouched")
}

// TestAvailableTypes tests the add menu contents against the current layout
func TestAvailableTypes(t *testing.T) {
	available := layout.AvailableTypes(layout.Default())

	set := make(map[models.WidgetType]bool, len(available))
	for _, widgetType := range available {
		set[widgetType] = true
	}

	assert.False(t, set[models.WidgetTotalPnL], "Visible single-instance types should be unavailable")
	assert.False(t, set[models.WidgetCalendar])
	assert.True(t, set[models.WidgetDailyPnL], "Hidden types should be available")
	assert.True(t, set[models.WidgetStacked], "Multi-instance types are always available")
}
