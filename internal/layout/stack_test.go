package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trade-journal/internal/layout"
	"github.com/trade-journal/internal/models"
)

// stackFixture is a layout with one visible stacked container and no KPI cards
func stackFixture() (models.WidgetList, string) {
	containerID := "container"
	return models.WidgetList{
		{ID: containerID, Type: models.WidgetStacked, Visible: true, X: 0, Y: 0, W: 2, H: 2},
	}, containerID
}

// TestAddToStack tests parking widgets into consecutive slots
func TestAddToStack(t *testing.T) {
	widgets, containerID := stackFixture()

	widgets = layout.AddToStack(widgets, containerID, models.WidgetTotalPnL)
	widgets = layout.AddToStack(widgets, containerID, models.WidgetWinRate)

	children := layout.StackChildren(widgets, containerID)
	require.Len(t, children, 2)
	assert.Equal(t, models.WidgetTotalPnL, children[0].Type)
	assert.Equal(t, 0, children[0].Slot)
	assert.Equal(t, models.WidgetWinRate, children[1].Type)
	assert.Equal(t, 1, children[1].Slot)

	for _, child := range children {
		assert.True(t, child.Visible)
		assert.Equal(t, containerID, child.ParentID)
	}
}

// TestAddToStackReusesHiddenWidget tests that a hidden widget of the type is adopted
func TestAddToStackReusesHiddenWidget(t *testing.T) {
	widgets, containerID := stackFixture()
	widgets = append(widgets, models.Widget{
		ID: "hidden-pnl", Type: models.WidgetTotalPnL, Visible: false, W: 2, H: 2,
	})

	updated := layout.AddToStack(widgets, containerID, models.WidgetTotalPnL)
	assert.Len(t, updated, len(widgets), "Hidden widget should be reused, not duplicated")

	children := layout.StackChildren(updated, containerID)
	require.Len(t, children, 1)
	assert.Equal(t, "hidden-pnl", children[0].ID)
	assert.Equal(t, 2, children[0].W, "Reused widget keeps its settings")
}

// TestAddToStackLimits tests the no-op conditions
func TestAddToStackLimits(t *testing.T) {
	widgets, containerID := stackFixture()

	t.Run("full container", func(t *testing.T) {
		full := widgets
		for _, wt := range []models.WidgetType{
			models.WidgetTotalPnL, models.WidgetWinRate,
			models.WidgetProfitFactor, models.WidgetExpectancy,
		} {
			full = layout.AddToStack(full, containerID, wt)
		}
		require.Len(t, layout.StackChildren(full, containerID), layout.MaxStackChildren)

		updated := layout.AddToStack(full, containerID, models.WidgetAvgWin)
		assert.Equal(t, full, updated, "A full container should refuse more children")
	})

	t.Run("non-stackable type", func(t *testing.T) {
		updated := layout.AddToStack(widgets, containerID, models.WidgetEquityCurve)
		assert.Equal(t, widgets, updated, "Charts cannot be stacked")
	})

	t.Run("no container nesting", func(t *testing.T) {
		updated := layout.AddToStack(widgets, containerID, models.WidgetStacked)
		assert.Equal(t, widgets, updated, "A container cannot hold another container")
	})

	t.Run("unknown container", func(t *testing.T) {
		updated := layout.AddToStack(widgets, "nope", models.WidgetTotalPnL)
		assert.Equal(t, widgets, updated)
	})

	t.Run("type already visible", func(t *testing.T) {
		withVisible := append(layout.Default(), widgets...)
		updated := layout.AddToStack(withVisible, containerID, models.WidgetTotalPnL)
		assert.Equal(t, withVisible, updated, "A visible type cannot also appear in a stack")
	})
}

// TestRemoveFromStack tests releasing a child back to a hidden standalone widget
func TestRemoveFromStack(t *testing.T) {
	widgets, containerID := stackFixture()
	widgets = layout.AddToStack(widgets, containerID, models.WidgetTotalPnL)
	child := layout.StackChildren(widgets, containerID)[0]

	updated := layout.RemoveFromStack(widgets, containerID, child.ID)
	assert.Empty(t, layout.StackChildren(updated, containerID))

	released := findWidget(updated, child.ID)
	require.NotNil(t, released)
	assert.False(t, released.Visible, "Released child becomes hidden")
	assert.Empty(t, released.ParentID)
}

// TestReorderStack tests slot reassignment
func TestReorderStack(t *testing.T) {
	widgets, containerID := stackFixture()
	widgets = layout.AddToStack(widgets, containerID, models.WidgetTotalPnL)
	widgets = layout.AddToStack(widgets, containerID, models.WidgetWinRate)
	widgets = layout.AddToStack(widgets, containerID, models.WidgetExpectancy)

	children := layout.StackChildren(widgets, containerID)
	require.Len(t, children, 3)

	// Move the last child to the front, leave the others unlisted
	updated := layout.ReorderStack(widgets, containerID, []string{children[2].ID})

	reordered := layout.StackChildren(updated, containerID)
	require.Len(t, reordered, 3)
	assert.Equal(t, children[2].ID, reordered[0].ID)
	assert.Equal(t, children[0].ID, reordered[1].ID, "Unlisted children keep their relative order")
	assert.Equal(t, children[1].ID, reordered[2].ID)
}

// TestRemoveContainerReleasesChildren tests that removing a container frees its children
func TestRemoveContainerReleasesChildren(t *testing.T) {
	widgets, containerID := stackFixture()
	widgets = layout.AddToStack(widgets, containerID, models.WidgetTotalPnL)
	widgets = layout.AddToStack(widgets, containerID, models.WidgetWinRate)

	updated := layout.Remove(widgets, containerID)

	container := findWidget(updated, containerID)
	require.NotNil(t, container)
	assert.False(t, container.Visible)
	assert.Empty(t, layout.StackChildren(updated, containerID))

	for _, w := range updated {
		if w.ID == containerID {
			continue
		}
		assert.False(t, w.Visible, "Released children should be hidden, not floating on the grid")
		assert.Empty(t, w.ParentID)
	}
}

// TestStackChildrenNotOnGrid tests that parked children never join grid compaction
func TestStackChildrenNotOnGrid(t *testing.T) {
	widgets, containerID := stackFixture()
	widgets = append(widgets, models.Widget{
		ID: "grid-kpi", Type: models.WidgetAvgWin, Visible: true, X: 2, Y: 0, W: 1, H: 1,
	})
	widgets = layout.AddToStack(widgets, containerID, models.WidgetTotalPnL)

	compacted := layout.Compact(widgets)
	assertNoOverlaps(t, compacted)

	child := layout.StackChildren(compacted, containerID)[0]
	assert.Equal(t, containerID, child.ParentID, "Compaction must not pull children out of their stack")
}
