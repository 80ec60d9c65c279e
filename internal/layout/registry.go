// Package layout owns the dashboard widget grid: a 4-column arrangement
// of typed panels with per-type size rules, collision-free placement and
// automatic vertical compaction. All functions are pure; persistence is
// the caller's concern.
package layout

import (
	"github.com/trade-journal/internal/models"
)

// GridColumns is the fixed width of the dashboard grid in cells
const GridColumns = 4

// MaxStackChildren is the slot count of a stacked container widget
const MaxStackChildren = 4

// Size is a widget footprint in grid cells
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Named sizes shared across widget descriptors
var (
	SizeSmall  = Size{W: 1, H: 1}
	SizeWide   = Size{W: 2, H: 1}
	SizeTall   = Size{W: 1, H: 2}
	SizeSquare = Size{W: 2, H: 2}
	SizeHalf   = Size{W: 4, H: 2}
	SizeFull   = Size{W: 4, H: 4}
)

// Descriptor declares the layout rules for one widget type
type Descriptor struct {
	Type          models.WidgetType `json:"type"`
	AllowedSizes  []Size            `json:"allowed_sizes"`
	DefaultSize   Size              `json:"default_size"`
	Stackable     bool              `json:"stackable"`
	MultiInstance bool              `json:"multi_instance"`
}

// kpiSizes are the footprints shared by all KPI card types
var kpiSizes = []Size{SizeSmall, SizeWide, SizeTall, SizeSquare}

// chartSizes are the footprints shared by chart widgets
var chartSizes = []Size{SizeSquare, SizeHalf, SizeFull}

// registry is the strategy table mapping each widget type to its rules.
// Only the stacked container allows multiple visible instances, and it
// is the only type that is never stackable itself.
var registry = map[models.WidgetType]Descriptor{
	models.WidgetTotalPnL:     {Type: models.WidgetTotalPnL, AllowedSizes: kpiSizes, DefaultSize: SizeSmall, Stackable: true},
	models.WidgetWinRate:      {Type: models.WidgetWinRate, AllowedSizes: kpiSizes, DefaultSize: SizeSmall, Stackable: true},
	models.WidgetProfitFactor: {Type: models.WidgetProfitFactor, AllowedSizes: kpiSizes, DefaultSize: SizeSmall, Stackable: true},
	models.WidgetExpectancy:   {Type: models.WidgetExpectancy, AllowedSizes: kpiSizes, DefaultSize: SizeSmall, Stackable: true},
	models.WidgetAvgWin:       {Type: models.WidgetAvgWin, AllowedSizes: kpiSizes, DefaultSize: SizeSmall, Stackable: true},
	models.WidgetAvgLoss:      {Type: models.WidgetAvgLoss, AllowedSizes: kpiSizes, DefaultSize: SizeSmall, Stackable: true},
	models.WidgetTradeCount:   {Type: models.WidgetTradeCount, AllowedSizes: kpiSizes, DefaultSize: SizeSmall, Stackable: true},
	models.WidgetBestWorstDay: {Type: models.WidgetBestWorstDay, AllowedSizes: kpiSizes, DefaultSize: SizeWide, Stackable: true},
	models.WidgetDrawdown:     {Type: models.WidgetDrawdown, AllowedSizes: kpiSizes, DefaultSize: SizeSmall, Stackable: true},

	models.WidgetEquityCurve:  {Type: models.WidgetEquityCurve, AllowedSizes: chartSizes, DefaultSize: SizeSquare},
	models.WidgetDailyPnL:     {Type: models.WidgetDailyPnL, AllowedSizes: chartSizes, DefaultSize: SizeSquare},
	models.WidgetDayOfWeek:    {Type: models.WidgetDayOfWeek, AllowedSizes: chartSizes, DefaultSize: SizeSquare},
	models.WidgetStrategyPnL:  {Type: models.WidgetStrategyPnL, AllowedSizes: chartSizes, DefaultSize: SizeSquare},
	models.WidgetWinRateGauge: {Type: models.WidgetWinRateGauge, AllowedSizes: []Size{SizeSmall, SizeSquare}, DefaultSize: SizeSquare},

	models.WidgetRecentTrades: {Type: models.WidgetRecentTrades, AllowedSizes: []Size{SizeSquare, SizeHalf, SizeFull}, DefaultSize: SizeHalf},
	models.WidgetOpenTrades:   {Type: models.WidgetOpenTrades, AllowedSizes: []Size{SizeSquare, SizeHalf}, DefaultSize: SizeSquare},
	models.WidgetCalendar:     {Type: models.WidgetCalendar, AllowedSizes: []Size{SizeHalf, SizeFull}, DefaultSize: SizeHalf},

	// The container footprint is fixed: one allowed size, no resizing
	models.WidgetStacked: {Type: models.WidgetStacked, AllowedSizes: []Size{SizeSquare}, DefaultSize: SizeSquare, MultiInstance: true},
}

// Lookup returns the descriptor for a widget type
func Lookup(widgetType models.WidgetType) (Descriptor, bool) {
	desc, ok := registry[widgetType]
	return desc, ok
}

// Descriptors returns all registered descriptors in stable type order
func Descriptors() []Descriptor {
	ordered := []models.WidgetType{
		models.WidgetTotalPnL, models.WidgetWinRate, models.WidgetProfitFactor,
		models.WidgetExpectancy, models.WidgetAvgWin, models.WidgetAvgLoss,
		models.WidgetTradeCount, models.WidgetBestWorstDay, models.WidgetDrawdown,
		models.WidgetEquityCurve, models.WidgetDailyPnL, models.WidgetDayOfWeek,
		models.WidgetStrategyPnL, models.WidgetWinRateGauge,
		models.WidgetRecentTrades, models.WidgetOpenTrades, models.WidgetCalendar,
		models.WidgetStacked,
	}
	descriptors := make([]Descriptor, 0, len(ordered))
	for _, t := range ordered {
		descriptors = append(descriptors, registry[t])
	}
	return descriptors
}

// ValidSize reports whether (w, h) is an allowed footprint for the type.
// Unknown types accept nothing.
func ValidSize(widgetType models.WidgetType, w, h int) bool {
	desc, ok := registry[widgetType]
	if !ok {
		return false
	}
	for _, size := range desc.AllowedSizes {
		if size.W == w && size.H == h {
			return true
		}
	}
	return false
}
