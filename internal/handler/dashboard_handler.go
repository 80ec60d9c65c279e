package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/trade-journal/internal/layout"
	"github.com/trade-journal/internal/middleware"
	"github.com/trade-journal/internal/models"
	"github.com/trade-journal/internal/repository"
	"github.com/trade-journal/internal/service"
	"github.com/trade-journal/pkg/response"
)

// DashboardHandler handles dashboard statistics and layout API requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
	streamService    *service.StreamService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService, streamService *service.StreamService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		streamService:    streamService,
	}
}

// GetStats handles aggregate statistics retrieval
// GET /api/v1/dashboard/stats?from=&to=&symbol=&strategy_id=
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID := middleware.GetUserID(c)

	filter, err := parseTradeFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), userID, service.StatsRequest{
		From:       filter.From,
		To:         filter.To,
		Symbol:     filter.Symbol,
		StrategyID: filter.StrategyID,
	})
	if err != nil {
		response.InternalError(c, "failed to compute statistics")
		return
	}

	response.Success(c, stats)
}

// GetLayout handles layout retrieval
// GET /api/v1/dashboard/layout
func (h *DashboardHandler) GetLayout(c *gin.Context) {
	userID := middleware.GetUserID(c)

	dashboardLayout, err := h.dashboardService.GetLayout(userID)
	if err != nil {
		response.InternalError(c, "failed to load layout")
		return
	}

	response.Success(c, dashboardLayout)
}

// SaveLayout handles a wholesale layout replacement
// PUT /api/v1/dashboard/layout
func (h *DashboardHandler) SaveLayout(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		Widgets  models.WidgetList `json:"widgets" binding:"required"`
		Revision int64             `json:"revision"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dashboardLayout, err := h.dashboardService.SaveLayout(userID, req.Widgets, req.Revision)
	if err != nil {
		h.handleLayoutError(c, userID, err)
		return
	}

	response.Success(c, dashboardLayout)
}

// AddWidget handles adding a widget
// POST /api/v1/dashboard/widgets
func (h *DashboardHandler) AddWidget(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		Type string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dashboardLayout, err := h.dashboardService.AddWidget(userID, models.WidgetType(req.Type))
	if err != nil {
		h.handleLayoutError(c, userID, err)
		return
	}

	response.Success(c, dashboardLayout)
}

// ToggleWidget handles flipping widget visibility
// POST /api/v1/dashboard/widgets/:widget_id/toggle
func (h *DashboardHandler) ToggleWidget(c *gin.Context) {
	userID := middleware.GetUserID(c)

	dashboardLayout, err := h.dashboardService.ToggleWidget(userID, c.Param("widget_id"))
	if err != nil {
		h.handleLayoutError(c, userID, err)
		return
	}

	response.Success(c, dashboardLayout)
}

// RemoveWidget handles hiding a widget
// DELETE /api/v1/dashboard/widgets/:widget_id
func (h *DashboardHandler) RemoveWidget(c *gin.Context) {
	userID := middleware.GetUserID(c)

	dashboardLayout, err := h.dashboardService.RemoveWidget(userID, c.Param("widget_id"))
	if err != nil {
		h.handleLayoutError(c, userID, err)
		return
	}

	response.Success(c, dashboardLayout)
}

// ResizeWidget handles widget resizing
// PUT /api/v1/dashboard/widgets/:widget_id/size
func (h *DashboardHandler) ResizeWidget(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		W int `json:"w" binding:"required,gt=0"`
		H int `json:"h" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dashboardLayout, err := h.dashboardService.ResizeWidget(userID, c.Param("widget_id"), req.W, req.H)
	if err != nil {
		h.handleLayoutError(c, userID, err)
		return
	}

	response.Success(c, dashboardLayout)
}

// RepositionWidgets handles a drag/resize placement batch
// PUT /api/v1/dashboard/widgets/positions
func (h *DashboardHandler) RepositionWidgets(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		Placements []layout.Placement `json:"placements" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dashboardLayout, err := h.dashboardService.RepositionWidgets(userID, req.Placements)
	if err != nil {
		h.handleLayoutError(c, userID, err)
		return
	}

	response.Success(c, dashboardLayout)
}

// ResetLayout handles resetting to the default layout
// POST /api/v1/dashboard/layout/reset
func (h *DashboardHandler) ResetLayout(c *gin.Context) {
	userID := middleware.GetUserID(c)

	dashboardLayout, err := h.dashboardService.ResetLayout(userID)
	if err != nil {
		h.handleLayoutError(c, userID, err)
		return
	}

	response.Success(c, dashboardLayout)
}

// AvailableWidgets lists the widget types the user can still add
// GET /api/v1/dashboard/widgets/available
func (h *DashboardHandler) AvailableWidgets(c *gin.Context) {
	userID := middleware.GetUserID(c)

	descriptors, err := h.dashboardService.AvailableWidgets(userID)
	if err != nil {
		response.InternalError(c, "failed to list widgets")
		return
	}

	response.Success(c, descriptors)
}

// AddToStack handles parking a widget in a stacked container
// POST /api/v1/dashboard/widgets/:widget_id/stack
func (h *DashboardHandler) AddToStack(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		Type string `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dashboardLayout, err := h.dashboardService.AddToStack(userID, c.Param("widget_id"), models.WidgetType(req.Type))
	if err != nil {
		h.handleLayoutError(c, userID, err)
		return
	}

	response.Success(c, dashboardLayout)
}

// RemoveFromStack handles releasing a stack child
// DELETE /api/v1/dashboard/widgets/:widget_id/stack/:child_id
func (h *DashboardHandler) RemoveFromStack(c *gin.Context) {
	userID := middleware.GetUserID(c)

	dashboardLayout, err := h.dashboardService.RemoveFromStack(userID, c.Param("widget_id"), c.Param("child_id"))
	if err != nil {
		h.handleLayoutError(c, userID, err)
		return
	}

	response.Success(c, dashboardLayout)
}

// ReorderStack handles reordering stack children
// PUT /api/v1/dashboard/widgets/:widget_id/stack
func (h *DashboardHandler) ReorderStack(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		Order []string `json:"order" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dashboardLayout, err := h.dashboardService.ReorderStack(userID, c.Param("widget_id"), req.Order)
	if err != nil {
		h.handleLayoutError(c, userID, err)
		return
	}

	response.Success(c, dashboardLayout)
}

// Stream upgrades to a WebSocket that pushes stats refresh hints
// GET /api/v1/dashboard/ws
func (h *DashboardHandler) Stream(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := h.streamService.Subscribe(c.Writer, c.Request, userID); err != nil {
		response.InternalError(c, "failed to open stream")
	}
}

// handleLayoutError maps layout persistence failures to API responses.
// A revision mismatch returns the server's current layout so the client
// can reconcile its stale optimistic state.
func (h *DashboardHandler) handleLayoutError(c *gin.Context, userID uint, err error) {
	if errors.Is(err, repository.ErrRevisionMismatch) {
		current, loadErr := h.dashboardService.GetLayout(userID)
		if loadErr != nil {
			response.InternalError(c, "failed to load layout")
			return
		}
		response.Conflict(c, "layout was changed by another session", current)
		return
	}
	response.InternalError(c, "failed to save layout")
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	dashboard := rg.Group("/dashboard", authMiddleware)
	{
		dashboard.GET("/stats", h.GetStats)
		dashboard.GET("/ws", h.Stream)

		dashboard.GET("/layout", h.GetLayout)
		dashboard.PUT("/layout", h.SaveLayout)
		dashboard.POST("/layout/reset", h.ResetLayout)

		dashboard.GET("/widgets/available", h.AvailableWidgets)
		dashboard.POST("/widgets", h.AddWidget)
		dashboard.PUT("/widgets/positions", h.RepositionWidgets)
		dashboard.POST("/widgets/:widget_id/toggle", h.ToggleWidget)
		dashboard.PUT("/widgets/:widget_id/size", h.ResizeWidget)
		dashboard.DELETE("/widgets/:widget_id", h.RemoveWidget)
		dashboard.POST("/widgets/:widget_id/stack", h.AddToStack)
		dashboard.PUT("/widgets/:widget_id/stack", h.ReorderStack)
		dashboard.DELETE("/widgets/:widget_id/stack/:child_id", h.RemoveFromStack)
	}
}
