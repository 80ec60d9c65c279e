package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/trade-journal/internal/middleware"
	"github.com/trade-journal/internal/repository"
	"github.com/trade-journal/internal/service"
	"github.com/trade-journal/pkg/response"
)

// StrategyHandler handles strategy API requests
type StrategyHandler struct {
	strategyService *service.StrategyService
}

// NewStrategyHandler creates a new StrategyHandler
func NewStrategyHandler(strategyService *service.StrategyService) *StrategyHandler {
	return &StrategyHandler{strategyService: strategyService}
}

// Create handles strategy creation
// POST /api/v1/strategies
func (h *StrategyHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.CreateStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	strategy, err := h.strategyService.Create(userID, &req)
	if err != nil {
		response.InternalError(c, "failed to create strategy")
		return
	}

	response.Created(c, strategy)
}

// List handles strategy listing
// GET /api/v1/strategies
func (h *StrategyHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	strategies, err := h.strategyService.List(userID)
	if err != nil {
		response.InternalError(c, "failed to list strategies")
		return
	}

	response.Success(c, strategies)
}

// Get handles single strategy retrieval
// GET /api/v1/strategies/:id
func (h *StrategyHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)

	strategyID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid strategy id")
		return
	}

	strategy, err := h.strategyService.Get(userID, strategyID)
	if err != nil {
		if errors.Is(err, repository.ErrStrategyNotFound) {
			response.NotFound(c, "strategy not found")
			return
		}
		response.InternalError(c, "failed to get strategy")
		return
	}

	response.Success(c, strategy)
}

// Update handles partial strategy updates
// PUT /api/v1/strategies/:id
func (h *StrategyHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)

	strategyID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid strategy id")
		return
	}

	var req service.UpdateStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	strategy, err := h.strategyService.Update(userID, strategyID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrStrategyNotFound) {
			response.NotFound(c, "strategy not found")
			return
		}
		response.InternalError(c, "failed to update strategy")
		return
	}

	response.Success(c, strategy)
}

// Delete handles strategy deletion
// DELETE /api/v1/strategies/:id
func (h *StrategyHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)

	strategyID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid strategy id")
		return
	}

	if err := h.strategyService.Delete(userID, strategyID); err != nil {
		if errors.Is(err, repository.ErrStrategyNotFound) {
			response.NotFound(c, "strategy not found")
			return
		}
		response.InternalError(c, "failed to delete strategy")
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// RegisterRoutes registers strategy routes
func (h *StrategyHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	strategies := rg.Group("/strategies", authMiddleware)
	{
		strategies.POST("", h.Create)
		strategies.GET("", h.List)
		strategies.GET("/:id", h.Get)
		strategies.PUT("/:id", h.Update)
		strategies.DELETE("/:id", h.Delete)
	}
}
