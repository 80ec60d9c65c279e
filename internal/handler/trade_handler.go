package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trade-journal/internal/middleware"
	"github.com/trade-journal/internal/models"
	"github.com/trade-journal/internal/repository"
	"github.com/trade-journal/internal/service"
	"github.com/trade-journal/pkg/response"
)

// TradeHandler handles trade API requests
type TradeHandler struct {
	tradeService *service.TradeService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradeService *service.TradeService) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// Create handles trade creation
// POST /api/v1/trades
func (h *TradeHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	trade, err := h.tradeService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTradeType) || errors.Is(err, service.ErrInvalidTradeStatus) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "failed to create trade")
		return
	}

	response.Created(c, trade)
}

// List handles filtered trade listing
// GET /api/v1/trades?status=&symbol=&strategy_id=&from=&to=&page=&page_size=
func (h *TradeHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	filter, err := parseTradeFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	page, pageSize := parsePagination(c)

	trades, total, err := h.tradeService.List(userID, filter, page, pageSize)
	if err != nil {
		response.InternalError(c, "failed to list trades")
		return
	}

	response.SuccessPaginated(c, trades, total, page, pageSize)
}

// Get handles single trade retrieval
// GET /api/v1/trades/:id
func (h *TradeHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)

	tradeID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid trade id")
		return
	}

	trade, err := h.tradeService.Get(userID, tradeID)
	if err != nil {
		if errors.Is(err, repository.ErrTradeNotFound) {
			response.NotFound(c, "trade not found")
			return
		}
		response.InternalError(c, "failed to get trade")
		return
	}

	response.Success(c, trade)
}

// Update handles partial trade updates
// PUT /api/v1/trades/:id
func (h *TradeHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)

	tradeID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid trade id")
		return
	}

	var req service.UpdateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	trade, err := h.tradeService.Update(c.Request.Context(), userID, tradeID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrTradeNotFound) {
			response.NotFound(c, "trade not found")
			return
		}
		if errors.Is(err, service.ErrInvalidTradeType) || errors.Is(err, service.ErrInvalidTradeStatus) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "failed to update trade")
		return
	}

	response.Success(c, trade)
}

// Close handles closing an open trade
// POST /api/v1/trades/:id/close
func (h *TradeHandler) Close(c *gin.Context) {
	userID := middleware.GetUserID(c)

	tradeID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid trade id")
		return
	}

	var req service.CloseTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	trade, err := h.tradeService.Close(c.Request.Context(), userID, tradeID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrTradeNotFound) {
			response.NotFound(c, "trade not found")
			return
		}
		if errors.Is(err, service.ErrTradeAlreadyClosed) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "failed to close trade")
		return
	}

	response.Success(c, trade)
}

// Delete handles trade deletion
// DELETE /api/v1/trades/:id
func (h *TradeHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)

	tradeID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid trade id")
		return
	}

	if err := h.tradeService.Delete(c.Request.Context(), userID, tradeID); err != nil {
		if errors.Is(err, repository.ErrTradeNotFound) {
			response.NotFound(c, "trade not found")
			return
		}
		response.InternalError(c, "failed to delete trade")
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// BulkCreate handles batch trade creation
// POST /api/v1/trades/bulk
func (h *TradeHandler) BulkCreate(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		Trades []service.CreateTradeRequest `json:"trades" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created := make([]models.Trade, 0, len(req.Trades))
	for i := range req.Trades {
		trade, err := h.tradeService.Create(c.Request.Context(), userID, &req.Trades[i])
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		created = append(created, *trade)
	}

	response.Created(c, created)
}

// RegisterRoutes registers trade routes
func (h *TradeHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	trades := rg.Group("/trades", authMiddleware)
	{
		trades.POST("", h.Create)
		trades.POST("/bulk", h.BulkCreate)
		trades.GET("", h.List)
		trades.GET("/:id", h.Get)
		trades.PUT("/:id", h.Update)
		trades.POST("/:id/close", h.Close)
		trades.DELETE("/:id", h.Delete)
	}
}

// parseTradeFilter reads the shared trade query parameters
func parseTradeFilter(c *gin.Context) (repository.TradeFilter, error) {
	var filter repository.TradeFilter

	if status := c.Query("status"); status != "" {
		switch models.TradeStatus(status) {
		case models.TradeStatusOpen, models.TradeStatusClosed:
			filter.Status = models.TradeStatus(status)
		default:
			return filter, errors.New("invalid status filter")
		}
	}
	filter.Symbol = c.Query("symbol")

	if raw := c.Query("strategy_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return filter, errors.New("invalid strategy_id filter")
		}
		strategyID := uint(id)
		filter.StrategyID = &strategyID
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return filter, errors.New("invalid from date, expected YYYY-MM-DD")
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return filter, errors.New("invalid to date, expected YYYY-MM-DD")
		}
		// Inclusive end of day
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &to
	}
	return filter, nil
}

// parsePagination reads page/page_size with sane bounds
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return page, pageSize
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
