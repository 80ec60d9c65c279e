package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/trade-journal/internal/middleware"
	"github.com/trade-journal/internal/repository"
	"github.com/trade-journal/internal/service"
	"github.com/trade-journal/pkg/response"
)

// JournalHandler handles journal entry API requests
type JournalHandler struct {
	journalService *service.JournalService
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(journalService *service.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// Create handles journal entry creation
// POST /api/v1/journal
func (h *JournalHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req service.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.journalService.Create(userID, &req)
	if err != nil {
		response.InternalError(c, "failed to create journal entry")
		return
	}

	response.Created(c, entry)
}

// List handles paginated journal listing
// GET /api/v1/journal?page=&page_size=
func (h *JournalHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, pageSize := parsePagination(c)

	entries, total, err := h.journalService.List(userID, page, pageSize)
	if err != nil {
		response.InternalError(c, "failed to list journal entries")
		return
	}

	response.SuccessPaginated(c, entries, total, page, pageSize)
}

// Get handles single journal entry retrieval
// GET /api/v1/journal/:id
func (h *JournalHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)

	entryID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid journal entry id")
		return
	}

	entry, err := h.journalService.Get(userID, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrJournalEntryNotFound) {
			response.NotFound(c, "journal entry not found")
			return
		}
		response.InternalError(c, "failed to get journal entry")
		return
	}

	response.Success(c, entry)
}

// Update handles partial journal entry updates
// PUT /api/v1/journal/:id
func (h *JournalHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)

	entryID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid journal entry id")
		return
	}

	var req service.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry, err := h.journalService.Update(userID, entryID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrJournalEntryNotFound) {
			response.NotFound(c, "journal entry not found")
			return
		}
		response.InternalError(c, "failed to update journal entry")
		return
	}

	response.Success(c, entry)
}

// Delete handles journal entry deletion
// DELETE /api/v1/journal/:id
func (h *JournalHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)

	entryID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid journal entry id")
		return
	}

	if err := h.journalService.Delete(userID, entryID); err != nil {
		if errors.Is(err, repository.ErrJournalEntryNotFound) {
			response.NotFound(c, "journal entry not found")
			return
		}
		response.InternalError(c, "failed to delete journal entry")
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// RegisterRoutes registers journal routes
func (h *JournalHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	journal := rg.Group("/journal", authMiddleware)
	{
		journal.POST("", h.Create)
		journal.GET("", h.List)
		journal.GET("/:id", h.Get)
		journal.PUT("/:id", h.Update)
		journal.DELETE("/:id", h.Delete)
	}
}
