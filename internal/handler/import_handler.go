package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trade-journal/internal/middleware"
	"github.com/trade-journal/internal/repository"
	"github.com/trade-journal/internal/service"
	"github.com/trade-journal/pkg/response"
)

// maxImportBytes caps uploaded CSV size at 5MB
const maxImportBytes = 5 << 20

// ImportHandler handles CSV import API requests
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// Upload queues a CSV file for background import
// POST /api/v1/imports
func (h *ImportHandler) Upload(c *gin.Context) {
	userID := middleware.GetUserID(c)

	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file field")
		return
	}
	if header.Size > maxImportBytes {
		response.BadRequest(c, "file exceeds the import size limit")
		return
	}

	src, err := header.Open()
	if err != nil {
		response.InternalError(c, "failed to read file")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImportBytes))
	if err != nil {
		response.InternalError(c, "failed to read file")
		return
	}

	log, err := h.importService.Queue(userID, header.Filename, data)
	if err != nil {
		response.InternalError(c, "failed to queue import")
		return
	}

	response.Created(c, log)
}

// List returns a user's recent import logs
// GET /api/v1/imports?limit=
func (h *ImportHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	logs, err := h.importService.List(userID, limit)
	if err != nil {
		response.InternalError(c, "failed to list imports")
		return
	}

	response.Success(c, logs)
}

// Get returns one import log so clients can poll its status
// GET /api/v1/imports/:id
func (h *ImportHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)

	logID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "invalid import id")
		return
	}

	log, err := h.importService.Get(userID, logID)
	if err != nil {
		if errors.Is(err, repository.ErrImportLogNotFound) {
			response.NotFound(c, "import not found")
			return
		}
		response.InternalError(c, "failed to get import")
		return
	}

	response.Success(c, log)
}

// RegisterRoutes registers import routes
func (h *ImportHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	imports := rg.Group("/imports", authMiddleware)
	{
		imports.POST("", h.Upload)
		imports.GET("", h.List)
		imports.GET("/:id", h.Get)
	}
}
