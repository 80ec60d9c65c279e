package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/trade-journal/internal/service"
	"github.com/trade-journal/pkg/response"
)

// UploadHandler handles image upload API requests
type UploadHandler struct {
	uploadService *service.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload stores one image and returns its public URL
// POST /api/v1/uploads
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file field")
		return
	}

	url, err := h.uploadService.Save(header)
	if err != nil {
		if errors.Is(err, service.ErrFileTooLarge) || errors.Is(err, service.ErrUnsupportedFileType) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "failed to store file")
		return
	}

	response.Created(c, gin.H{"url": url})
}

// RegisterRoutes registers upload routes
func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	rg.POST("/uploads", authMiddleware, h.Upload)
}
