package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/middleware"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/services"
)

// MediaHandlers serves image upload, download and deletion
type MediaHandlers struct {
	media  *services.MediaService
	logger *logrus.Logger
}

// NewMediaHandlers creates new media handlers
func NewMediaHandlers(media *services.MediaService, logger *logrus.Logger) *MediaHandlers {
	return &MediaHandlers{media: media, logger: logger}
}

// Upload handles POST /api/v1/{admin,umkm}/media (multipart form)
func (h *MediaHandlers) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	defer file.Close()

	position, _ := strconv.Atoi(c.DefaultPostForm("position", "0"))
	req := services.UploadRequest{
		Content:      file,
		OriginalName: fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		EntityType:   c.PostForm("entityType"),
		EntityID:     c.PostForm("entityId"),
		MediaType:    c.PostForm("mediaType"),
		Position:     position,
	}

	uploaded, err := h.media.Upload(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, uploaded)
}

// Download handles GET /api/v1/media/:id: streams the stored bytes
func (h *MediaHandlers) Download(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	file, reader, err := h.media.Open(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", "inline; filename=\""+file.OriginalName+"\"")
	c.DataFromReader(http.StatusOK, file.Size, file.MimeType, reader, nil)
}

// ListByEntity handles GET /api/v1/media?entityType=business&entityId=...
func (h *MediaHandlers) ListByEntity(c *gin.Context) {
	entityType := c.Query("entityType")
	entityID := c.Query("entityId")
	if entityType == "" || entityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entityType and entityId are required"})
		return
	}

	files, err := h.media.ListByEntity(c.Request.Context(), entityType, entityID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": files})
}

// Delete handles DELETE /api/v1/{admin,umkm}/media/:id
func (h *MediaHandlers) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.media.Delete(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "upload deleted"})
}
