package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bytebrief/bytebrief/internal/storage"
	"github.com/bytebrief/bytebrief/pkg/telemetry"
)

// UploadAPI serves the admin image upload endpoint
type UploadAPI struct {
	images *storage.ImageStore
}

// NewUploadAPI creates the upload handlers
func NewUploadAPI(images *storage.ImageStore) *UploadAPI {
	return &UploadAPI{images: images}
}

// Upload handles POST /admin/upload with a multipart "file" field
func (u *UploadAPI) Upload(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.admin.upload")
	defer span.End()

	if u.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if err := storage.ValidateImage(contentType, header.Size); err != nil {
		respondError(c, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	url, err := u.images.Upload(ctx, header.Filename, contentType, header.Size, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
