package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bytebrief/bytebrief/internal/admin"
	"github.com/bytebrief/bytebrief/internal/storage"
	"github.com/bytebrief/bytebrief/pkg/logging"
)

// respondError maps service errors onto the HTTP taxonomy: validation
// and conflict errors carry their message, not-found maps to 404, and
// anything unexpected is logged server-side with a generic body.
func respondError(c *gin.Context, err error) {
	var verr *admin.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": verr.Message,
			"field": verr.Field,
		})
	case errors.Is(err, admin.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, admin.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrTooLarge), errors.Is(err, storage.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logging.WithComponent("api").Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
