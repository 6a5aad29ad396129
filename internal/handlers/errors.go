package handlers

import (
	"errors"
	"net/http"

	"portfolio_cms/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusSuccess = "success"

	msgDeleted = "Deleted successfully"

	errNotFound    = "Document not found"
	errServer      = "Server error"
	errNoRoute     = "Not found"
	errBadLogin    = "Invalid username or password"
	errInvalidBody = "invalid body: "

	errBodyTooLarge = "request body too large"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondServiceError maps service errors onto the uniform status codes:
// validation 400, missing 404, anything else 500 with the cause only logged.
func (h *Handler) respondServiceError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		if h.log != nil {
			h.log.Infow(logKey, append([]interface{}{"err", err}, kv...)...)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errServer, logKey, err, kv...)
	}
}
