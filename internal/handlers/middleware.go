package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// userIdMiddleware rejects requests without a valid "Authorization: Bearer <token>"
// header and stores the token's user id under "userId".
func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userId, err := h.services.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set("userId", userId)
	c.Next()
}

// queryTokenMiddleware lifts ?access_token= into the Authorization header when
// the header is absent.
func (h *Handler) queryTokenMiddleware(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		if tok := c.Query("access_token"); tok != "" {
			c.Request.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	c.Next()
}

// cors allows the configured frontend origin to call the API with a bearer token.
func (h *Handler) cors(c *gin.Context) {
	header := c.Writer.Header()
	header.Set("Access-Control-Allow-Origin", h.opts.CORSOrigin)
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	header.Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	if h.opts.CORSOrigin != "*" {
		header.Add("Vary", "Origin")
	}

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

// requestLogger writes one line per request once the handler chain has finished.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}
	status := c.Writer.Status()
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"latency", time.Since(start),
		"client_ip", c.ClientIP(),
	}
	if status >= http.StatusInternalServerError {
		h.log.Warnw("http_request", fields...)
		return
	}
	h.log.Infow("http_request", fields...)
}
