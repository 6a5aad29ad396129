package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"portfolio_cms/internal/service"

	"github.com/gin-gonic/gin"
)

// maxBodyBytes bounds create/update payloads; articles carry whole markdown posts.
const maxBodyBytes = 4 << 20

// resourceHandler serves the list/get/create/update/delete contract for one collection.
type resourceHandler[P any] struct {
	h        *Handler
	name     string
	resource service.Resource[P]
}

// registerResource binds {base} and {base}/:id. Reads are public; writes require a token.
func registerResource[P any](h *Handler, rg *gin.RouterGroup, path string, res service.Resource[P]) {
	g := rg.Group(path)
	rh := &resourceHandler[P]{
		h:        h,
		name:     strings.TrimPrefix(g.BasePath(), "/api/"),
		resource: res,
	}

	g.GET("", rh.list)
	g.GET("/:id", rh.get)
	g.POST("", h.userIdMiddleware, rh.create)
	g.PUT("/:id", h.userIdMiddleware, rh.update)
	g.PATCH("/:id", h.userIdMiddleware, rh.update)
	g.DELETE("/:id", h.userIdMiddleware, rh.delete)
}

func (rh *resourceHandler[P]) list(c *gin.Context) {
	docs, err := rh.resource.List(c.Request.Context())
	if err != nil {
		rh.h.respondServiceError(c, "resource_list_failed", err, "resource", rh.name)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (rh *resourceHandler[P]) get(c *gin.Context) {
	id := c.Param("id")
	doc, err := rh.resource.Get(c.Request.Context(), id)
	if err != nil {
		rh.h.respondServiceError(c, "resource_get_failed", err, "resource", rh.name, "id", id)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (rh *resourceHandler[P]) create(c *gin.Context) {
	body, ok := rh.h.readBody(c)
	if !ok {
		return
	}
	doc, err := rh.resource.Create(c.Request.Context(), body)
	if err != nil {
		rh.h.respondServiceError(c, "resource_create_failed", err, "resource", rh.name)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (rh *resourceHandler[P]) update(c *gin.Context) {
	id := c.Param("id")
	body, ok := rh.h.readBody(c)
	if !ok {
		return
	}
	doc, err := rh.resource.Update(c.Request.Context(), id, body)
	if err != nil {
		rh.h.respondServiceError(c, "resource_update_failed", err, "resource", rh.name, "id", id)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (rh *resourceHandler[P]) delete(c *gin.Context) {
	id := c.Param("id")
	if err := rh.resource.Delete(c.Request.Context(), id); err != nil {
		rh.h.respondServiceError(c, "resource_delete_failed", err, "resource", rh.name, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgDeleted})
}

// readBody reads the raw request body; the service decodes and validates it.
// Returns false if the request was already handled.
func (h *Handler) readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		if h.log != nil {
			h.log.Infow("request_body_read_failed", "err", err, "path", c.FullPath())
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": errBodyTooLarge})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody + err.Error()})
		return nil, false
	}
	return body, true
}
