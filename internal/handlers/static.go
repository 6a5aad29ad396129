package handlers

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const indexFile = "index.html"

// staticOrNotFound serves the frontend build for non-API GETs and falls back to
// index.html so client-side routes survive a reload. API paths get a JSON 404.
func (h *Handler) staticOrNotFound(c *gin.Context) {
	reqPath := c.Request.URL.Path
	if h.opts.StaticDir == "" || reqPath == "/api" || strings.HasPrefix(reqPath, "/api/") ||
		(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
		c.JSON(http.StatusNotFound, gin.H{"error": errNoRoute})
		return
	}

	name := path.Clean("/" + reqPath)
	full := filepath.Join(h.opts.StaticDir, filepath.FromSlash(name))
	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		c.File(full)
		return
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		h.logAndJSONError(c, http.StatusInternalServerError, errServer, "static_stat_failed", err, "path", reqPath)
		return
	}

	c.File(filepath.Join(h.opts.StaticDir, indexFile))
}
