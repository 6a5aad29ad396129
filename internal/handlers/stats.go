package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Content statistics
// @Description  Document count per collection and the most recent activity.
// @Tags         activity
// @Produce      json
// @Success      200  {object}  models.ContentStats
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/stats [get]
// @Security     BearerAuth
func (h *Handler) getStats(c *gin.Context) {
	st, err := h.services.Stats.Snapshot(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errServer, "stats_snapshot_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
