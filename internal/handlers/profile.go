package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Get profile
// @Description  Returns the singleton profile; data is null until the first update.
// @Tags         profile
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, data"
// @Failure      500  {object}  map[string]string
// @Router       /api/profile [get]
func (h *Handler) getProfile(c *gin.Context) {
	p, err := h.services.Profile.GetSingleton(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errServer, "profile_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSuccess, "data": p})
}

// @Summary      Update profile
// @Description  Merges the given fields into the profile, creating it with defaults on first write.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      models.Profile  true  "Partial profile"
// @Success      200   {object}  map[string]interface{}  "status, data"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/profile [patch]
// @Security     BearerAuth
func (h *Handler) updateProfile(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	p, err := h.services.Profile.UpsertSingleton(c.Request.Context(), body)
	if err != nil {
		h.respondServiceError(c, "profile_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSuccess, "data": p})
}
