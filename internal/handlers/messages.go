package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Send a message
// @Description  Public contact form.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      models.Message  true  "Message"
// @Success      201   {object}  models.Message
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/messages [post]
func (h *Handler) createMessage(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	msg, err := h.services.Messages.Create(c.Request.Context(), body)
	if err != nil {
		h.respondServiceError(c, "message_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// @Summary      List messages
// @Tags         messages
// @Produce      json
// @Success      200  {array}   models.Message
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/messages [get]
// @Security     BearerAuth
func (h *Handler) listMessages(c *gin.Context) {
	msgs, err := h.services.Messages.List(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, "message_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// @Summary      Delete a message
// @Tags         messages
// @Produce      json
// @Param        id   path      string  true  "Message id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/messages/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteMessage(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Messages.Delete(c.Request.Context(), id); err != nil {
		h.respondServiceError(c, "message_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgDeleted})
}
