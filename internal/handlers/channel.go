package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Channel profile with subscription counts
// @Tags         channel
// @Produce      json
// @Security     ApiKeyAuth
// @Param        username  path  string  true  "channel username"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiError
// @Router       /api/v1/channels/{username} [get]
func (h *Handler) channelProfile(c *gin.Context) {
	username := c.Param("username")
	profile, err := h.services.ChannelProfile(c.Request.Context(), username, currentUserID(c))
	if err != nil {
		h.fail(c, err, "channel_profile_failed", "username", username)
		return
	}
	respond(c, http.StatusOK, profile, "channel profile fetched")
}

// @Summary      Subscribe to or unsubscribe from a channel
// @Tags         channel
// @Produce      json
// @Security     ApiKeyAuth
// @Param        username  path  string  true  "channel username"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiError
// @Router       /api/v1/channels/{username}/subscribe [post]
func (h *Handler) toggleSubscription(c *gin.Context) {
	username := c.Param("username")
	subscribed, err := h.services.ToggleSubscription(c.Request.Context(), currentUserID(c), username)
	if err != nil {
		h.fail(c, err, "toggle_subscription_failed", "username", username)
		return
	}

	msg := "unsubscribed from channel"
	if subscribed {
		msg = "subscribed to channel"
	}
	respond(c, http.StatusOK, gin.H{"subscribed": subscribed}, msg)
}
