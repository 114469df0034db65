package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vidtube/internal/apperr"
)

// @Summary      Watch history, newest first
// @Tags         history
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  apiResponse
// @Router       /api/v1/watch-history [get]
func (h *Handler) watchHistory(c *gin.Context) {
	userID := currentUserID(c)
	entries, err := h.services.WatchHistory(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "watch_history_failed", "user_id", userID)
		return
	}
	respond(c, http.StatusOK, entries, "watch history fetched")
}

// @Summary      Fetch a video, recording the watch
// @Tags         history
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id  path  int  true  "video id"
// @Success      200  {object}  apiResponse
// @Failure      404  {object}  apiError
// @Router       /api/v1/videos/{id} [get]
func (h *Handler) watchVideo(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.fail(c, apperr.BadRequest("invalid video id"), "watch_video_bad_id", "id", c.Param("id"))
		return
	}

	userID := currentUserID(c)
	video, err := h.services.Watch(c.Request.Context(), userID, videoID)
	if err != nil {
		h.fail(c, err, "watch_video_failed", "user_id", userID, "video_id", videoID)
		return
	}
	respond(c, http.StatusOK, video, "video fetched")
}
