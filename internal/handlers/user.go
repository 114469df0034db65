package handlers

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"vidtube/internal/apperr"
	"vidtube/internal/models"
)

// @Summary      Current user
// @Tags         user
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  apiResponse
// @Router       /api/v1/me [get]
func (h *Handler) me(c *gin.Context) {
	userID := currentUserID(c)
	user, err := h.services.Me(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "me_failed", "user_id", userID)
		return
	}
	respond(c, http.StatusOK, user, "current user fetched")
}

type updateAccountRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// @Summary      Update display name and email
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  apiResponse
// @Router       /api/v1/account [patch]
func (h *Handler) updateAccount(c *gin.Context) {
	var input updateAccountRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	userID := currentUserID(c)
	user, err := h.services.UpdateAccount(c.Request.Context(), userID, input.FullName, input.Email)
	if err != nil {
		h.fail(c, err, "update_account_failed", "user_id", userID)
		return
	}
	respond(c, http.StatusOK, user, "account updated successfully")
}

// @Summary      Replace the avatar image
// @Tags         user
// @Accept       mpfd
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  apiResponse
// @Router       /api/v1/avatar [patch]
func (h *Handler) updateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.services.UpdateAvatar)
}

// @Summary      Replace the cover image
// @Tags         user
// @Accept       mpfd
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  apiResponse
// @Router       /api/v1/cover-image [patch]
func (h *Handler) updateCoverImage(c *gin.Context) {
	h.updateImage(c, "cover_image", h.services.UpdateCoverImage)
}

// updateImage saves the uploaded file to a temp path and delegates to the
// matching profile update.
func (h *Handler) updateImage(c *gin.Context, field string,
	update func(ctx context.Context, userID int64, path string) (*models.User, error)) {

	fh, err := c.FormFile(field)
	if err != nil {
		h.fail(c, apperr.BadRequest(field+" file is required"), "update_image_missing_file", "field", field)
		return
	}
	path, err := h.saveTemp(c, fh)
	if err != nil {
		h.fail(c, err, "update_image_save_temp", "field", field)
		return
	}

	userID := currentUserID(c)
	user, err := update(c.Request.Context(), userID, path)
	if err != nil {
		// The service removes the temp file after its upload attempt; this
		// covers failures before that point.
		_ = os.Remove(path)
		h.fail(c, err, "update_image_failed", "field", field, "user_id", userID)
		return
	}
	respond(c, http.StatusOK, user, field+" updated successfully")
}
