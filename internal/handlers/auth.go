package handlers

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vidtube/internal/apperr"
	"vidtube/internal/models"
	"vidtube/internal/service"
)

// Cookie names for the token pair. Both are HttpOnly + Secure.
const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

func (h *Handler) setAuthCookies(c *gin.Context, pair models.TokenPair) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(accessCookie, pair.AccessToken, int(h.jwtCfg.AccessTTL.Seconds()), "/", "", true, true)
	c.SetCookie(refreshCookie, pair.RefreshToken, int(h.jwtCfg.RefreshTTL.Seconds()), "/", "", true, true)
}

func (h *Handler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(accessCookie, "", -1, "/", "", true, true)
	c.SetCookie(refreshCookie, "", -1, "/", "", true, true)
}

// saveTemp stores an uploaded file under a uuid name in the OS temp dir.
// The service layer owns the file from here on.
func (h *Handler) saveTemp(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	dst := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       mpfd
// @Produce      json
// @Param        username    formData  string  true   "unique username"
// @Param        email       formData  string  true   "unique email"
// @Param        full_name   formData  string  true   "display name"
// @Param        password    formData  string  true   "password"
// @Param        avatar      formData  file    true   "avatar image"
// @Param        cover_image formData  file    false  "cover image"
// @Success      201  {object}  apiResponse
// @Failure      400  {object}  apiError
// @Failure      409  {object}  apiError
// @Router       /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	p := service.RegisterParams{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		FullName: c.PostForm("full_name"),
		Password: c.PostForm("password"),
	}

	avatarFh, err := c.FormFile("avatar")
	if err != nil {
		h.fail(c, apperr.BadRequest("avatar is required"), "register_missing_avatar")
		return
	}
	if p.AvatarPath, err = h.saveTemp(c, avatarFh); err != nil {
		h.fail(c, err, "register_save_avatar")
		return
	}
	if coverFh, err := c.FormFile("cover_image"); err == nil {
		if p.CoverImagePath, err = h.saveTemp(c, coverFh); err != nil {
			_ = os.Remove(p.AvatarPath)
			h.fail(c, err, "register_save_cover")
			return
		}
	}

	user, err := h.services.Register(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err, "register_failed", "username", p.Username)
		return
	}

	respond(c, http.StatusCreated, user, "user registered successfully")
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// @Summary      Log in with username or email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      loginRequest  true  "login credentials"
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  apiError
// @Failure      404  {object}  apiError
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, pair, err := h.services.Login(c.Request.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		h.fail(c, err, "login_failed", "username", input.Username)
		return
	}

	h.setAuthCookies(c, pair)
	respond(c, http.StatusOK, gin.H{
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, "user logged in successfully")
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// @Summary      Exchange a refresh token for a new pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  apiError
// @Router       /auth/refresh-token [post]
func (h *Handler) refreshToken(c *gin.Context) {
	// Cookie first, body as fallback.
	token, _ := c.Cookie(refreshCookie)
	if token == "" {
		var input refreshRequest
		if err := c.ShouldBindJSON(&input); err == nil {
			token = input.RefreshToken
		}
	}
	if token == "" {
		h.fail(c, apperr.BadRequest("refresh token is required"), "refresh_missing_token")
		return
	}

	pair, err := h.services.Rotate(c.Request.Context(), token)
	if err != nil {
		h.fail(c, err, "refresh_failed")
		return
	}

	h.setAuthCookies(c, pair)
	respond(c, http.StatusOK, pair, "token refreshed successfully")
}

// @Summary      Log out the current user
// @Tags         auth
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  apiResponse
// @Router       /api/v1/logout [post]
func (h *Handler) logout(c *gin.Context) {
	userID := currentUserID(c)
	if err := h.services.Logout(c.Request.Context(), userID); err != nil {
		h.fail(c, err, "logout_failed", "user_id", userID)
		return
	}

	h.clearAuthCookies(c)
	respond(c, http.StatusOK, nil, "user logged out")
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// @Summary      Change the current user's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  apiError
// @Router       /api/v1/change-password [post]
func (h *Handler) changePassword(c *gin.Context) {
	var input changePasswordRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	userID := currentUserID(c)
	if err := h.services.ChangePassword(c.Request.Context(), userID, input.CurrentPassword, input.NewPassword); err != nil {
		h.fail(c, err, "change_password_failed", "user_id", userID)
		return
	}

	respond(c, http.StatusOK, nil, "password changed successfully")
}
