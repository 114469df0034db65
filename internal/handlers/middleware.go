package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userId"

// authMiddleware accepts the access token from the Authorization header
// (Bearer scheme) or the accessToken cookie, and attaches the user id.
func (h *Handler) authMiddleware(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		if v, err := c.Cookie(accessCookie); err == nil {
			token = v
		}
	}
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			errorBody(http.StatusUnauthorized, "missing access token"))
		return
	}

	userID, err := h.services.ParseAccess(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			errorBody(http.StatusUnauthorized, "invalid or expired token"))
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// currentUserID reads the id set by authMiddleware.
func currentUserID(c *gin.Context) int64 {
	v, _ := c.Get(userIDKey)
	id, _ := v.(int64)
	return id
}
