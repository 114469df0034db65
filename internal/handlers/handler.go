package handlers

import (
	"vidtube/internal/config"
	"vidtube/internal/logger"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "vidtube/docs"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	jwtCfg   config.JWT
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, jwtCfg config.JWT) *Handler {
	return &Handler{services: services, log: log, jwtCfg: jwtCfg}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	return router
}

// Public endpoints: no token needed.
func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/refresh-token", h.refreshToken)
	}
}

// Protected endpoints: access token via Authorization header or cookie.
func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.authMiddleware)
	{
		api.POST("/logout", h.logout)
		api.POST("/change-password", h.changePassword)

		api.GET("/me", h.me)
		api.PATCH("/account", h.updateAccount)
		api.PATCH("/avatar", h.updateAvatar)
		api.PATCH("/cover-image", h.updateCoverImage)

		api.GET("/channels/:username", h.channelProfile)
		api.POST("/channels/:username/subscribe", h.toggleSubscription)

		api.GET("/watch-history", h.watchHistory)
		api.GET("/videos/:id", h.watchVideo)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
