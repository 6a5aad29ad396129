package handlers

import (
	"net/http"

	"portfolio_cms/internal/logger"
	"portfolio_cms/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options carries the HTTP-only settings of the handler.
type Options struct {
	CORSOrigin string // Access-Control-Allow-Origin; empty means "*"
	StaticDir  string // frontend build served for non-API routes; empty disables it
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if opts.CORSOrigin == "" {
		opts.CORSOrigin = "*"
	}
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger, h.cors)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		h.registerAuthRoutes(api)
		h.registerContentRoutes(api)
		h.registerProfileRoutes(api)
		h.registerMessageRoutes(api)
		h.registerAdminRoutes(api)
	}

	// Everything else is either the SPA or a JSON 404.
	router.NoRoute(h.staticOrNotFound)

	return router
}

func (h *Handler) registerAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.login)
	}
}

func (h *Handler) registerContentRoutes(api *gin.RouterGroup) {
	dev := api.Group("/developer")
	{
		registerResource(h, dev, "/skills", h.services.Developer.Skills)
		registerResource(h, dev, "/projects", h.services.Developer.Projects)
		registerResource(h, dev, "/services", h.services.Developer.Services)
	}
	des := api.Group("/designer")
	{
		registerResource(h, des, "/gallery", h.services.Designer.Gallery)
		registerResource(h, des, "/tools", h.services.Designer.Tools)
		registerResource(h, des, "/services", h.services.Designer.Services)
	}
	cre := api.Group("/creator")
	{
		registerResource(h, cre, "/sketches", h.services.Creator.Sketches)
		registerResource(h, cre, "/books", h.services.Creator.Books)
		registerResource(h, cre, "/thoughts", h.services.Creator.Thoughts)
	}
	blog := api.Group("/blogger")
	{
		registerResource(h, blog, "/snippets", h.services.Blogger.Snippets)
		registerResource(h, blog, "/roadmaps", h.services.Blogger.Roadmaps)
		registerResource(h, blog, "/articles", h.services.Blogger.Articles)
	}
}

func (h *Handler) registerProfileRoutes(api *gin.RouterGroup) {
	profile := api.Group("/profile")
	{
		profile.GET("", h.getProfile)
		profile.PATCH("", h.userIdMiddleware, h.updateProfile)
	}
}

func (h *Handler) registerMessageRoutes(api *gin.RouterGroup) {
	messages := api.Group("/messages")
	{
		messages.POST("", h.createMessage)
		messages.GET("", h.userIdMiddleware, h.listMessages)
		messages.DELETE("/:id", h.userIdMiddleware, h.deleteMessage)
	}
}

func (h *Handler) registerAdminRoutes(api *gin.RouterGroup) {
	api.GET("/activity", h.userIdMiddleware, h.getActivity)
	api.GET("/stats", h.userIdMiddleware, h.getStats)
	// Browsers cannot set headers on the upgrade request, so the token may come as ?access_token=.
	api.GET("/ws", h.queryTokenMiddleware, h.userIdMiddleware, h.wsConnect)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
