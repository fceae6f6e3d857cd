package http

import (
	"github.com/gin-gonic/gin"

	"github.com/avant-atelier/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		search := v1.Group("/search")
		{
			search.GET("", handler.Search)
			search.POST("/expand", handler.ExpandSearch)
			search.DELETE("/session", handler.CloseSearch)
		}

		v1.POST("/chat", handler.Chat)
	}

	// Legacy path the storefront chat panel still posts to
	router.POST("/api/chat", handler.Chat)

	// Everything else is the storefront itself: HTML pages, scripts, and
	// the catalog JSON files the loader fetches back from this origin.
	if cfg.Server.ServeStatic {
		router.NoRoute(StaticHandler(cfg.Server.StaticDir))
	}

	return router
}
