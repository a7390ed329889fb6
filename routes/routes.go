package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resourcehub/config"
	"resourcehub/database"
	"resourcehub/middleware"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	// Global middleware
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middleware.LoggingMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", healthHandler)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		AuthRoutes(v1)
		UserRoutes(v1)
		DepartmentRoutes(v1)
		FolderRoutes(v1)
		ResourceRoutes(v1)
		FileRoutes(v1)
		StatsRoutes(v1)
	}

	// Locally stored uploads are served straight from disk.
	if cfg.Storage.Provider == "local" {
		r.Static("/uploads", cfg.Storage.LocalPath)
	}
}

func healthHandler(c *gin.Context) {
	status := "ok"
	code := http.StatusOK
	if err := database.Ping(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{"status": status})
}
