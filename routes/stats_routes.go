package routes

import (
	"github.com/gin-gonic/gin"

	"resourcehub/controllers"
)

func StatsRoutes(r *gin.RouterGroup) {
	statsController := controllers.NewStatsController()

	stats := r.Group("/stats")
	{
		stats.GET("/", statsController.GetGlobalStats)
		stats.GET("/users/:id", statsController.GetUserStats)
	}
}
