package routes

import (
	"github.com/gin-gonic/gin"

	"resourcehub/controllers"
	"resourcehub/middleware"
)

func FolderRoutes(r *gin.RouterGroup) {
	folderController := controllers.NewFolderController()

	folders := r.Group("/folders")
	{
		folders.GET("/", folderController.GetFolders)
		folders.GET("/:id", folderController.GetFolder)
		folders.GET("/:id/stats", folderController.GetFolderStats)

		protected := folders.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/", folderController.CreateFolder)
			protected.PUT("/:id", folderController.UpdateFolder)
			protected.DELETE("/:id", folderController.DeleteFolder)
		}
	}
}
