package routes

import (
	"github.com/gin-gonic/gin"

	"resourcehub/controllers"
	"resourcehub/middleware"
)

func ResourceRoutes(r *gin.RouterGroup) {
	resourceController := controllers.NewResourceController()

	resources := r.Group("/resources")
	{
		public := resources.Group("/")
		public.Use(middleware.OptionalAuthMiddleware())
		{
			public.GET("/", resourceController.GetResources)
			public.GET("/:id", resourceController.GetResource)
			public.POST("/:id/download", resourceController.TrackDownload)
		}

		protected := resources.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/favorites", resourceController.GetFavorites)
			protected.POST("/", resourceController.CreateResource)
			protected.PUT("/:id", resourceController.UpdateResource)
			protected.DELETE("/:id", resourceController.DeleteResource)
			protected.POST("/:id/favorite", resourceController.ToggleFavorite)
			protected.POST("/:id/files", resourceController.AttachFiles)
			protected.DELETE("/:id/files/:fileId", resourceController.DetachFile)
		}
	}
}
