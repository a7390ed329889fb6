package routes

import (
	"github.com/gin-gonic/gin"

	"resourcehub/controllers"
	"resourcehub/middleware"
)

func DepartmentRoutes(r *gin.RouterGroup) {
	departmentController := controllers.NewDepartmentController()

	departments := r.Group("/departments")
	{
		departments.GET("/", departmentController.GetDepartments)
		departments.GET("/:id", departmentController.GetDepartment)
		departments.GET("/:id/stats", departmentController.GetDepartmentStats)

		protected := departments.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/", departmentController.CreateDepartment)
			protected.PUT("/:id", departmentController.UpdateDepartment)
			protected.DELETE("/:id", departmentController.DeleteDepartment)
		}
	}
}
