package routes

import (
	"carelink-be/controllers"
	"carelink-be/middlewares"

	"github.com/gin-gonic/gin"
)

// NGORoutes sets up NGO registration and admin approval routes
func NGORoutes(r *gin.Engine) {
	ngo := r.Group("/api/ngo")
	{
		ngo.POST("/register", controllers.RegisterNGO)
		ngo.GET("/pending", middlewares.AuthMiddleware(), middlewares.AdminOnly(), controllers.GetPendingNGOs)
		ngo.PUT("/:id/approve", middlewares.AuthMiddleware(), middlewares.AdminOnly(), controllers.ApproveNGO)
	}
}
