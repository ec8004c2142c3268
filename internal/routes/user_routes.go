package routes

import (
	"infobus/internal/controllers"
	"infobus/internal/middleware"

	"github.com/gin-gonic/gin"
)

// UserRoutes registers the rider favourites endpoints.
func UserRoutes(r *gin.Engine) {
	user := r.Group("/user")
	user.Use(middleware.RequireAuthWithType(middleware.AccountTypeUser))
	{
		user.GET("/saved-routes", controllers.ListSavedRoutes)
		user.POST("/saved-routes/:id", controllers.SaveRoute)
		user.DELETE("/saved-routes/:id", controllers.UnsaveRoute)
	}
}
