package routes

import (
	"infobus/internal/controllers"

	"github.com/gin-gonic/gin"
)

// RouteRoutes registers the public read and search endpoints.
func RouteRoutes(r *gin.Engine) {
	routes := r.Group("/routes")
	{
		routes.GET("", controllers.ListAllRoutes)
		routes.GET("/:id", controllers.GetRoute)
		routes.GET("/number/:number", controllers.GetRoutesByNumber)
		routes.POST("/search/advanced", controllers.SearchRoutesAdvanced)
		routes.POST("/search/:type", controllers.SearchRoutes)
	}
}
