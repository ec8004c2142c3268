package routes

import (
	"infobus/internal/controllers"
	"infobus/internal/middleware"

	"github.com/gin-gonic/gin"
)

// OperatorRoutes registers the mutation endpoints; every one of them
// requires an operator token.
func OperatorRoutes(r *gin.Engine) {
	operator := r.Group("/operator")
	operator.Use(middleware.RequireAuthWithType(middleware.AccountTypeOperator))
	{
		operator.GET("/profile", controllers.GetOperatorProfile)
		operator.GET("/routes", controllers.ListOperatorRoutes)
		operator.POST("/routes", controllers.CreateRoute)
		operator.PATCH("/routes/:id", controllers.UpdateRoute)
		operator.DELETE("/routes/:id", controllers.DeleteRoute)
		operator.POST("/geocode", controllers.GeocodeStreets)
	}
}
