package routes

import (
	"infobus/internal/controllers"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", controllers.SignupUser)
		auth.POST("/login", controllers.LoginUser)
		auth.POST("/operator/signup", controllers.SignupOperator)
		auth.POST("/operator/login", controllers.LoginOperator)
	}
}
