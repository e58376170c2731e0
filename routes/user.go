package routes

import (
	userControllers "github.com/Raj-baniya/copy-of-Giftology/controllers/user"
	"github.com/Raj-baniya/copy-of-Giftology/middleware"
	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(r *gin.Engine, d Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.RequireUser(d.Tokens))
	{
		userGroup.GET("", userControllers.GetUser(d.Store))
		userGroup.PUT("", userControllers.UpdateUser(d.Identity, d.Store, d.Log))
		userGroup.GET("/orders", userControllers.GetUserOrders(d.Store))
		userGroup.GET("/addresses", userControllers.GetAddresses(d.Addresses))
		userGroup.POST("/addresses", userControllers.SaveAddress(d.Addresses))
	}
}
