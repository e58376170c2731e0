package routes

import (
	orderControllers "github.com/Raj-baniya/copy-of-Giftology/controllers/order"
	"github.com/Raj-baniya/copy-of-Giftology/middleware"
	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(r *gin.Engine, d Deps) {
	checkout := r.Group("/checkout")
	checkout.Use(middleware.OptionalToken(d.Tokens))
	{
		checkout.POST("", orderControllers.BeginCheckoutHandler(d.Checkout, d.Log))
		checkout.GET("/:sessionID", orderControllers.GetCheckoutHandler(d.Checkout, d.Log))
		checkout.POST("/:sessionID/shipping", orderControllers.SubmitShippingHandler(d.Checkout, d.Log))
		checkout.POST("/:sessionID/back", orderControllers.BackHandler(d.Checkout, d.Log))
		checkout.POST("/:sessionID/payment", orderControllers.SubmitPaymentHandler(d.Checkout, d.Log))
	}
}
