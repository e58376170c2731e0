package routes

import (
	"time"

	cartControllers "github.com/Raj-baniya/copy-of-Giftology/controllers/cart"
	leadcontroller "github.com/Raj-baniya/copy-of-Giftology/controllers/lead"
	productcontroller "github.com/Raj-baniya/copy-of-Giftology/controllers/product"
	qrcontroller "github.com/Raj-baniya/copy-of-Giftology/controllers/qr"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func SetupStoreRoutes(r *gin.Engine, d Deps) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(d.Catalog))
		products.GET("/featured", productcontroller.GetFeaturedProducts(d.Catalog))
		products.GET("/:slug", productcontroller.GetProductBySlug(d.Catalog))
	}
	r.GET("/categories", productcontroller.GetAllCategories(d.Catalog))

	r.POST("/cart/quote", cartControllers.QuoteCart(d.Catalog, decimal.NewFromInt(d.Config.FastDeliveryFee)))
	r.GET("/payment/upi-qr", qrcontroller.GetLatestQR(d.Store))

	leadDeps := leadcontroller.Deps{Verifier: d.Verifier, Leads: d.Store, Notifier: d.Notifier, Log: d.Log, Now: time.Now}
	leads := r.Group("/leads")
	{
		leads.POST("/otp", leadcontroller.RequestCode(leadDeps))
		leads.POST("/verify", leadcontroller.VerifyCode(leadDeps))
		leads.POST("/mobile", leadcontroller.CaptureMobile(leadDeps))
	}
}
