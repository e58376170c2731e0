package routes

import (
	adminController "github.com/Raj-baniya/copy-of-Giftology/controllers/admin"
	orderControllers "github.com/Raj-baniya/copy-of-Giftology/controllers/order"
	productcontroller "github.com/Raj-baniya/copy-of-Giftology/controllers/product"
	qrcontroller "github.com/Raj-baniya/copy-of-Giftology/controllers/qr"
	"github.com/Raj-baniya/copy-of-Giftology/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers all "/admin/*" endpoints.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin(d.Tokens, d.Config.AdminAPIKey))
	{
		adminGroup.GET("/users", adminController.GetAllUsers(d.Store, d.Log))
		adminGroup.GET("/leads", adminController.GetLeads(d.Console))
		adminGroup.GET("/stats", adminController.GetStats(d.Console))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", productcontroller.GetAdminProducts(d.Console))
			productAdmin.POST("", productcontroller.CreateProduct(d.Console, d.Config.UploadsDir, d.Log))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(d.Console, d.Config.UploadsDir, d.Log))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(d.Console))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(d.Console))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(d.Console))
		}

		// ─────────── Orders ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(d.Console))
			orderAdmin.GET("/ws", d.Hub.OrderWebSocketHandler)
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersExcel(d.Console))
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(d.Console))
			orderAdmin.GET("/:orderID/proof", orderControllers.GetPaymentProofHandler(d.Console))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(d.Console, d.Log))
		}

		// ─────────── UPI QR ───────────
		qrAdmin := adminGroup.Group("/upi-qr")
		{
			qrAdmin.POST("", qrcontroller.HandleQRFileUpload(d.Store, d.Config.UploadsDir, d.Config.PublicBaseURL, d.Log))
			qrAdmin.DELETE("/:id", qrcontroller.DeleteQRFileHandler(d.Store, d.Config.UploadsDir, d.Log))
		}
	}
}
