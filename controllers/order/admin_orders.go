package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Raj-baniya/copy-of-Giftology/console"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func GetAllOrdersHandler(con *console.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := con.Orders(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetOrderByIDHandler(con *console.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := con.Order(c.Request.Context(), c.Param("orderID"))
		if errors.Is(err, console.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /admin/orders/:orderID/proof serves the stored payment screenshot.
func GetPaymentProofHandler(con *console.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := con.Order(c.Request.Context(), c.Param("orderID"))
		if errors.Is(err, console.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if len(order.PaymentProof) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "no payment proof for this order"})
			return
		}
		c.Data(http.StatusOK, order.PaymentProofType, order.PaymentProof)
	}
}

// Update order status
func UpdateOrderStatusHandler(con *console.Console, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		status, err := con.SetOrderStatus(c.Request.Context(), c.Param("orderID"), req.Status)
		switch {
		case console.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, console.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		case err != nil:
			log.Error().Err(err).Str("order_id", c.Param("orderID")).Msg("order status update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "status": status})
	}
}

// GET /admin/orders/export
func ExportOrdersExcel(con *console.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := con.Orders(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file, err := console.OrderSheet(orders)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sheet"})
			return
		}

		filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102_150405"))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename="+filename)
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}
