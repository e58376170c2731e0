package cartControllers

import (
	"net/http"

	"github.com/Raj-baniya/copy-of-Giftology/checkout"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type QuoteRequest struct {
	Items []checkout.LineRequest `json:"items" binding:"dive"`
}

// POST /cart/quote
//
// Prices the browser's cart against the live catalog. Lines for products that
// no longer exist are dropped, so the client can reconcile its copy.
func QuoteCart(products checkout.ProductLookup, fastDeliveryFee decimal.Decimal) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req QuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		priced, err := checkout.PriceCart(c.Request.Context(), products, req.Items)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to price cart"})
			return
		}

		sess := checkout.Session{Cart: *priced}
		c.JSON(http.StatusOK, gin.H{
			"lines":                priced.Lines,
			"count":                priced.Count(),
			"subtotal":             priced.Total(),
			"totals":               sess.Totals(fastDeliveryFee, false),
			"fast_delivery_totals": sess.Totals(fastDeliveryFee, true),
		})
	}
}
