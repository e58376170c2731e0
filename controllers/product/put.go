package productcontroller

import (
	"net/http"

	"github.com/Raj-baniya/copy-of-Giftology/console"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UpdateProduct replaces the editable fields of a product.
func UpdateProduct(con *console.Console, uploadsDir string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		form, ok := bindProductForm(c, uploadsDir)
		if !ok {
			return
		}

		product, err := con.UpdateProduct(c.Request.Context(), id, form)
		if err != nil {
			productError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
	}
}
