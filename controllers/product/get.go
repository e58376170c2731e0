package productcontroller

import (
	"errors"
	"net/http"

	"github.com/Raj-baniya/copy-of-Giftology/catalog"
	"github.com/gin-gonic/gin"
)

// GetProductBySlug returns a single active product.
// URL param: /products/:slug
func GetProductBySlug(reader *catalog.Reader) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		if slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product slug is required"})
			return
		}

		item, err := reader.BySlug(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, item)
	}
}
