package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Raj-baniya/copy-of-Giftology/catalog"
	"github.com/Raj-baniya/copy-of-Giftology/console"
	"github.com/gin-gonic/gin"
)

// GetProducts lists active products newest first.
// Optional query: category (slug), search (name/description substring).
func GetProducts(reader *catalog.Reader) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := reader.ListProducts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		category := strings.TrimSpace(c.Query("category"))
		search := strings.ToLower(strings.TrimSpace(c.Query("search")))
		if category != "" || search != "" {
			filtered := items[:0]
			for _, it := range items {
				if category != "" && it.Category != category {
					continue
				}
				if search != "" &&
					!strings.Contains(strings.ToLower(it.Name), search) &&
					!strings.Contains(strings.ToLower(it.Description), search) {
					continue
				}
				filtered = append(filtered, it)
			}
			items = filtered
		}

		c.JSON(http.StatusOK, gin.H{"products": items, "total": len(items)})
	}
}

// GetFeaturedProducts returns trending products for the home page.
func GetFeaturedProducts(reader *catalog.Reader) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(catalog.DefaultFeaturedLimit)))
		if err != nil || limit <= 0 {
			limit = catalog.DefaultFeaturedLimit
		}

		items, err := reader.Featured(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GetAdminProducts lists every product, inactive ones included.
func GetAdminProducts(con *console.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := con.Products(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
