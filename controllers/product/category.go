package productcontroller

import (
	"net/http"

	"github.com/Raj-baniya/copy-of-Giftology/catalog"
	"github.com/gin-gonic/gin"
)

func GetAllCategories(reader *catalog.Reader) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := reader.Categories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}
