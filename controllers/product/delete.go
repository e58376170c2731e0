package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Raj-baniya/copy-of-Giftology/console"
	"github.com/gin-gonic/gin"
)

// DeleteProduct needs ?confirm=true; without it nothing is removed.
func DeleteProduct(con *console.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}
		confirmed, _ := strconv.ParseBool(c.Query("confirm"))

		err := con.DeleteProduct(c.Request.Context(), id, confirmed)
		switch {
		case errors.Is(err, console.ErrConfirmationRequired):
			c.JSON(http.StatusPreconditionRequired, gin.H{"error": err.Error()})
		case errors.Is(err, console.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
		}
	}
}
