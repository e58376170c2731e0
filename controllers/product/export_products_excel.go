package productcontroller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Raj-baniya/copy-of-Giftology/console"
	"github.com/gin-gonic/gin"
)

func ExportProductsToExcel(con *console.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := con.Products(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file, err := console.ProductSheet(products)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sheet"})
			return
		}

		filename := fmt.Sprintf("products_%s.xlsx", time.Now().Format("20060102_150405"))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename="+filename)
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}
