package productcontroller

import (
	"net/http"

	"github.com/Raj-baniya/copy-of-Giftology/console"
	"github.com/gin-gonic/gin"
)

func ImportProductsFromExcel(con *console.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		rows, err := console.ReadProductSheet(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		report := con.ImportProducts(c.Request.Context(), rows)
		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": report.Created,
			"updated_count": report.Updated,
			"skipped_count": report.Skipped,
			"errors":        report.Errors,
		})
	}
}
