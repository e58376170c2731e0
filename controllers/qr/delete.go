package qrcontroller

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func DeleteQRFileHandler(store repository.PaymentQRRepository, uploadDir string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID is required"})
			return
		}

		qrFile, err := store.DeleteUPIQRCode(c.Request.Context(), uint(id))
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "QR file not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete QR file record"})
			return
		}

		filePath := filepath.Join(uploadDir, filepath.FromSlash(qrFile.FileName))
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", filePath).Msg("QR record deleted but file remains on disk")
		}

		log.Info().Str("file", qrFile.FileName).Msg("QR file deleted")
		c.JSON(http.StatusOK, gin.H{"message": "QR file deleted successfully"})
	}
}
