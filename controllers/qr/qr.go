package qrcontroller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/Raj-baniya/copy-of-Giftology/uploads"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HandleQRFileUpload stores the UPI QR image the payment step shows and makes it current.
// Form fields: file (image), upi_id (optional).
func HandleQRFileUpload(store repository.PaymentQRRepository, uploadDir, publicBaseURL string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}

		publicPath, err := uploads.Save(c, file, uploadDir, "qr")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		record := models.UPIQRCode{
			FileName: strings.TrimPrefix(publicPath, "/uploads/"),
			FileURL:  strings.TrimRight(publicBaseURL, "/") + publicPath,
			UPIID:    strings.TrimSpace(c.PostForm("upi_id")),
		}
		if err := store.CreateUPIQRCode(c.Request.Context(), &record); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save QR record"})
			return
		}

		log.Info().Str("file", file.Filename).Str("url", record.FileURL).Msg("QR file uploaded")

		c.JSON(http.StatusOK, gin.H{
			"file_url": record.FileURL,
			"qr":       record,
			"message":  "File uploaded successfully",
		})
	}
}

// GetLatestQR returns the QR code customers pay to.
func GetLatestQR(store repository.PaymentQRRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		qr, err := store.LatestUPIQRCode(c.Request.Context())
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No UPI QR code has been uploaded yet"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query QR file"})
			return
		}
		c.JSON(http.StatusOK, qr)
	}
}
