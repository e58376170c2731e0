package qrcontroller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUploadLatestDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	store := repository.NewGormStore(db)
	require.NoError(t, store.Migrate())

	dir := t.TempDir()
	r := gin.New()
	r.POST("/admin/upi-qr", HandleQRFileUpload(store, dir, "https://shop.example.com/", zerolog.Nop()))
	r.DELETE("/admin/upi-qr/:id", DeleteQRFileHandler(store, dir, zerolog.Nop()))
	r.GET("/payment/upi-qr", GetLatestQR(store))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payment/upi-qr", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("upi_id", "shop@upi"))
	fw, err := mw.CreateFormFile("file", "shop qr.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("png"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/upi-qr", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		FileURL string           `json:"file_url"`
		QR      models.UPIQRCode `json:"qr"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.FileURL, "https://shop.example.com/uploads/qr/"))
	assert.Equal(t, "shop@upi", resp.QR.UPIID)

	onDisk := filepath.Join(dir, filepath.FromSlash(resp.QR.FileName))
	_, err = os.Stat(onDisk)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payment/upi-qr", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), resp.FileURL)

	path := fmt.Sprintf("/admin/upi-qr/%d", resp.QR.ID)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
