package uploads

import (
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

var unsafeChars = regexp.MustCompile(`[^\w\d\-_\.]`)

// SafeName replaces anything outside [A-Za-z0-9_.-] and prefixes a unix timestamp.
func SafeName(original string, now time.Time) string {
	clean := unsafeChars.ReplaceAllString(filepath.Base(original), "_")
	return fmt.Sprintf("%d_%s", now.Unix(), clean)
}

// Save stores an uploaded file under root/sub and returns its public path
// below /uploads, e.g. "/uploads/products/1700000000_rose.jpg".
func Save(c *gin.Context, file *multipart.FileHeader, root, sub string) (string, error) {
	dir := filepath.Join(root, sub)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}

	name := SafeName(file.Filename, time.Now())
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("save file: %w", err)
	}
	return path.Join("/uploads", sub, name), nil
}
