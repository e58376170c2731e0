package productcontroller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Raj-baniya/copy-of-Giftology/console"
	"github.com/Raj-baniya/copy-of-Giftology/uploads"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// bindProductForm reads a ProductForm from JSON or from a multipart form. A
// multipart "image" file is saved under uploadsDir/products and becomes the
// primary image.
func bindProductForm(c *gin.Context, uploadsDir string) (console.ProductForm, bool) {
	var form console.ProductForm

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return form, false
		}
		return form, true
	}

	form.Name = c.PostForm("name")
	form.Description = c.PostForm("description")
	form.Category = c.PostForm("category")
	form.ImageURL = c.PostForm("image_url")
	form.Trending, _ = strconv.ParseBool(c.PostForm("trending"))

	price, err := decimal.NewFromString(c.PostForm("price"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
		return form, false
	}
	form.Price = price

	if s := c.PostForm("market_price"); s != "" {
		mp, err := decimal.NewFromString(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid market_price"})
			return form, false
		}
		form.CompareAtPrice = &mp
	}
	if s := c.PostForm("stock"); s != "" {
		if form.Stock, err = strconv.Atoi(s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
			return form, false
		}
	}
	if s := c.PostForm("active"); s != "" {
		active, _ := strconv.ParseBool(s)
		form.Active = &active
	}
	for _, img := range strings.Split(c.PostForm("images"), ",") {
		if img = strings.TrimSpace(img); img != "" {
			form.Images = append(form.Images, img)
		}
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := uploads.Save(c, file, uploadsDir, "products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return form, false
		}
		form.ImageURL = url
	}
	return form, true
}

func productError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case console.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, console.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	default:
		log.Error().Err(err).Msg("product write failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product"})
	}
}

// CreateProduct creates a product from JSON or a multipart form with an image upload.
func CreateProduct(con *console.Console, uploadsDir string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, ok := bindProductForm(c, uploadsDir)
		if !ok {
			return
		}

		product, err := con.CreateProduct(c.Request.Context(), form)
		if err != nil {
			productError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
	}
}
