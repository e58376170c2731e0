package userControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Raj-baniya/copy-of-Giftology/addressbook"
	"github.com/Raj-baniya/copy-of-Giftology/identity"
	"github.com/Raj-baniya/copy-of-Giftology/middleware"
	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type UpdateUserInput struct {
	Name string `json:"name" binding:"required"`
}

// GET /user
func GetUser(profiles repository.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := middleware.Claims(c)

		user, err := profiles.GetProfile(c.Request.Context(), claims.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// PUT /user renames the account at the identity provider and locally.
func UpdateUser(gateway identity.Gateway, profiles repository.ProfileRepository, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := middleware.Claims(c)

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
			return
		}

		adapter := identity.NewAdapter(gateway, profiles, log)
		adapter.Restore(claims.User())
		user, err := adapter.UpdateProfile(c.Request.Context(), strings.TrimSpace(input.Name))
		if err != nil {
			log.Error().Err(err).Str("user_id", claims.UserID).Msg("profile update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// GET /user/orders
func GetUserOrders(orders repository.OrderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := middleware.Claims(c)

		list, err := orders.ListOrders(c.Request.Context(), repository.OrderFilter{UserID: claims.UserID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /user/addresses
func GetAddresses(book *addressbook.Book) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := middleware.Claims(c)

		list, err := book.Get(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// POST /user/addresses
func SaveAddress(book *addressbook.Book) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := middleware.Claims(c)

		var addr models.Address
		if err := c.ShouldBindJSON(&addr); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		list, err := book.Save(c.Request.Context(), claims.UserID, addr)
		if errors.Is(err, addressbook.ErrIncompleteAddress) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save address"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
