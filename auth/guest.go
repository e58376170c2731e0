package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /auth/guest
func CreateGuestUser(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := uuid.NewString()

		token, expires, err := d.Tokens.IssueGuest(guestID)
		if err != nil {
			d.Log.Error().Err(err).Msg("failed to sign guest token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"guest_id":   guestID,
			"token":      token,
			"expires_at": expires,
		})
	}
}
