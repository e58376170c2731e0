package auth

import (
	"net/http"

	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/gin-gonic/gin"
)

// POST /auth/admin
//
// Same as the user login, but only accounts carrying the admin role claim get a token.
func GoogleAdminLoginHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"idToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		user, err := d.adapter().Login(c.Request.Context(), req.IDToken)
		if err != nil {
			identityError(c, d, err)
			return
		}
		if user.Role != models.RoleAdmin {
			d.Log.Warn().Str("user_id", user.ID).Str("email", user.Email).Msg("non-admin tried the admin login")
			c.JSON(http.StatusForbidden, gin.H{"error": "This account is not an administrator"})
			return
		}

		respondWithSession(c, d, user, http.StatusOK)
	}
}
