package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// POST /auth/login
//
// Signs in with a Firebase ID token obtained by the browser (Google or phone
// sign-in) and upserts the local profile.
func GoogleUserLoginHandler(d Deps) gin.HandlerFunc {
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

		d.Log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user signed in")
		respondWithSession(c, d, user, http.StatusOK)
	}
}
