package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/Raj-baniya/copy-of-Giftology/auth"
	"github.com/gin-gonic/gin"
)

// RequireAdmin admits requests carrying the configured X-API-KEY or an admin bearer token.
// Browsers cannot set headers on websocket upgrades, so ?token= is accepted too.
func RequireAdmin(tokens *auth.Tokens, apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader("X-API-KEY"); key != "" && apiKey != "" &&
			subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
			c.Set("role", "admin")
			c.Next()
			return
		}

		raw := c.GetHeader("Authorization")
		if raw == "" {
			raw = c.Query("token")
		}
		if claims, err := tokens.Parse(raw); err == nil && claims.IsAdmin() {
			setClaims(c, claims)
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
	}
}
