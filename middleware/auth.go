package middleware

import (
	"net/http"

	"github.com/Raj-baniya/copy-of-Giftology/auth"
	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(claimsKey, claims)
	c.Set("user_id", claims.UserID)
	c.Set("role", claims.Role)
}

// ValidateToken rejects requests without a valid bearer token.
func ValidateToken(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		claims, err := tokens.Parse(header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// RequireUser is ValidateToken for routes guests cannot use.
func RequireUser(tokens *auth.Tokens) gin.HandlerFunc {
	validate := ValidateToken(tokens)
	return func(c *gin.Context) {
		validate(c)
		if c.IsAborted() {
			return
		}
		if claims, _ := Claims(c); claims == nil || claims.IsGuest() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please sign in to continue"})
		}
	}
}

// OptionalToken attaches claims when a valid token is sent and otherwise lets the request through.
func OptionalToken(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			if claims, err := tokens.Parse(header); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func Claims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok && claims != nil
}
