package auth

import (
	"errors"
	"net/http"

	"github.com/Raj-baniya/copy-of-Giftology/identity"
	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Deps is what the auth handlers need.
type Deps struct {
	Gateway  identity.Gateway
	Profiles repository.ProfileRepository
	Tokens   *Tokens
	Log      zerolog.Logger
}

func (d Deps) adapter() *identity.Adapter {
	return identity.NewAdapter(d.Gateway, d.Profiles, d.Log)
}

// respondWithSession issues an API token for user and writes the login response.
func respondWithSession(c *gin.Context, d Deps, user *models.User, status int) {
	token, expires, err := d.Tokens.Issue(*user)
	if err != nil {
		d.Log.Error().Err(err).Msg("failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}
	c.JSON(status, gin.H{
		"message":    "Login successful",
		"token":      token,
		"expires_at": expires,
		"user":       user,
	})
}

func identityError(c *gin.Context, d Deps, err error) {
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, identity.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or revoked ID token"})
	case errors.Is(err, identity.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		d.Log.Error().Err(err).Msg("identity provider call failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

// POST /auth/login/password
func PasswordLoginHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		user, err := d.adapter().LoginWithPassword(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			identityError(c, d, err)
			return
		}
		respondWithSession(c, d, user, http.StatusOK)
	}
}

// POST /auth/register
func RegisterHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required,min=6"`
			Name     string `json:"name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email and a password of at least 6 characters are required"})
			return
		}

		user, err := d.adapter().Register(c.Request.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			identityError(c, d, err)
			return
		}
		respondWithSession(c, d, user, http.StatusCreated)
	}
}

// POST /auth/logout revokes the caller's provider sessions. Requires a user token.
func LogoutHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.Get("claims")
		cl, _ := claims.(*Claims)
		if !ok || cl == nil || cl.IsGuest() {
			c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
			return
		}

		a := d.adapter()
		a.Restore(cl.User())
		if err := a.Logout(c.Request.Context()); err != nil {
			identityError(c, d, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
