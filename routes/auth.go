package routes

import (
	"github.com/Raj-baniya/copy-of-Giftology/auth"
	"github.com/Raj-baniya/copy-of-Giftology/middleware"
	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(r *gin.Engine, d Deps) {
	deps := auth.Deps{Gateway: d.Identity, Profiles: d.Store, Tokens: d.Tokens, Log: d.Log}

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", auth.GoogleUserLoginHandler(deps))
		authGroup.POST("/admin", auth.GoogleAdminLoginHandler(deps))
		authGroup.POST("/login/password", auth.PasswordLoginHandler(deps))
		authGroup.POST("/register", auth.RegisterHandler(deps))
		authGroup.POST("/guest", auth.CreateGuestUser(deps))
		authGroup.POST("/logout", middleware.OptionalToken(d.Tokens), auth.LogoutHandler(deps))
	}
}
