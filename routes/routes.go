package routes

import (
	"github.com/Raj-baniya/copy-of-Giftology/addressbook"
	"github.com/Raj-baniya/copy-of-Giftology/auth"
	"github.com/Raj-baniya/copy-of-Giftology/catalog"
	"github.com/Raj-baniya/copy-of-Giftology/checkout"
	"github.com/Raj-baniya/copy-of-Giftology/config"
	"github.com/Raj-baniya/copy-of-Giftology/console"
	orderControllers "github.com/Raj-baniya/copy-of-Giftology/controllers/order"
	"github.com/Raj-baniya/copy-of-Giftology/identity"
	"github.com/Raj-baniya/copy-of-Giftology/notify"
	"github.com/Raj-baniya/copy-of-Giftology/phoneauth"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Deps is everything the route groups hand to their handlers.
type Deps struct {
	Config    *config.Config
	Log       zerolog.Logger
	Store     repository.Store
	Catalog   *catalog.Reader
	Checkout  *checkout.Service
	Console   *console.Console
	Addresses *addressbook.Book
	Identity  identity.Gateway
	Verifier  phoneauth.Verifier
	Notifier  notify.Gateway
	Tokens    *auth.Tokens
	Hub       *orderControllers.Hub
}

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, d Deps) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, d)

	// Catalog, cart quote, lead capture
	SetupStoreRoutes(r, d)

	// Checkout (guest or signed-in)
	SetupOrderRoutes(r, d)

	// User routes (JWT-protected)
	SetupUserRoutes(r, d)

	// Admin routes (API-key or admin token)
	SetupAdminRoutes(r, d)
}
