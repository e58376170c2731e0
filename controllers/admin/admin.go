package adminController

import (
	"net/http"

	"github.com/Raj-baniya/copy-of-Giftology/console"
	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// GET /admin/users?role=admin
func GetAllUsers(profiles repository.ProfileRepository, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := profiles.ListProfiles(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch users")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}

		if role := c.Query("role"); role != "" {
			filtered := users[:0]
			for _, u := range users {
				if string(u.Role) == role {
					filtered = append(filtered, u)
				}
			}
			users = filtered
		}
		c.JSON(http.StatusOK, users)
	}
}

// GET /admin/leads
func GetLeads(con *console.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		leads, err := con.Leads(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leads"})
			return
		}
		c.JSON(http.StatusOK, leads)
	}
}

type Stats struct {
	Orders   int                        `json:"orders"`
	Revenue  decimal.Decimal            `json:"revenue"`
	ByStatus map[models.OrderStatus]int `json:"by_status"`
	Products int                        `json:"products"`
	Leads    int                        `json:"leads"`
}

// GET /admin/stats
func GetStats(con *console.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		orders, err := con.Orders(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		products, err := con.Products(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		leads, err := con.Leads(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leads"})
			return
		}

		stats := Stats{
			Orders:   len(orders),
			Revenue:  decimal.Zero,
			ByStatus: map[models.OrderStatus]int{},
			Products: len(products),
			Leads:    len(leads),
		}
		for _, o := range orders {
			stats.Revenue = stats.Revenue.Add(o.Total)
			stats.ByStatus[o.Status]++
		}
		c.JSON(http.StatusOK, stats)
	}
}
