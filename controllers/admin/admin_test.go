package adminController

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Raj-baniya/copy-of-Giftology/console"
	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setup(t *testing.T) (*gin.Engine, *repository.GormStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	store := repository.NewGormStore(db)
	require.NoError(t, store.Migrate())

	con := console.New(store, store, store, zerolog.Nop())
	r := gin.New()
	r.GET("/admin/users", GetAllUsers(store, zerolog.Nop()))
	r.GET("/admin/leads", GetLeads(con))
	r.GET("/admin/stats", GetStats(con))
	return r, store
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestGetAllUsersFiltersByRole(t *testing.T) {
	r, store := setup(t)
	ctx := context.Background()
	require.NoError(t, store.UpsertProfile(ctx, &models.User{ID: "u1", Email: "a@example.com", Role: models.RoleUser, JoinedAt: time.Now()}))
	require.NoError(t, store.UpsertProfile(ctx, &models.User{ID: "u2", Email: "boss@example.com", Role: models.RoleAdmin, JoinedAt: time.Now()}))

	var all []models.User
	w := get(r, "/admin/users")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	var admins []models.User
	w = get(r, "/admin/users?role=admin")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &admins))
	require.Len(t, admins, 1)
	assert.Equal(t, "u2", admins[0].ID)
}

func TestStatsAndLeads(t *testing.T) {
	r, store := setup(t)
	ctx := context.Background()
	for i, st := range []models.OrderStatus{models.OrderStatusProcessing, models.OrderStatusProcessing, models.OrderStatusDelivered} {
		require.NoError(t, store.CreateOrder(ctx, &models.Order{
			ID: fmt.Sprintf("o%d", i), Total: decimal.NewFromInt(100), DeliveryFee: decimal.Zero,
			Status: st, PaymentMethod: models.PaymentMethodCOD, CreatedAt: time.Now(),
		}))
	}
	require.NoError(t, store.CreateLead(ctx, &models.ContactLead{Name: "Asha", Phone: "9876543210", Source: models.LeadSourceMobileCapture}))

	w := get(r, "/admin/stats")
	require.Equal(t, http.StatusOK, w.Code)
	var stats Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.Orders)
	assert.True(t, stats.Revenue.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 2, stats.ByStatus[models.OrderStatusProcessing])
	assert.Equal(t, 1, stats.ByStatus[models.OrderStatusDelivered])
	assert.Equal(t, 1, stats.Leads)
	assert.Equal(t, 0, stats.Products)

	w = get(r, "/admin/leads")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Asha"`)
}
