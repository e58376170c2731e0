package userControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Raj-baniya/copy-of-Giftology/addressbook"
	"github.com/Raj-baniya/copy-of-Giftology/auth"
	"github.com/Raj-baniya/copy-of-Giftology/identity"
	"github.com/Raj-baniya/copy-of-Giftology/middleware"
	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type renameGateway struct {
	identity.Gateway
	renamed string
}

func (g *renameGateway) UpdateDisplayName(_ context.Context, _, name string) error {
	g.renamed = name
	return nil
}

type UserHandlerSuite struct {
	suite.Suite
	store   *repository.GormStore
	gateway *renameGateway
	router  *gin.Engine
	token   string
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerSuite))
}

func (s *UserHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	s.Require().NoError(err)
	s.store = repository.NewGormStore(db)
	s.Require().NoError(s.store.Migrate())

	user := models.User{ID: "u1", Email: "asha@example.com", DisplayName: "asha", Role: models.RoleUser, JoinedAt: time.Now()}
	s.Require().NoError(s.store.UpsertProfile(context.Background(), &user))

	tokens := auth.NewTokens("secret")
	s.token, _, err = tokens.Issue(user)
	s.Require().NoError(err)

	s.gateway = &renameGateway{}
	book := addressbook.New(s.store)
	r := gin.New()
	g := r.Group("/user", middleware.RequireUser(tokens))
	g.GET("", GetUser(s.store))
	g.PUT("", UpdateUser(s.gateway, s.store, zerolog.Nop()))
	g.GET("/orders", GetUserOrders(s.store))
	g.GET("/addresses", GetAddresses(book))
	g.POST("/addresses", SaveAddress(book))
	s.router = r
}

func (s *UserHandlerSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *UserHandlerSuite) TestProfile() {
	w := s.do(http.MethodGet, "/user", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"email":"asha@example.com"`)

	s.Equal(http.StatusBadRequest, s.do(http.MethodPut, "/user", gin.H{"name": "  "}).Code)

	w = s.do(http.MethodPut, "/user", gin.H{"name": "Asha Rao"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("Asha Rao", s.gateway.renamed)

	got, err := s.store.GetProfile(context.Background(), "u1")
	s.Require().NoError(err)
	s.Equal("Asha Rao", got.DisplayName)
}

func (s *UserHandlerSuite) TestAddresses() {
	w := s.do(http.MethodGet, "/user/addresses", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())

	addr := gin.H{
		"first_name": "Asha", "last_name": "Rao", "phone": "9876543210",
		"street": "1 MG Road", "city": "Pune", "state": "MH", "zip": "411001",
	}
	s.Equal(http.StatusOK, s.do(http.MethodPost, "/user/addresses", addr).Code)
	w = s.do(http.MethodPost, "/user/addresses", addr)
	s.Require().Equal(http.StatusOK, w.Code)

	var list []models.Address
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Len(list, 1)

	addr["city"] = ""
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/user/addresses", addr).Code)
}

func (s *UserHandlerSuite) TestOrdersAreScopedToUser() {
	mine, other := "u1", "u2"
	ctx := context.Background()
	s.Require().NoError(s.store.CreateOrder(ctx, &models.Order{ID: "o1", UserID: &mine, Total: decimal.NewFromInt(1), DeliveryFee: decimal.Zero, Status: models.OrderStatusProcessing, PaymentMethod: models.PaymentMethodCOD, CreatedAt: time.Now()}))
	s.Require().NoError(s.store.CreateOrder(ctx, &models.Order{ID: "o2", UserID: &other, Total: decimal.NewFromInt(1), DeliveryFee: decimal.Zero, Status: models.OrderStatusProcessing, PaymentMethod: models.PaymentMethodCOD, CreatedAt: time.Now()}))

	w := s.do(http.MethodGet, "/user/orders", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var orders []models.Order
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &orders))
	s.Require().Len(orders, 1)
	s.Equal("o1", orders[0].ID)
}

func (s *UserHandlerSuite) TestRequiresSignIn() {
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}
