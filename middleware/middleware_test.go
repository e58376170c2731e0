package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Raj-baniya/copy-of-Giftology/auth"
	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, mw gin.HandlerFunc, header map[string]string, target string) (*httptest.ResponseRecorder, *auth.Claims) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen *auth.Claims
	r := gin.New()
	r.GET("/x", mw, func(c *gin.Context) {
		seen, _ = Claims(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, seen
}

func issue(t *testing.T, tokens *auth.Tokens, role models.Role) string {
	t.Helper()
	raw, _, err := tokens.Issue(models.User{ID: "u1", Email: "a@example.com", Role: role})
	require.NoError(t, err)
	return "Bearer " + raw
}

func TestValidateToken(t *testing.T) {
	tokens := auth.NewTokens("secret")

	w, _ := serve(t, ValidateToken(tokens), nil, "/x")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = serve(t, ValidateToken(tokens), map[string]string{"Authorization": "Bearer junk"}, "/x")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, claims := serve(t, ValidateToken(tokens), map[string]string{"Authorization": issue(t, tokens, models.RoleUser)}, "/x")
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, claims)
	assert.Equal(t, "u1", claims.UserID)
}

func TestRequireUserRejectsGuests(t *testing.T) {
	tokens := auth.NewTokens("secret")
	guest, _, err := tokens.IssueGuest("g1")
	require.NoError(t, err)

	w, _ := serve(t, RequireUser(tokens), map[string]string{"Authorization": "Bearer " + guest}, "/x")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = serve(t, RequireUser(tokens), map[string]string{"Authorization": issue(t, tokens, models.RoleUser)}, "/x")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestOptionalToken(t *testing.T) {
	tokens := auth.NewTokens("secret")

	w, claims := serve(t, OptionalToken(tokens), map[string]string{"Authorization": "Bearer junk"}, "/x")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Nil(t, claims)

	_, claims = serve(t, OptionalToken(tokens), map[string]string{"Authorization": issue(t, tokens, models.RoleUser)}, "/x")
	require.NotNil(t, claims)
}

func TestRequireAdmin(t *testing.T) {
	tokens := auth.NewTokens("secret")
	mw := RequireAdmin(tokens, "k3y")

	w, _ := serve(t, mw, map[string]string{"X-API-KEY": "k3y"}, "/x")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = serve(t, mw, map[string]string{"X-API-KEY": "wrong"}, "/x")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = serve(t, mw, map[string]string{"Authorization": issue(t, tokens, models.RoleUser)}, "/x")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, claims := serve(t, mw, map[string]string{"Authorization": issue(t, tokens, models.RoleAdmin)}, "/x")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, claims.IsAdmin())

	raw, _, err := tokens.Issue(models.User{ID: "a1", Role: models.RoleAdmin})
	require.NoError(t, err)
	w, _ = serve(t, mw, nil, "/x?token="+raw)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// an empty configured key never matches
	w, _ = serve(t, RequireAdmin(tokens, ""), map[string]string{"X-API-KEY": ""}, "/x")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestLoggerRecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop()))
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}
