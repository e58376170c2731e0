package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/golang-jwt/jwt/v5"
)

const RoleGuest = "guest"

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload of every API token this service issues.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsGuest() bool { return c.Role == RoleGuest }
func (c *Claims) IsAdmin() bool { return c.Role == string(models.RoleAdmin) }

// User rebuilds the account the token was issued for. Only meaningful for non-guest tokens.
func (c *Claims) User() models.User {
	return models.User{
		ID:          c.UserID,
		Email:       c.Email,
		DisplayName: c.Name,
		Role:        models.Role(c.Role),
	}
}

type Tokens struct {
	secret   []byte
	userTTL  time.Duration
	adminTTL time.Duration
	guestTTL time.Duration
	now      func() time.Time
}

func NewTokens(secret string) *Tokens {
	return &Tokens{
		secret:   []byte(secret),
		userTTL:  24 * time.Hour,
		adminTTL: 7 * 24 * time.Hour,
		guestTTL: 24 * time.Hour,
		now:      time.Now,
	}
}

func (t *Tokens) sign(claims Claims, ttl time.Duration) (string, time.Time, error) {
	now := t.now()
	expires := now.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	return signed, expires, err
}

// Issue signs a token for a signed-in account.
func (t *Tokens) Issue(u models.User) (string, time.Time, error) {
	ttl := t.userTTL
	if u.Role == models.RoleAdmin {
		ttl = t.adminTTL
	}
	return t.sign(Claims{UserID: u.ID, Email: u.Email, Name: u.DisplayName, Role: string(u.Role)}, ttl)
}

func (t *Tokens) IssueGuest(id string) (string, time.Time, error) {
	return t.sign(Claims{UserID: id, Role: RoleGuest}, t.guestTTL)
}

// Parse validates raw, with or without a "Bearer " prefix.
func (t *Tokens) Parse(raw string) (*Claims, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Bearer "))
	if raw == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
