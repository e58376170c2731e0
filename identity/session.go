package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Raj-baniya/copy-of-Giftology/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or revoked ID token")
	ErrNotSignedIn        = errors.New("not signed in")
)

// Session is an authenticated account as the identity provider reports it.
type Session struct {
	UID         string
	Email       string
	DisplayName string
	Role        string // "role" custom claim, may be empty
	CreatedAt   time.Time
	IDToken     string
}

// Gateway is the identity provider.
type Gateway interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password, displayName string) (*Session, error)
	// SignOut revokes every session of uid.
	SignOut(ctx context.Context, uid string) error
	UpdateDisplayName(ctx context.Context, uid, name string) error
}

// Normalize maps a provider session onto the local user profile.
func Normalize(s Session) models.User {
	name := strings.TrimSpace(s.DisplayName)
	if name == "" {
		name, _, _ = strings.Cut(s.Email, "@")
	}

	role := models.RoleUser
	if models.Role(s.Role) == models.RoleAdmin {
		role = models.RoleAdmin
	}

	joined := s.CreatedAt
	if joined.IsZero() {
		joined = time.Now()
	}

	return models.User{
		ID:          s.UID,
		Email:       s.Email,
		DisplayName: name,
		Role:        role,
		JoinedAt:    joined,
	}
}
