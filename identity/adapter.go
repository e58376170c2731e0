package identity

import (
	"context"
	"sync"

	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/rs/zerolog"
)

// Adapter tracks the signed-in user of one client session. It reports
// Loading until the provider has delivered its first session notification.
type Adapter struct {
	gateway  Gateway
	profiles repository.ProfileRepository
	log      zerolog.Logger

	mu        sync.RWMutex
	loading   bool
	user      *models.User
	nextID    int
	listeners map[int]func(*models.User)
}

func NewAdapter(gateway Gateway, profiles repository.ProfileRepository, log zerolog.Logger) *Adapter {
	return &Adapter{
		gateway:   gateway,
		profiles:  profiles,
		log:       log,
		loading:   true,
		listeners: make(map[int]func(*models.User)),
	}
}

func (a *Adapter) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

// User returns a copy of the current user, or nil when signed out.
func (a *Adapter) User() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

// Subscribe registers fn for every session change. The returned func removes it.
func (a *Adapter) Subscribe(fn func(*models.User)) func() {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.listeners, id)
		a.mu.Unlock()
	}
}

// SessionChanged applies a provider notification. A nil session means signed out.
func (a *Adapter) SessionChanged(ctx context.Context, s *Session) *models.User {
	var user *models.User
	if s != nil {
		u := Normalize(*s)
		if a.profiles != nil {
			if err := a.profiles.UpsertProfile(ctx, &u); err != nil {
				a.log.Warn().Err(err).Str("user_id", u.ID).Msg("profile sync failed")
			}
		}
		user = &u
	}
	a.set(user)
	return a.User()
}

func (a *Adapter) set(user *models.User) {
	a.mu.Lock()
	a.loading = false
	a.user = user
	listeners := make([]func(*models.User), 0, len(a.listeners))
	for _, fn := range a.listeners {
		listeners = append(listeners, fn)
	}
	a.mu.Unlock()

	for _, fn := range listeners {
		var snapshot *models.User
		if user != nil {
			u := *user
			snapshot = &u
		}
		fn(snapshot)
	}
}

// Login signs in with a provider ID token (social or phone sign-in).
func (a *Adapter) Login(ctx context.Context, idToken string) (*models.User, error) {
	s, err := a.gateway.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return a.SessionChanged(ctx, s), nil
}

func (a *Adapter) LoginWithPassword(ctx context.Context, email, password string) (*models.User, error) {
	s, err := a.gateway.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return a.SessionChanged(ctx, s), nil
}

func (a *Adapter) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	s, err := a.gateway.SignUp(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	return a.SessionChanged(ctx, s), nil
}

func (a *Adapter) Logout(ctx context.Context) error {
	current := a.User()
	if current != nil {
		if err := a.gateway.SignOut(ctx, current.ID); err != nil {
			return err
		}
	}
	a.SessionChanged(ctx, nil)
	return nil
}

// UpdateProfile changes the display name of the signed-in user.
func (a *Adapter) UpdateProfile(ctx context.Context, name string) (*models.User, error) {
	current := a.User()
	if current == nil {
		return nil, ErrNotSignedIn
	}
	if err := a.gateway.UpdateDisplayName(ctx, current.ID, name); err != nil {
		return nil, err
	}
	if a.profiles != nil {
		if err := a.profiles.UpdateDisplayName(ctx, current.ID, name); err != nil {
			a.log.Warn().Err(err).Str("user_id", current.ID).Msg("local display name update failed")
		}
	}
	current.DisplayName = name
	a.set(current)
	return a.User(), nil
}

// Restore resumes a session already established earlier, e.g. from an API token.
func (a *Adapter) Restore(u models.User) {
	a.set(&u)
}
