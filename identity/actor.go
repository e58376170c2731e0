package identity

import (
	"encoding/json"
	"fmt"

	"github.com/Raj-baniya/copy-of-Giftology/models"
)

type ActorKind string

const (
	KindRegistered ActorKind = "registered"
	KindGuest      ActorKind = "guest"
)

// Actor is whoever is placing an order: a signed-in user or a guest with
// contact details. The zero value is an anonymous guest.
type Actor struct {
	kind  ActorKind
	user  models.User
	guest models.GuestContact
}

func Registered(u models.User) Actor {
	return Actor{kind: KindRegistered, user: u}
}

func Guest(c models.GuestContact) Actor {
	return Actor{kind: KindGuest, guest: c}
}

func (a Actor) Kind() ActorKind {
	if a.kind == "" {
		return KindGuest
	}
	return a.kind
}

func (a Actor) IsRegistered() bool { return a.kind == KindRegistered }

// User returns the registered account, if any.
func (a Actor) User() (models.User, bool) {
	return a.user, a.kind == KindRegistered
}

// GuestContact returns the guest's contact details, if the actor is a guest.
func (a Actor) GuestContact() (models.GuestContact, bool) {
	return a.guest, a.kind != KindRegistered
}

// WithGuestContact replaces a guest's contact details. Registered actors are returned unchanged.
func (a Actor) WithGuestContact(c models.GuestContact) Actor {
	if a.IsRegistered() {
		return a
	}
	return Guest(c)
}

type actorJSON struct {
	Kind  ActorKind            `json:"kind"`
	User  *models.User         `json:"user,omitempty"`
	Guest *models.GuestContact `json:"guest,omitempty"`
}

func (a Actor) MarshalJSON() ([]byte, error) {
	out := actorJSON{Kind: a.Kind()}
	if a.IsRegistered() {
		u := a.user
		out.User = &u
	} else {
		g := a.guest
		out.Guest = &g
	}
	return json.Marshal(out)
}

func (a *Actor) UnmarshalJSON(data []byte) error {
	var in actorJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Kind {
	case KindRegistered:
		if in.User == nil {
			return fmt.Errorf("registered actor without user")
		}
		*a = Registered(*in.User)
	case KindGuest, "":
		var g models.GuestContact
		if in.Guest != nil {
			g = *in.Guest
		}
		*a = Guest(g)
	default:
		return fmt.Errorf("unknown actor kind %q", in.Kind)
	}
	return nil
}
