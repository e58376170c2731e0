// Package addressbook keeps the shipping addresses saved on a user's profile.
package addressbook

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
)

var ErrIncompleteAddress = errors.New("all address fields are required")

type Book struct {
	store repository.ProfileRepository
}

func New(store repository.ProfileRepository) *Book {
	return &Book{store: store}
}

// Get returns the user's addresses, oldest first. Never nil.
func (b *Book) Get(ctx context.Context, userID string) ([]models.Address, error) {
	saved, err := b.store.ListAddresses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	out := make([]models.Address, 0, len(saved))
	for _, s := range saved {
		out = append(out, s.Address())
	}
	return out, nil
}

// Save adds addr to the user's book unless an address with the same street,
// city, state and zip is already there, and returns the resulting book.
func (b *Book) Save(ctx context.Context, userID string, addr models.Address) ([]models.Address, error) {
	addr = trim(addr)
	if !complete(addr) {
		return nil, ErrIncompleteAddress
	}

	current, err := b.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, existing := range current {
		if existing.SameLocation(addr) {
			return current, nil
		}
	}

	row := models.NewSavedAddress(userID, addr)
	added, err := b.store.AddAddress(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("save address: %w", err)
	}
	if !added {
		// a concurrent save won the unique index
		return b.Get(ctx, userID)
	}
	return append(current, addr), nil
}

func trim(a models.Address) models.Address {
	return models.Address{
		FirstName: strings.TrimSpace(a.FirstName),
		LastName:  strings.TrimSpace(a.LastName),
		Phone:     strings.TrimSpace(a.Phone),
		Street:    strings.TrimSpace(a.Street),
		City:      strings.TrimSpace(a.City),
		State:     strings.TrimSpace(a.State),
		Zip:       strings.TrimSpace(a.Zip),
	}
}

func complete(a models.Address) bool {
	for _, f := range []string{a.FirstName, a.LastName, a.Phone, a.Street, a.City, a.State, a.Zip} {
		if f == "" {
			return false
		}
	}
	return true
}
