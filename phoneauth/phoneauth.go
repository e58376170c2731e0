// Package phoneauth verifies that a visitor controls the contact they entered
// by sending a one-time code and confirming it.
package phoneauth

import (
	"context"
	"errors"
)

var (
	ErrInvalidCode = errors.New("invalid verification code")
	ErrCodeExpired = errors.New("verification code expired or already used")

	// ErrTooManyAttempts means the code was discarded; a new one must be requested.
	ErrTooManyAttempts = errors.New("too many incorrect codes, please request a new one")
)

type Recipient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	// RecaptchaToken is required by providers that text the code to Phone.
	RecaptchaToken string `json:"-"`
}

// Handle identifies one outstanding code.
type Handle string

type Verifier interface {
	SendCode(ctx context.Context, to Recipient) (Handle, error)
	// Confirm checks code against h and returns the verified recipient. A
	// confirmed handle cannot be confirmed again.
	Confirm(ctx context.Context, h Handle, code string) (Recipient, error)
}
