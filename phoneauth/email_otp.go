package phoneauth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/Raj-baniya/copy-of-Giftology/notify"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	codeDigits  = 6
	// maxAttempts wrong codes discard the handle.
	maxAttempts = 5
)

// EmailOTP sends a six digit code by email. Codes are stored hashed.
type EmailOTP struct {
	store    CodeStore
	notifier notify.Gateway
	ttl      time.Duration
	generate func() (string, error)
}

var _ Verifier = (*EmailOTP)(nil)

func NewEmailOTP(store CodeStore, notifier notify.Gateway, ttl time.Duration) *EmailOTP {
	return &EmailOTP{store: store, notifier: notifier, ttl: ttl, generate: randomCode}
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}

func (v *EmailOTP) SendCode(ctx context.Context, to Recipient) (Handle, error) {
	if !strings.Contains(to.Email, "@") {
		return "", fmt.Errorf("a valid email is required to receive the code")
	}

	code, err := v.generate()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash code: %w", err)
	}

	h := Handle(uuid.NewString())
	if err := v.store.Save(ctx, h, entry{Hash: string(hash), Recipient: to}, v.ttl); err != nil {
		return "", fmt.Errorf("store code: %w", err)
	}

	err = v.notifier.SendVerificationCode(ctx, notify.CodeNotice{
		Email:     to.Email,
		Name:      to.Name,
		Code:      code,
		ExpiresIn: v.ttl,
	})
	if err != nil {
		_, _ = v.store.Delete(ctx, h)
		return "", fmt.Errorf("send code: %w", err)
	}
	return h, nil
}

func (v *EmailOTP) Confirm(ctx context.Context, h Handle, code string) (Recipient, error) {
	e, err := v.store.Load(ctx, h)
	if errors.Is(err, errNoEntry) {
		return Recipient{}, ErrCodeExpired
	}
	if err != nil {
		return Recipient{}, err
	}

	if e.Attempts >= maxAttempts {
		_, _ = v.store.Delete(ctx, h)
		return Recipient{}, ErrTooManyAttempts
	}

	code = strings.TrimSpace(code)
	if len(code) != codeDigits || bcrypt.CompareHashAndPassword([]byte(e.Hash), []byte(code)) != nil {
		return Recipient{}, v.fail(ctx, h)
	}

	removed, err := v.store.Delete(ctx, h)
	if err != nil {
		return Recipient{}, err
	}
	if !removed {
		return Recipient{}, ErrCodeExpired
	}
	return e.Recipient, nil
}

func (v *EmailOTP) fail(ctx context.Context, h Handle) error {
	n, err := v.store.Fail(ctx, h)
	if errors.Is(err, errNoEntry) {
		return ErrCodeExpired
	}
	if err != nil {
		return err
	}
	if n < maxAttempts {
		return ErrInvalidCode
	}
	if _, err := v.store.Delete(ctx, h); err != nil {
		return err
	}
	return ErrTooManyAttempts
}
