package checkout

import (
	"errors"
	"strings"
	"time"

	"github.com/Raj-baniya/copy-of-Giftology/cart"
	"github.com/Raj-baniya/copy-of-Giftology/identity"
	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/shopspring/decimal"
)

type Step string

const (
	StepShipping     Step = "shipping"
	StepPayment      Step = "payment"
	// StepPlacing holds the session while its order is being written.
	StepPlacing      Step = "placing"
	StepConfirmation Step = "confirmation"
)

var (
	ErrEmptyCart       = errors.New("your cart is empty")
	ErrWrongStep       = errors.New("this step is not available right now")
	ErrSessionNotFound = errors.New("checkout session not found or expired")
	ErrOrderNotPlaced  = errors.New("could not place your order, please try again")
)

type ShippingForm struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required_if=Guest true,omitempty,email"`
	Phone       string `json:"phone" validate:"required,len=10,number"`
	Street      string `json:"street" validate:"required"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state" validate:"required"`
	Zip         string `json:"zip" validate:"required,len=6,number"`
	SaveAddress bool   `json:"save_address"`

	// Guest is set by the workflow, not the client.
	Guest bool `json:"-"`
}

func (f ShippingForm) trimmed() ShippingForm {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Street = strings.TrimSpace(f.Street)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.Zip = strings.TrimSpace(f.Zip)
	return f
}

func (f ShippingForm) Address() models.Address {
	return models.Address{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Phone:     f.Phone,
		Street:    f.Street,
		City:      f.City,
		State:     f.State,
		Zip:       f.Zip,
	}
}

// Validate returns the first broken rule as a *ValidationError.
func (f ShippingForm) Validate() error {
	if err := validate.Struct(f); err != nil {
		return firstViolation(err)
	}
	return nil
}

type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// Session is one pass through Shipping → Payment → Confirmation.
type Session struct {
	ID       string         `json:"id"`
	Actor    identity.Actor `json:"actor"`
	Cart     cart.Cart      `json:"cart"`
	Step     Step           `json:"step"`
	Shipping *ShippingForm  `json:"shipping,omitempty"`
	OrderID  string         `json:"order_id,omitempty"`
	Message  string         `json:"message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Totals prices the cart, adding fee when fast delivery is chosen.
func (s *Session) Totals(fee decimal.Decimal, fast bool) Totals {
	t := Totals{Subtotal: s.Cart.Total(), DeliveryFee: decimal.Zero}
	if fast {
		t.DeliveryFee = fee
	}
	t.Total = t.Subtotal.Add(t.DeliveryFee)
	return t
}

// SubmitShipping validates form and moves to Payment. On error nothing changes.
func (s *Session) SubmitShipping(form ShippingForm) error {
	if s.Step != StepShipping {
		return ErrWrongStep
	}
	if s.Cart.Empty() {
		return ErrEmptyCart
	}

	form = form.trimmed()
	form.Guest = !s.Actor.IsRegistered()
	if err := form.Validate(); err != nil {
		return err
	}

	if form.Guest {
		s.Actor = s.Actor.WithGuestContact(models.GuestContact{
			Name:  form.Address().FullName(),
			Email: form.Email,
			Phone: form.Phone,
		})
	}
	s.Shipping = &form
	s.Step = StepPayment
	return nil
}

// Back returns from Payment to Shipping. The stored form is kept for editing
// and is validated again on the next submit.
func (s *Session) Back() error {
	if s.Step != StepPayment {
		return ErrWrongStep
	}
	s.Step = StepShipping
	return nil
}

// claim marks a ready Payment session as being placed.
func (s *Session) claim() error {
	if s.Step != StepPayment || s.Shipping == nil {
		return ErrWrongStep
	}
	if s.Cart.Empty() {
		return ErrEmptyCart
	}
	s.Step = StepPlacing
	return nil
}

func (s *Session) complete(orderID, message string) {
	s.Cart.Clear()
	s.Step = StepConfirmation
	s.OrderID = orderID
	s.Message = message
}
