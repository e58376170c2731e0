package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/Raj-baniya/copy-of-Giftology/cart"
	"github.com/Raj-baniya/copy-of-Giftology/catalog"
	"github.com/Raj-baniya/copy-of-Giftology/identity"
	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/Raj-baniya/copy-of-Giftology/notify"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	SuccessMessage  = "Order placed successfully! A confirmation email is on its way."
	DegradedMessage = "Order placed, but notification may have failed."
)

// ProductLookup prices cart lines against the live catalog.
type ProductLookup interface {
	Lookup(ctx context.Context, ids []string) (map[string]catalog.Item, error)
}

type AddressSaver interface {
	Save(ctx context.Context, userID string, addr models.Address) ([]models.Address, error)
}

// OrderFeed receives every order placed, e.g. the admin live view.
type OrderFeed interface {
	Publish(o models.Order)
}

type Options struct {
	FastDeliveryFee        decimal.Decimal
	StandardDeliveryWindow string
	FastDeliveryWindow     string
	MaxProofWidth          uint
}

type Service struct {
	products  ProductLookup
	orders    repository.OrderRepository
	addresses AddressSaver
	notifier  notify.Gateway
	sessions  SessionStore
	feed      OrderFeed
	opts      Options
	log       zerolog.Logger
	now       func() time.Time
}

func NewService(
	products ProductLookup,
	orders repository.OrderRepository,
	addresses AddressSaver,
	notifier notify.Gateway,
	sessions SessionStore,
	feed OrderFeed,
	opts Options,
	log zerolog.Logger,
) *Service {
	return &Service{
		products:  products,
		orders:    orders,
		addresses: addresses,
		notifier:  notifier,
		sessions:  sessions,
		feed:      feed,
		opts:      opts,
		log:       log.With().Str("component", "checkout").Logger(),
		now:       time.Now,
	}
}

// LineRequest is a cart line as the browser holds it. Only the id and
// quantity are trusted; prices come from the catalog.
type LineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// PriceCart builds a cart from lines at current catalog prices. Unknown or
// inactive products and non-positive quantities are dropped.
func PriceCart(ctx context.Context, products ProductLookup, lines []LineRequest) (*cart.Cart, error) {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	items, err := products.Lookup(ctx, ids)
	if err != nil {
		return nil, err
	}

	c := cart.New()
	for _, l := range lines {
		item, ok := items[l.ProductID]
		if !ok || l.Quantity <= 0 {
			continue
		}
		c.Add(item.CartProduct())
		c.UpdateQuantity(item.ID, l.Quantity-1)
	}
	return c, nil
}

// Begin opens a checkout for actor over the given cart lines.
func (s *Service) Begin(ctx context.Context, actor identity.Actor, lines []LineRequest) (*Session, error) {
	c, err := PriceCart(ctx, s.products, lines)
	if err != nil {
		return nil, fmt.Errorf("price cart: %w", err)
	}
	if c.Empty() {
		return nil, ErrEmptyCart
	}

	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		Actor:     actor,
		Cart:      *c,
		Step:      StepShipping,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.sessions.Load(ctx, id)
}

func (s *Service) Totals(sess *Session, fast bool) Totals {
	return sess.Totals(s.opts.FastDeliveryFee, fast)
}

func (s *Service) save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Service) SubmitShipping(ctx context.Context, id string, form ShippingForm) (*Session, error) {
	sess, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sess.SubmitShipping(form); err != nil {
		return sess, err
	}
	return sess, s.save(ctx, sess)
}

// Back returns a session from Payment to Shipping. It cannot undo a submit in progress.
func (s *Service) Back(ctx context.Context, id string) (*Session, error) {
	return s.sessions.Update(ctx, id, func(sess *Session) error {
		if err := sess.Back(); err != nil {
			return err
		}
		sess.UpdatedAt = s.now()
		return nil
	})
}

type PaymentInput struct {
	Method       string
	FastDelivery bool
	Proof        []byte
}

type Result struct {
	Session *Session
	Order   *models.Order
	// Notified counts the notification sends that succeeded (0, 1 or 2).
	Notified int
}

// SubmitPayment places the order. Only a failed order write is an error;
// the session then stays in Payment with its cart intact.
func (s *Service) SubmitPayment(ctx context.Context, id string, in PaymentInput) (*Result, error) {
	sess, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Step != StepPayment || sess.Shipping == nil {
		return nil, ErrWrongStep
	}
	if sess.Cart.Empty() {
		return nil, ErrEmptyCart
	}

	method, ok := models.ParsePaymentMethod(in.Method)
	if !ok {
		return nil, invalid("Please choose a payment method")
	}
	if method == models.PaymentMethodUPI && len(in.Proof) == 0 {
		return nil, invalid("Please upload the payment screenshot to continue")
	}

	// only one submit per session gets past here
	sess, err = s.sessions.Update(ctx, id, (*Session).claim)
	if err != nil {
		return nil, err
	}

	order := s.buildOrder(sess, method, in)

	// the order must not be lost because the client went away mid-request
	ctx = context.WithoutCancel(ctx)

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		s.log.Error().Err(err).Str("session_id", sess.ID).Msg("order write failed")
		sess.Step = StepPayment
		if serr := s.save(ctx, sess); serr != nil {
			s.log.Error().Err(serr).Str("session_id", sess.ID).Msg("could not release session after failed order write")
		}
		return nil, fmt.Errorf("%w: %v", ErrOrderNotPlaced, err)
	}
	s.log.Info().Str("order_id", order.ID).Str("total", order.Total.StringFixed(2)).Str("payment", string(method)).Msg("order placed")

	s.saveAddress(ctx, sess)

	notified := s.dispatch(ctx, sess, order)
	message := SuccessMessage
	if notified == 0 {
		message = DegradedMessage
	}

	sess.complete(order.ID, message)
	if err := s.save(ctx, sess); err != nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("could not persist confirmed session")
	}

	if s.feed != nil {
		s.feed.Publish(*order)
	}

	return &Result{Session: sess, Order: order, Notified: notified}, nil
}

func (s *Service) buildOrder(sess *Session, method models.PaymentMethod, in PaymentInput) *models.Order {
	totals := s.Totals(sess, in.FastDelivery)

	order := &models.Order{
		ID:              uuid.NewString(),
		DeliveryFee:     totals.DeliveryFee,
		FastDelivery:    in.FastDelivery,
		Total:           totals.Total,
		Status:          models.OrderStatusProcessing,
		ShippingAddress: sess.Shipping.Address(),
		PaymentMethod:   method,
		CreatedAt:       s.now(),
	}
	if len(in.Proof) > 0 {
		order.PaymentProof, order.PaymentProofType = NormalizeProof(in.Proof, s.opts.MaxProofWidth)
	}

	if user, ok := sess.Actor.User(); ok {
		owner := user.ID
		order.UserID = &owner
	} else {
		guest, _ := sess.Actor.GuestContact()
		order.GuestInfo = &guest
	}

	for _, l := range sess.Cart.Lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   l.ID,
			ProductName: l.Name,
			Image:       l.ImageURL,
			UnitPrice:   l.Price,
			Quantity:    l.Quantity,
		})
	}
	return order
}

// saveAddress stores the shipping address on a registered user's profile when asked.
func (s *Service) saveAddress(ctx context.Context, sess *Session) {
	user, ok := sess.Actor.User()
	if !ok || !sess.Shipping.SaveAddress || s.addresses == nil {
		return
	}
	if _, err := s.addresses.Save(ctx, user.ID, sess.Shipping.Address()); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("address save failed")
	}
}

func (s *Service) notice(sess *Session, order *models.Order) notify.OrderNotice {
	window := s.opts.StandardDeliveryWindow
	if order.FastDelivery {
		window = s.opts.FastDeliveryWindow
	}

	email := sess.Shipping.Email
	if user, ok := sess.Actor.User(); ok && email == "" {
		email = user.Email
	}

	n := notify.OrderNotice{
		OrderID:         order.ID,
		CustomerName:    order.ShippingAddress.FullName(),
		CustomerEmail:   email,
		CustomerPhone:   order.ShippingAddress.Phone,
		Total:           order.Total,
		PaymentMethod:   string(order.PaymentMethod),
		DeliveryDetails: window + " | " + order.ShippingAddress.String(),
	}
	for _, it := range order.Items {
		n.Lines = append(n.Lines, notify.OrderLine{Name: it.ProductName, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return n
}

// dispatch sends the customer confirmation and the operator alert at the same
// time, waits for both and returns how many succeeded.
func (s *Service) dispatch(ctx context.Context, sess *Session, order *models.Order) int {
	n := s.notice(sess, order)

	var customerErr, operatorErr error
	var g errgroup.Group
	g.Go(func() error {
		customerErr = s.notifier.SendCustomerConfirmation(ctx, n)
		return nil
	})
	g.Go(func() error {
		operatorErr = s.notifier.SendOperatorAlert(ctx, n)
		return nil
	})
	_ = g.Wait()

	sent := 0
	for _, r := range []struct {
		name string
		err  error
	}{{"customer", customerErr}, {"operator", operatorErr}} {
		if r.err != nil {
			s.log.Warn().Err(r.err).Str("order_id", order.ID).Str("recipient", r.name).Msg("notification failed")
			continue
		}
		s.log.Info().Str("order_id", order.ID).Str("recipient", r.name).Msg("notification sent")
		sent++
	}
	return sent
}
