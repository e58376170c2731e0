package checkout

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/Raj-baniya/copy-of-Giftology/catalog"
	"github.com/Raj-baniya/copy-of-Giftology/identity"
	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/Raj-baniya/copy-of-Giftology/notify"
	mock_notify "github.com/Raj-baniya/copy-of-Giftology/notify/mock"
	"github.com/Raj-baniya/copy-of-Giftology/repository"
	"github.com/alicebob/miniredis/v2"
	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type fakeLookup map[string]catalog.Item

func (f fakeLookup) Lookup(_ context.Context, ids []string) (map[string]catalog.Item, error) {
	out := make(map[string]catalog.Item)
	for _, id := range ids {
		if it, ok := f[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

// orderLog records every CreateOrder call.
type orderLog struct {
	repository.OrderRepository
	mu     sync.Mutex
	orders []models.Order
	err    error
	delay  time.Duration
}

func (o *orderLog) CreateOrder(_ context.Context, order *models.Order) error {
	time.Sleep(o.delay)
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.orders = append(o.orders, *order)
	return nil
}

type addressLog struct {
	saved []models.Address
	err   error
}

func (a *addressLog) Save(_ context.Context, _ string, addr models.Address) ([]models.Address, error) {
	if a.err != nil {
		return nil, a.err
	}
	a.saved = append(a.saved, addr)
	return a.saved, nil
}

// rendezvousNotifier fails a send unless the other order notification
// starts while it is still in flight.
type rendezvousNotifier struct {
	notify.Gateway
	customerStarted chan struct{}
	operatorStarted chan struct{}
}

func newRendezvousNotifier() *rendezvousNotifier {
	return &rendezvousNotifier{customerStarted: make(chan struct{}), operatorStarted: make(chan struct{})}
}

func await(other chan struct{}) error {
	select {
	case <-other:
		return nil
	case <-time.After(2 * time.Second):
		return errors.New("other notification never started")
	}
}

func (r *rendezvousNotifier) SendCustomerConfirmation(_ context.Context, _ notify.OrderNotice) error {
	close(r.customerStarted)
	return await(r.operatorStarted)
}

func (r *rendezvousNotifier) SendOperatorAlert(_ context.Context, _ notify.OrderNotice) error {
	close(r.operatorStarted)
	return await(r.customerStarted)
}

type feedLog struct{ published []models.Order }

func (f *feedLog) Publish(o models.Order) { f.published = append(f.published, o) }

type ServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	notifier  *mock_notify.MockGateway
	orders    *orderLog
	addresses *addressLog
	feed      *feedLog
	svc       *Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.notifier = mock_notify.NewMockGateway(s.ctrl)
	s.orders = &orderLog{}
	s.addresses = &addressLog{}
	s.feed = &feedLog{}
	s.ctx = context.Background()

	products := fakeLookup{
		"p1": {ID: "p1", Name: "Rose Box", Price: decimal.NewFromInt(500), ImageURL: "/rose.jpg", Category: "flowers"},
		"p2": {ID: "p2", Name: "Mug", Price: decimal.RequireFromString("249.50"), Category: "mugs"},
	}
	s.svc = NewService(products, s.orders, s.addresses, s.notifier, NewMemoryStore(time.Hour), s.feed, Options{
		FastDeliveryFee:        decimal.NewFromInt(100),
		StandardDeliveryWindow: "Delivery in 5-7 days",
		FastDeliveryWindow:     "Delivery in 1-2 days",
		MaxProofWidth:          64,
	}, zerolog.Nop())
}

func (s *ServiceSuite) expectNotifications(customerErr, operatorErr error) {
	s.notifier.EXPECT().SendCustomerConfirmation(gomock.Any(), gomock.Any()).Return(customerErr)
	s.notifier.EXPECT().SendOperatorAlert(gomock.Any(), gomock.Any()).Return(operatorErr)
}

func (s *ServiceSuite) toPayment(actor identity.Actor, form ShippingForm) *Session {
	sess, err := s.svc.Begin(s.ctx, actor, []LineRequest{{ProductID: "p1", Quantity: 2}})
	s.Require().NoError(err)
	sess, err = s.svc.SubmitShipping(s.ctx, sess.ID, form)
	s.Require().NoError(err)
	s.Require().Equal(StepPayment, sess.Step)
	return sess
}

func (s *ServiceSuite) TestBeginPricesFromCatalog() {
	sess, err := s.svc.Begin(s.ctx, identity.Guest(models.GuestContact{}), []LineRequest{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
		{ProductID: "gone", Quantity: 3},
		{ProductID: "p2", Quantity: 0},
	})
	s.Require().NoError(err)
	s.Equal(3, sess.Cart.Count())
	s.True(sess.Cart.Total().Equal(decimal.RequireFromString("1249.50")))

	loaded, err := s.svc.Get(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(StepShipping, loaded.Step)
}

func (s *ServiceSuite) TestBeginWithEmptyCart() {
	_, err := s.svc.Begin(s.ctx, identity.Guest(models.GuestContact{}), []LineRequest{{ProductID: "gone", Quantity: 1}})
	s.ErrorIs(err, ErrEmptyCart)
}

func (s *ServiceSuite) TestCashOnDeliveryWithFastDelivery() {
	s.expectNotifications(nil, nil)
	sess := s.toPayment(identity.Registered(models.User{ID: "u1", Email: "asha@example.com"}), validForm())

	res, err := s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "cod", FastDelivery: true})
	s.Require().NoError(err)

	s.Require().Len(s.orders.orders, 1)
	order := s.orders.orders[0]
	s.True(order.Total.Equal(decimal.NewFromInt(1100)))
	s.True(order.DeliveryFee.Equal(decimal.NewFromInt(100)))
	s.Require().Len(order.Items, 1)
	s.Equal(2, order.Items[0].Quantity)
	s.True(order.ItemsTotal().Equal(decimal.NewFromInt(1000)))
	s.Require().NotNil(order.UserID)
	s.Equal("u1", *order.UserID)
	s.Nil(order.GuestInfo)
	s.Equal(models.OrderStatusProcessing, order.Status)

	s.Equal(StepConfirmation, res.Session.Step)
	s.True(res.Session.Cart.Empty())
	s.Equal(SuccessMessage, res.Session.Message)
	s.Equal(2, res.Notified)
	s.Len(s.feed.published, 1)

	stored, err := s.svc.Get(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(StepConfirmation, stored.Step)
	s.Equal(order.ID, stored.OrderID)
}

func (s *ServiceSuite) TestGuestOrderCarriesContact() {
	s.expectNotifications(nil, nil)
	sess := s.toPayment(identity.Guest(models.GuestContact{}), validForm())

	_, err := s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "cod"})
	s.Require().NoError(err)

	order := s.orders.orders[0]
	s.Nil(order.UserID)
	s.Require().NotNil(order.GuestInfo)
	s.Equal("asha@example.com", order.GuestInfo.Email)
	s.True(order.Total.Equal(decimal.NewFromInt(1000)))
}

func (s *ServiceSuite) TestUPIRequiresProof() {
	sess := s.toPayment(identity.Guest(models.GuestContact{}), validForm())

	_, err := s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "upi"})
	s.Require().Error(err)
	s.True(IsValidation(err))
	s.Empty(s.orders.orders)

	s.expectNotifications(nil, nil)
	res, err := s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "upi", Proof: []byte("%PDF-1.4 receipt")})
	s.Require().NoError(err)
	s.Equal(StepConfirmation, res.Session.Step)
	s.Equal([]byte("%PDF-1.4 receipt"), s.orders.orders[0].PaymentProof)
}

func (s *ServiceSuite) TestUnknownPaymentMethod() {
	sess := s.toPayment(identity.Guest(models.GuestContact{}), validForm())
	_, err := s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "card"})
	s.True(IsValidation(err))
}

func (s *ServiceSuite) TestOneNotificationFailingStillSucceeds() {
	s.expectNotifications(errors.New("template missing"), nil)
	sess := s.toPayment(identity.Guest(models.GuestContact{}), validForm())

	res, err := s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "cod"})
	s.Require().NoError(err)
	s.Equal(1, res.Notified)
	s.Equal(SuccessMessage, res.Session.Message)
	s.Len(s.orders.orders, 1)
}

func (s *ServiceSuite) TestAllNotificationsFailingIsDegraded() {
	s.expectNotifications(errors.New("down"), errors.New("down"))
	sess := s.toPayment(identity.Guest(models.GuestContact{}), validForm())

	res, err := s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "cod"})
	s.Require().NoError(err)
	s.Equal(0, res.Notified)
	s.Equal(DegradedMessage, res.Session.Message)
	s.Equal(StepConfirmation, res.Session.Step)
	s.Len(s.orders.orders, 1)
}

func (s *ServiceSuite) TestOrderWriteFailureKeepsPaymentStep() {
	s.orders.err = errors.New("connection reset")
	sess := s.toPayment(identity.Guest(models.GuestContact{}), validForm())

	_, err := s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "cod"})
	s.ErrorIs(err, ErrOrderNotPlaced)

	stored, err := s.svc.Get(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(StepPayment, stored.Step)
	s.Equal(2, stored.Cart.Count())
	s.Empty(s.feed.published)

	s.orders.err = nil
	s.expectNotifications(nil, nil)
	_, err = s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "cod"})
	s.NoError(err)
}

func (s *ServiceSuite) TestConcurrentSubmitsPlaceOneOrder() {
	s.orders.delay = 50 * time.Millisecond
	s.expectNotifications(nil, nil)
	sess := s.toPayment(identity.Guest(models.GuestContact{}), validForm())

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "cod"})
		}(i)
	}
	wg.Wait()

	placed := 0
	for _, err := range errs {
		if err == nil {
			placed++
			continue
		}
		s.ErrorIs(err, ErrWrongStep)
	}
	s.Equal(1, placed)
	s.Len(s.orders.orders, 1)

	stored, err := s.svc.Get(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(StepConfirmation, stored.Step)
}

func (s *ServiceSuite) TestBackIsRefusedWhileOrderIsPlaced() {
	sess := s.toPayment(identity.Guest(models.GuestContact{}), validForm())
	store := s.svc.sessions
	_, err := store.Update(s.ctx, sess.ID, (*Session).claim)
	s.Require().NoError(err)

	_, err = s.svc.Back(s.ctx, sess.ID)
	s.ErrorIs(err, ErrWrongStep)
	_, err = s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "cod"})
	s.ErrorIs(err, ErrWrongStep)
	s.Empty(s.orders.orders)
}

func (s *ServiceSuite) TestBackReturnsToShipping() {
	sess := s.toPayment(identity.Guest(models.GuestContact{}), validForm())
	back, err := s.svc.Back(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(StepShipping, back.Step)
	s.Require().NotNil(back.Shipping)

	stored, err := s.svc.Get(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(StepShipping, stored.Step)
}

func (s *ServiceSuite) TestNotificationsAreSentTogether() {
	notifier := newRendezvousNotifier()
	s.svc.notifier = notifier
	sess := s.toPayment(identity.Guest(models.GuestContact{}), validForm())

	res, err := s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "cod"})
	s.Require().NoError(err)
	s.Equal(2, res.Notified)
	s.Equal(SuccessMessage, res.Session.Message)
}

func (s *ServiceSuite) TestSavesAddressForRegisteredOnly() {
	s.expectNotifications(nil, nil)
	form := validForm()
	form.SaveAddress = true
	sess := s.toPayment(identity.Registered(models.User{ID: "u1"}), form)
	_, err := s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "cod"})
	s.Require().NoError(err)
	s.Len(s.addresses.saved, 1)

	s.expectNotifications(nil, nil)
	sess = s.toPayment(identity.Guest(models.GuestContact{}), form)
	_, err = s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "cod"})
	s.Require().NoError(err)
	s.Len(s.addresses.saved, 1)
}

func (s *ServiceSuite) TestAddressSaveFailureIsNotFatal() {
	s.addresses.err = errors.New("unique violation")
	s.expectNotifications(nil, nil)
	form := validForm()
	form.SaveAddress = true
	sess := s.toPayment(identity.Registered(models.User{ID: "u1"}), form)

	res, err := s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "cod"})
	s.Require().NoError(err)
	s.Equal(StepConfirmation, res.Session.Step)
}

func (s *ServiceSuite) TestNoticeContents() {
	s.notifier.EXPECT().SendCustomerConfirmation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n notify.OrderNotice) error {
			s.Equal("Asha", n.FirstName())
			s.Equal("Delivery in 1-2 days", n.DeliveryDate())
			s.Equal("asha@example.com", n.CustomerEmail)
			s.True(n.Total.Equal(decimal.NewFromInt(1100)))
			s.Require().Len(n.Lines, 1)
			return nil
		})
	s.notifier.EXPECT().SendOperatorAlert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n notify.OrderNotice) error {
			s.Equal("9876543210", n.CustomerPhone)
			s.Equal("cod", n.PaymentMethod)
			s.Contains(n.DeliveryDetails, "1 MG Road, Mumbai, MH - 400001")
			return nil
		})

	form := validForm()
	form.Email = ""
	sess := s.toPayment(identity.Registered(models.User{ID: "u1", Email: "asha@example.com"}), form)
	_, err := s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "cod", FastDelivery: true})
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestPaymentBeforeShipping() {
	sess, err := s.svc.Begin(s.ctx, identity.Guest(models.GuestContact{}), []LineRequest{{ProductID: "p1", Quantity: 1}})
	s.Require().NoError(err)
	_, err = s.svc.SubmitPayment(s.ctx, sess.ID, PaymentInput{Method: "cod"})
	s.ErrorIs(err, ErrWrongStep)

	_, err = s.svc.SubmitPayment(s.ctx, "missing", PaymentInput{Method: "cod"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func TestNormalizeProofShrinksWideImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	img.Set(10, 10, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out, ct := NormalizeProof(buf.Bytes(), 50)
	assert.Equal(t, "image/png", ct)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 50, decoded.Bounds().Dx())
	assert.Equal(t, 25, decoded.Bounds().Dy())

	same, _ := NormalizeProof(buf.Bytes(), 500)
	assert.Equal(t, buf.Bytes(), same)

	raw := []byte("not an image")
	kept, ct := NormalizeProof(raw, 50)
	assert.Equal(t, raw, kept)
	assert.Equal(t, "text/plain; charset=utf-8", ct)
}

func TestRedisSessionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	ctx := context.Background()

	sess := newSession(identity.Registered(models.User{ID: "u1", Email: "a@example.com"}))
	require.NoError(t, store.Save(ctx, sess))

	back, err := store.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, back.Cart.Count())
	u, ok := back.Actor.User()
	require.True(t, ok)
	assert.Equal(t, "u1", u.ID)

	mr.FastForward(2 * time.Minute)
	_, err = store.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStoreExpires(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	sess := newSession(identity.Guest(models.GuestContact{}))
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Load(ctx, sess.ID)
	require.NoError(t, err)
	loaded.Cart.Clear()
	again, err := store.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, again.Cart.Empty())

	now = now.Add(2 * time.Minute)
	_, err = store.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStoresUpdateAtomically(t *testing.T) {
	mr := miniredis.RunT(t)
	stores := map[string]SessionStore{
		"memory": NewMemoryStore(time.Minute),
		"redis":  NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			sess := newSession(identity.Guest(models.GuestContact{}))
			require.NoError(t, sess.SubmitShipping(validForm()))
			require.NoError(t, store.Save(ctx, sess))

			claimed, err := store.Update(ctx, sess.ID, (*Session).claim)
			require.NoError(t, err)
			assert.Equal(t, StepPlacing, claimed.Step)

			_, err = store.Update(ctx, sess.ID, (*Session).claim)
			assert.ErrorIs(t, err, ErrWrongStep)

			stored, err := store.Load(ctx, sess.ID)
			require.NoError(t, err)
			assert.Equal(t, StepPlacing, stored.Step)

			_, err = store.Update(ctx, "missing", (*Session).claim)
			assert.ErrorIs(t, err, ErrSessionNotFound)
		})
	}
}
