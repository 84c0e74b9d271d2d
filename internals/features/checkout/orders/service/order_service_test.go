package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bmizerany/assert"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"kiezjagd_backend/internals/configs"
	discount "kiezjagd_backend/internals/features/checkout/discounts/service"
	"kiezjagd_backend/internals/features/checkout/notifications"
	"kiezjagd_backend/internals/features/checkout/orders/model"
	"kiezjagd_backend/internals/features/checkout/orders/repository"
	"kiezjagd_backend/internals/features/checkout/payments/gateway"
	gamemodel "kiezjagd_backend/internals/features/games/games/model"
	"kiezjagd_backend/internals/helpers/apperr"
)

/* ---------- fakes ---------- */

type memOrders struct {
	rows map[uuid.UUID]*model.OrderModel
}

func newMemOrders() *memOrders { return &memOrders{rows: map[uuid.UUID]*model.OrderModel{}} }

func (m *memOrders) Create(_ context.Context, o *model.OrderModel) error {
	if o.OrderID == uuid.Nil {
		o.OrderID = uuid.New()
	}
	cp := *o
	m.rows[o.OrderID] = &cp
	return nil
}

func (m *memOrders) FindByID(_ context.Context, id uuid.UUID) (*model.OrderModel, error) {
	o, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) bySession(sessionID string) *model.OrderModel {
	for _, o := range m.rows {
		if o.OrderSessionID != nil && *o.OrderSessionID == sessionID {
			return o
		}
	}
	return nil
}

func (m *memOrders) FindBySessionID(_ context.Context, sessionID string) (*model.OrderModel, error) {
	o := m.bySession(sessionID)
	if o == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) List(context.Context, repository.ListQuery) ([]model.OrderModel, int64, error) {
	out := make([]model.OrderModel, 0, len(m.rows))
	for _, o := range m.rows {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (m *memOrders) SetSession(_ context.Context, id uuid.UUID, sessionID string, url *string) (int64, error) {
	o, ok := m.rows[id]
	if !ok || o.OrderSessionID != nil {
		return 0, nil
	}
	o.OrderSessionID = &sessionID
	o.OrderCheckoutURL = url
	return 1, nil
}

func (m *memOrders) SetDiscount(_ context.Context, id uuid.UUID, typ, did string) error {
	o := m.rows[id]
	o.OrderDiscountType, o.OrderDiscountID = &typ, &did
	return nil
}

func (m *memOrders) MarkPaid(_ context.Context, sessionID string, now time.Time) (int64, error) {
	o := m.bySession(sessionID)
	if o == nil || o.OrderPaymentStatus == model.PaymentPaid {
		return 0, nil
	}
	o.OrderPaymentStatus = model.PaymentPaid
	o.OrderPaidAt = &now
	return 1, nil
}

func (m *memOrders) fail(o *model.OrderModel, now time.Time) int64 {
	if o == nil || o.OrderPaymentStatus != model.PaymentPending {
		return 0
	}
	o.OrderPaymentStatus = model.PaymentFailed
	o.OrderFailedAt = &now
	return 1
}

func (m *memOrders) MarkFailed(_ context.Context, id uuid.UUID, now time.Time) (int64, error) {
	return m.fail(m.rows[id], now), nil
}

func (m *memOrders) MarkFailedBySession(_ context.Context, sessionID string, now time.Time) (int64, error) {
	return m.fail(m.bySession(sessionID), now), nil
}

func (m *memOrders) ExpireBefore(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, o := range m.rows {
		if o.OrderEndTime.Before(now) && !o.OrderIsExpired {
			o.OrderIsExpired = true
			n++
		}
	}
	return n, nil
}

type memGames map[string]*gamemodel.GameModel

func (g memGames) FindByKey(_ context.Context, key string) (*gamemodel.GameModel, error) {
	if m, ok := g[key]; ok {
		return m, nil
	}
	for _, m := range g {
		if m.GameID.String() == key {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type stubResolver struct {
	d   *discount.Discount
	err error
}

func (s stubResolver) Resolve(context.Context, string) (*discount.Discount, error) { return s.d, s.err }

type seqInvoices struct{ n int64 }

func (s *seqInvoices) Next(_ context.Context, _ time.Time) (string, error) {
	s.n++
	return fmt.Sprintf("R-20250501-%04d", s.n), nil
}

type fakePayments struct {
	nextID  string
	paid    map[string]bool
	err     error
	lastReq gateway.SessionRequest
}

func (f *fakePayments) Name() string { return "fake" }

func (f *fakePayments) CreateSession(_ context.Context, req gateway.SessionRequest) (*gateway.Session, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &gateway.Session{ID: f.nextID, URL: "https://pay.example/" + f.nextID}, nil
}

func (f *fakePayments) GetSession(_ context.Context, id string) (*gateway.Session, error) {
	paid, ok := f.paid[id]
	if !ok {
		return nil, gateway.ErrNotFound
	}
	return &gateway.Session{ID: id, Paid: paid}, nil
}

type countingNotifier struct {
	sent []notifications.GameLinkMessage
}

func (c *countingNotifier) SendGameLink(_ context.Context, msg notifications.GameLinkMessage) error {
	c.sent = append(c.sent, msg)
	return nil
}

/* ---------- fixture ---------- */

type fixture struct {
	svc      *OrderService
	orders   *memOrders
	payments *fakePayments
	notifier *countingNotifier
	now      time.Time
}

func newFixture(resolver DiscountResolver) *fixture {
	f := &fixture{
		orders:   newMemOrders(),
		payments: &fakePayments{nextID: "sess_1", paid: map[string]bool{}},
		notifier: &countingNotifier{},
		now:      time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	if resolver == nil {
		resolver = stubResolver{}
	}
	games := memGames{
		"pub123": {GameID: uuid.New(), GamePublicID: "pub123", GameName: "Kiez Mitte", GamePrice: "12,90 €",
			GameActivation: &gamemodel.Activation{Enabled: true}},
		"broken": {GameID: uuid.New(), GamePublicID: "broken", GameName: "Kaputt", GamePrice: "auf Anfrage"},
	}
	f.svc = NewOrderService(Deps{
		Orders:    f.orders,
		Games:     games,
		Discounts: resolver,
		Invoices:  &seqInvoices{},
		Payments:  f.payments,
		Notifier:  f.notifier,
	}, Options{
		LinkPolicy:  configs.LinkPolicy{Version: "v3", Duration: 48 * time.Hour},
		FrontendURL: "https://kiezjagd.de",
	}).WithClock(func() time.Time { return f.now })
	return f
}

/* ---------- tests ---------- */

func TestEndToEndPurchase(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	o, d, err := f.svc.CreateOrder(ctx, CreateOrderInput{GameKey: "pub123", Email: "kiez@example.de"})
	assert.Equal(t, nil, err)
	assert.Equal(t, (*discount.Discount)(nil), d)
	assert.Equal(t, true, o.OrderPrice.Equal(decimal.RequireFromString("12.90")))
	assert.Equal(t, model.PaymentPending, o.OrderPaymentStatus)
	assert.Equal(t, f.now.Add(48*time.Hour), o.OrderEndTime)
	assert.Equal(t, "v3", o.OrderLinkPolicy)

	assert.Equal(t, nil, f.svc.AttachPaymentSession(ctx, o.OrderID, "sess_1", ""))

	first, err := f.svc.ConfirmPayment(ctx, "sess_1")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, first.Transitioned)
	assert.Equal(t, model.PaymentPaid, first.Order.OrderPaymentStatus)

	second, err := f.svc.ConfirmPayment(ctx, "sess_1")
	assert.Equal(t, nil, err)
	assert.Equal(t, false, second.Transitioned)
	assert.Equal(t, model.PaymentPaid, second.Order.OrderPaymentStatus)
	assert.Equal(t, 1, len(f.notifier.sent))
	assert.Equal(t, "https://kiezjagd.de/game/sess_1/pub123", f.notifier.sent[0].Link)

	gameID, err := f.svc.ValidateLink(ctx, "sess_1")
	assert.Equal(t, nil, err)
	assert.Equal(t, "pub123", gameID)

	f.now = f.now.Add(49 * time.Hour)
	_, err = f.svc.ValidateLink(ctx, "sess_1")
	assert.Equal(t, apperr.KindGone, apperr.KindOf(err))
}

func TestCreateOrderClientErrors(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	cases := []struct {
		in   CreateOrderInput
		code string
	}{
		{CreateOrderInput{GameKey: "pub123"}, apperr.CodeEmailInvalid},
		{CreateOrderInput{Email: "a@b.de"}, apperr.CodeGameIDRequired},
		{CreateOrderInput{GameKey: "pub123", Email: "not-an-email"}, apperr.CodeEmailInvalid},
		{CreateOrderInput{GameKey: "pub123", Email: "a b@c.de"}, apperr.CodeEmailInvalid},
		{CreateOrderInput{GameKey: "nope", Email: "a@b.de"}, apperr.CodeGameNotFound},
		{CreateOrderInput{GameKey: "broken", Email: "a@b.de"}, apperr.CodePriceInvalid},
	}
	for _, c := range cases {
		_, _, err := f.svc.CreateOrder(ctx, c.in)
		assert.Equal(t, true, apperr.HasCode(err, c.code), c.code, err)
	}
	assert.Equal(t, 0, len(f.orders.rows))
}

func TestCreateOrderByInternalKey(t *testing.T) {
	f := newFixture(nil)
	var internal string
	for _, g := range f.svc.Games.(memGames) {
		if g.GamePublicID == "pub123" {
			internal = g.GameID.String()
		}
	}
	o, _, err := f.svc.CreateOrder(context.Background(), CreateOrderInput{GameKey: internal, Email: "a@b.de"})
	assert.Equal(t, nil, err)
	assert.Equal(t, "pub123", o.OrderGameID)
}

func TestCreateOrderInvalidVoucherFailsOrder(t *testing.T) {
	f := newFixture(stubResolver{})
	_, _, err := f.svc.CreateOrder(context.Background(), CreateOrderInput{GameKey: "pub123", Email: "a@b.de", VoucherCode: "KJ-NOPE"})
	assert.Equal(t, true, apperr.HasCode(err, apperr.CodePromoCodeInvalid))
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	for _, o := range f.orders.rows {
		assert.Equal(t, model.PaymentFailed, o.OrderPaymentStatus)
	}
}

type brokenFailOrders struct {
	*memOrders
}

func (b brokenFailOrders) MarkFailed(context.Context, uuid.UUID, time.Time) (int64, error) {
	return 0, errors.New("connection reset")
}

func TestCreateOrderVoucherFailureLogsStorageError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	defer zap.ReplaceGlobals(zap.New(core))()

	f := newFixture(stubResolver{})
	f.svc.Orders = brokenFailOrders{f.orders}
	_, _, err := f.svc.CreateOrder(context.Background(), CreateOrderInput{GameKey: "pub123", Email: "a@b.de", VoucherCode: "KJ-NOPE"})
	assert.Equal(t, true, apperr.HasCode(err, apperr.CodePromoCodeInvalid))

	entries := logs.FilterMessage("mark order failed").All()
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, "connection reset", entries[0].ContextMap()["error"])
	assert.Equal(t, "voucher", entries[0].ContextMap()["reason"])
}

func TestCreateOrderInactiveVoucher(t *testing.T) {
	f := newFixture(stubResolver{err: discount.ErrPromoInactive})
	_, _, err := f.svc.CreateOrder(context.Background(), CreateOrderInput{GameKey: "pub123", Email: "a@b.de", VoucherCode: "KJ-OLD"})
	e, ok := apperr.As(err)
	assert.Equal(t, true, ok)
	assert.Equal(t, apperr.CodePromoCodeInvalid, e.Code)
	assert.Equal(t, true, strings.Contains(e.Message, "nicht mehr aktiv"))
}

func TestCheckoutPassesDiscountToProvider(t *testing.T) {
	f := newFixture(stubResolver{d: &discount.Discount{Type: discount.DiscountCoupon, ID: "Ni91ZiOn"}})
	res, err := f.svc.Checkout(context.Background(), CreateOrderInput{GameKey: "pub123", Email: "a@b.de", VoucherCode: "Ni91ZiOn"})
	assert.Equal(t, nil, err)
	assert.Equal(t, "sess_1", res.SessionID)
	assert.Equal(t, "Ni91ZiOn", f.payments.lastReq.CouponID)
	assert.Equal(t, "", f.payments.lastReq.PromotionCodeID)
	assert.Equal(t, "pub123", f.payments.lastReq.Metadata["gameId"])
	assert.Equal(t, "https://kiezjagd.de/success?session_id={CHECKOUT_SESSION_ID}", f.payments.lastReq.SuccessURL)

	stored := f.orders.rows[res.OrderID]
	assert.Equal(t, "sess_1", *stored.OrderSessionID)
	assert.Equal(t, "coupon", *stored.OrderDiscountType)
}

func TestCheckoutProviderFailureLeavesPendingOrphan(t *testing.T) {
	f := newFixture(nil)
	f.payments.err = errors.New("stripe: timeout")
	_, err := f.svc.Checkout(context.Background(), CreateOrderInput{GameKey: "pub123", Email: "a@b.de"})
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
	assert.Equal(t, 1, len(f.orders.rows))
	for _, o := range f.orders.rows {
		assert.Equal(t, model.PaymentPending, o.OrderPaymentStatus)
		assert.Equal(t, (*string)(nil), o.OrderSessionID)
	}
}

func TestAttachPaymentSessionIdempotent(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	o, _, _ := f.svc.CreateOrder(ctx, CreateOrderInput{GameKey: "pub123", Email: "a@b.de"})

	assert.Equal(t, nil, f.svc.AttachPaymentSession(ctx, o.OrderID, "sess_1", ""))
	assert.Equal(t, nil, f.svc.AttachPaymentSession(ctx, o.OrderID, "sess_1", ""))
	err := f.svc.AttachPaymentSession(ctx, o.OrderID, "sess_2", "")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	err = f.svc.AttachPaymentSession(ctx, uuid.New(), "sess_3", "")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestConfirmUnknownSession(t *testing.T) {
	f := newFixture(nil)
	_, err := f.svc.ConfirmPayment(context.Background(), "sess_x")
	assert.Equal(t, true, apperr.HasCode(err, apperr.CodeOrderNotFound))
	assert.Equal(t, 0, len(f.notifier.sent))
}

func TestVerifyPayment(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	res, _ := f.svc.Checkout(ctx, CreateOrderInput{GameKey: "pub123", Email: "a@b.de"})

	f.payments.paid[res.SessionID] = false
	_, err := f.svc.VerifyPayment(ctx, res.SessionID)
	assert.Equal(t, true, apperr.HasCode(err, apperr.CodePaymentNotCompleted))

	f.payments.paid[res.SessionID] = true
	out, err := f.svc.VerifyPayment(ctx, res.SessionID)
	assert.Equal(t, nil, err)
	assert.Equal(t, true, out.Transitioned)

	_, err = f.svc.VerifyPayment(ctx, "sess_unknown")
	assert.Equal(t, true, apperr.HasCode(err, apperr.CodeOrderNotFound))
}

func TestMarkFailedNeverRevertsPaid(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	res, _ := f.svc.Checkout(ctx, CreateOrderInput{GameKey: "pub123", Email: "a@b.de"})
	_, _ = f.svc.ConfirmPayment(ctx, res.SessionID)

	changed, err := f.svc.MarkFailed(ctx, res.OrderID)
	assert.Equal(t, nil, err)
	assert.Equal(t, false, changed)
	assert.Equal(t, model.PaymentPaid, f.orders.rows[res.OrderID].OrderPaymentStatus)

	_, err = f.svc.MarkFailed(ctx, uuid.New())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestValidateLinkUnknown(t *testing.T) {
	f := newFixture(nil)
	_, err := f.svc.ValidateLink(context.Background(), "nope")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestValidateLinkOutsideActivationWindow(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	res, err := f.svc.Checkout(ctx, CreateOrderInput{GameKey: "pub123", Email: "a@b.de"})
	assert.Equal(t, nil, err)
	_, _ = f.svc.ConfirmPayment(ctx, res.SessionID)

	game, _ := f.svc.Games.FindByKey(ctx, "pub123")
	until := f.now.Add(time.Hour)
	game.GameActivation = &gamemodel.Activation{Enabled: true, Until: &until}

	gameID, err := f.svc.ValidateLink(ctx, res.SessionID)
	assert.Equal(t, nil, err)
	assert.Equal(t, "pub123", gameID)

	// link still valid for 48h, but the game window closed
	f.now = f.now.Add(2 * time.Hour)
	_, err = f.svc.ValidateLink(ctx, res.SessionID)
	assert.Equal(t, true, apperr.HasCode(err, apperr.CodeGameInactive))
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	game.GameActivation = nil
	_, err = f.svc.ValidateLink(ctx, res.SessionID)
	assert.Equal(t, true, apperr.HasCode(err, apperr.CodeGameInactive))
}

func TestSweepExpiredIdempotent(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	_, _, _ = f.svc.CreateOrder(ctx, CreateOrderInput{GameKey: "pub123", Email: "a@b.de"})
	_, _, _ = f.svc.CreateOrder(ctx, CreateOrderInput{GameKey: "pub123", Email: "b@b.de"})

	n, _ := f.svc.SweepExpired(ctx, f.now.Add(47*time.Hour))
	assert.Equal(t, int64(0), n)
	n, _ = f.svc.SweepExpired(ctx, f.now.Add(49*time.Hour))
	assert.Equal(t, int64(2), n)
	n, _ = f.svc.SweepExpired(ctx, f.now.Add(50*time.Hour))
	assert.Equal(t, int64(0), n)
}
