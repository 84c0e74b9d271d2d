package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
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

type OrderStore interface {
	Create(ctx context.Context, o *model.OrderModel) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrderModel, error)
	FindBySessionID(ctx context.Context, sessionID string) (*model.OrderModel, error)
	List(ctx context.Context, q repository.ListQuery) ([]model.OrderModel, int64, error)
	SetSession(ctx context.Context, id uuid.UUID, sessionID string, checkoutURL *string) (int64, error)
	SetDiscount(ctx context.Context, id uuid.UUID, discountType, discountID string) error
	MarkPaid(ctx context.Context, sessionID string, now time.Time) (int64, error)
	MarkFailed(ctx context.Context, id uuid.UUID, now time.Time) (int64, error)
	MarkFailedBySession(ctx context.Context, sessionID string, now time.Time) (int64, error)
	ExpireBefore(ctx context.Context, now time.Time) (int64, error)
}

type GameFinder interface {
	FindByKey(ctx context.Context, key string) (*gamemodel.GameModel, error)
}

type DiscountResolver interface {
	Resolve(ctx context.Context, raw string) (*discount.Discount, error)
}

type InvoiceNumberer interface {
	Next(ctx context.Context, now time.Time) (string, error)
}

type PaymentSessions interface {
	Name() string
	CreateSession(ctx context.Context, req gateway.SessionRequest) (*gateway.Session, error)
	GetSession(ctx context.Context, sessionID string) (*gateway.Session, error)
}

type Deps struct {
	Orders    OrderStore
	Games     GameFinder
	Discounts DiscountResolver
	Invoices  InvoiceNumberer
	Payments  PaymentSessions
	Notifier  notifications.Notifier
}

type Options struct {
	LinkPolicy  configs.LinkPolicy
	Currency    string
	FrontendURL string
}

var (
	errOrderNotFound = apperr.NotFound(apperr.CodeOrderNotFound, "Bestellung nicht gefunden")
	errGameNotFound  = apperr.NotFound(apperr.CodeGameNotFound, "Spiel nicht gefunden")
	errLinkExpired   = apperr.Gone(apperr.CodeLinkExpired, "Der Link ist abgelaufen.")
	errGameInactive  = apperr.Forbidden(apperr.CodeGameInactive, "Dieses Spiel ist derzeit nicht spielbar.")
	errPromoInvalid  = apperr.Invalid(apperr.CodePromoCodeInvalid,
		"Gutscheincode existiert nicht oder ist falsch.")
	errPromoInactive = apperr.Invalid(apperr.CodePromoCodeInvalid,
		"Dieser Gutscheincode ist nicht mehr aktiv (Limit/Ablauf/Deaktivierung).")
	errNotPaid = apperr.Invalid(apperr.CodePaymentNotCompleted, "Zahlung nicht erfolgreich")
)

var (
	emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	validate   = validator.New()
)

type OrderService struct {
	Deps
	opts Options
	now  func() time.Time
}

func NewOrderService(deps Deps, opts Options) *OrderService {
	if opts.Currency == "" {
		opts.Currency = "eur"
	}
	return &OrderService{Deps: deps, opts: opts, now: time.Now}
}

// WithClock replaces the time source (tests).
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

func orderNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errOrderNotFound
	}
	return err
}

/* ====================== CREATE ====================== */

type CreateOrderInput struct {
	GameKey     string
	Email       string
	VoucherCode string
}

// ValidEmail applies the validator rule plus the shape the frontend enforces.
func ValidEmail(email string) bool {
	return emailShape.MatchString(email) && validate.Var(email, "required,email") == nil
}

// CreateOrder persists a pending order and resolves the voucher. An invalid
// or inactive voucher marks the order failed and returns PROMO_CODE_INVALID.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*model.OrderModel, *discount.Discount, error) {
	email := strings.TrimSpace(in.Email)
	key := strings.TrimSpace(in.GameKey)
	if email == "" || key == "" {
		code := apperr.CodeEmailInvalid
		if key == "" {
			code = apperr.CodeGameIDRequired
		}
		return nil, nil, apperr.Invalid(code, "E-Mail und Spiel-ID sind erforderlich.")
	}
	if !ValidEmail(email) {
		return nil, nil, apperr.Invalid(apperr.CodeEmailInvalid, "Bitte gib eine gültige E-Mail-Adresse ein.")
	}

	game, err := s.Games.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errGameNotFound
		}
		return nil, nil, err
	}

	price, err := ParsePrice(game.GamePrice)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	invoice, err := s.Invoices.Next(ctx, now)
	if err != nil {
		return nil, nil, err
	}

	o := &model.OrderModel{
		OrderGameID:          game.GamePublicID,
		OrderGameName:        game.GameName,
		OrderEmail:           email,
		OrderPrice:           price,
		OrderCurrency:        s.opts.Currency,
		OrderPaymentStatus:   model.PaymentPending,
		OrderPaymentProvider: s.Payments.Name(),
		OrderInvoiceNumber:   invoice,
		OrderStartTime:       now,
		OrderEndTime:         now.Add(s.opts.LinkPolicy.Duration),
		OrderLinkPolicy:      s.opts.LinkPolicy.Version,
	}
	if v := strings.TrimSpace(in.VoucherCode); v != "" {
		o.OrderVoucherCode = &v
	}
	if err := s.Orders.Create(ctx, o); err != nil {
		return nil, nil, err
	}

	if o.OrderVoucherCode == nil {
		return o, nil, nil
	}

	d, err := s.Discounts.Resolve(ctx, *o.OrderVoucherCode)
	if err != nil || d == nil {
		s.failOrder(ctx, o.OrderID, now, "voucher")
		if discount.IsInactive(err) {
			return nil, nil, errPromoInactive
		}
		return nil, nil, errPromoInvalid
	}
	if err := s.Orders.SetDiscount(ctx, o.OrderID, string(d.Type), d.ID); err != nil {
		return nil, nil, err
	}
	dt := string(d.Type)
	o.OrderDiscountType = &dt
	o.OrderDiscountID = &d.ID
	return o, d, nil
}

// failOrder flags an order that cannot proceed. The caller already has the
// error the client sees; a storage failure here only gets logged.
func (s *OrderService) failOrder(ctx context.Context, id uuid.UUID, now time.Time, reason string) {
	if _, err := s.Orders.MarkFailed(ctx, id, now); err != nil {
		zap.L().Error("mark order failed",
			zap.String("order_id", id.String()),
			zap.String("reason", reason),
			zap.Error(err))
	}
}

/* ====================== CHECKOUT ====================== */

type CheckoutResult struct {
	OrderID   uuid.UUID
	SessionID string
	URL       string
}

// Checkout creates the order and a hosted payment session for it. A provider
// failure leaves the order pending without a session.
func (s *OrderService) Checkout(ctx context.Context, in CreateOrderInput) (*CheckoutResult, error) {
	o, d, err := s.CreateOrder(ctx, in)
	if err != nil {
		return nil, err
	}

	base := strings.TrimRight(s.opts.FrontendURL, "/")
	req := gateway.SessionRequest{
		OrderRef:      o.OrderID.String(),
		CustomerEmail: o.OrderEmail,
		ItemName:      o.OrderGameName,
		Amount:        o.OrderPrice,
		Currency:      o.OrderCurrency,
		SuccessURL:    base + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     base + "/cancel",
		Metadata: map[string]string{
			"gameId":  o.OrderGameID,
			"orderId": o.OrderID.String(),
		},
	}
	if d != nil {
		switch d.Type {
		case discount.DiscountPromotion:
			req.PromotionCodeID = d.ID
		case discount.DiscountCoupon:
			req.CouponID = d.ID
		}
	}

	sess, err := s.Payments.CreateSession(ctx, req)
	if err != nil {
		return nil, apperr.Upstream("Checkout fehlgeschlagen.", err)
	}

	if err := s.AttachPaymentSession(ctx, o.OrderID, sess.ID, sess.URL); err != nil {
		s.failOrder(ctx, o.OrderID, s.now(), "attach session")
		return nil, err
	}
	return &CheckoutResult{OrderID: o.OrderID, SessionID: sess.ID, URL: sess.URL}, nil
}

// AttachPaymentSession sets the session reference once. Repeating the same id
// is a no-op; a different id on an order that already has one is a conflict.
func (s *OrderService) AttachPaymentSession(ctx context.Context, orderID uuid.UUID, sessionID, checkoutURL string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return apperr.Invalid(apperr.CodeSessionConflict, "session id missing")
	}
	var urlPtr *string
	if checkoutURL != "" {
		urlPtr = &checkoutURL
	}

	n, err := s.Orders.SetSession(ctx, orderID, sessionID, urlPtr)
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	o, err := s.Orders.FindByID(ctx, orderID)
	if err != nil {
		return orderNotFound(err)
	}
	if o.OrderSessionID != nil && *o.OrderSessionID == sessionID {
		return nil
	}
	return apperr.Conflict(apperr.CodeSessionConflict, "order already has a payment session")
}

/* ====================== PAYMENT OUTCOME ====================== */

type ConfirmResult struct {
	Order        *model.OrderModel
	Transitioned bool
	// NotifyErr is set when the order became paid but the link message failed.
	NotifyErr error
}

// ConfirmPayment moves the order behind sessionID to paid exactly once. Only
// the call that performs the transition notifies.
func (s *OrderService) ConfirmPayment(ctx context.Context, sessionID string) (*ConfirmResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, errOrderNotFound
	}

	n, err := s.Orders.MarkPaid(ctx, sessionID, s.now())
	if err != nil {
		return nil, err
	}
	o, err := s.Orders.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, orderNotFound(err)
	}

	res := &ConfirmResult{Order: o, Transitioned: n == 1}
	if res.Transitioned && s.Notifier != nil {
		res.NotifyErr = s.Notifier.SendGameLink(ctx, notifications.GameLinkMessage{
			Email:         o.OrderEmail,
			SessionID:     sessionID,
			GamePublicID:  o.OrderGameID,
			GameName:      o.OrderGameName,
			Price:         o.OrderPrice,
			InvoiceNumber: o.OrderInvoiceNumber,
			Link:          notifications.GameLink(s.opts.FrontendURL, sessionID, o.OrderGameID),
		})
	}
	return res, nil
}

// VerifyPayment asks the provider before confirming; used by the success page.
func (s *OrderService) VerifyPayment(ctx context.Context, sessionID string) (*ConfirmResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, apperr.Invalid(apperr.CodeOrderNotFound, "sessionId ist erforderlich.")
	}
	sess, err := s.Payments.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, errOrderNotFound
		}
		return nil, apperr.Upstream("Zahlung konnte nicht geprüft werden.", err)
	}
	if !sess.Paid {
		return nil, errNotPaid
	}
	return s.ConfirmPayment(ctx, sessionID)
}

// MarkFailed: pending → failed. Paid orders are never reverted, so a false
// result without error means nothing changed.
func (s *OrderService) MarkFailed(ctx context.Context, orderID uuid.UUID) (bool, error) {
	n, err := s.Orders.MarkFailed(ctx, orderID, s.now())
	if err != nil {
		return false, err
	}
	if n == 0 {
		if _, err := s.Orders.FindByID(ctx, orderID); err != nil {
			return false, orderNotFound(err)
		}
	}
	return n == 1, nil
}

func (s *OrderService) MarkFailedBySession(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.Orders.MarkFailedBySession(ctx, sessionID, s.now())
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

/* ====================== LINKS ====================== */

// ValidateLink resolves a play link to its game. Unknown → ORDER_NOT_FOUND,
// past end time or swept → LINK_EXPIRED, game outside its activation window
// or disabled → GAME_INACTIVE.
func (s *OrderService) ValidateLink(ctx context.Context, sessionID string) (string, error) {
	o, err := s.Orders.FindBySessionID(ctx, strings.TrimSpace(sessionID))
	if err != nil {
		return "", orderNotFound(err)
	}
	now := s.now()
	if !o.IsLinkValid(now) {
		return "", errLinkExpired
	}
	g, err := s.Games.FindByKey(ctx, o.OrderGameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errGameNotFound
		}
		return "", err
	}
	if !g.IsPlayableNow(now) {
		return "", errGameInactive
	}
	return o.OrderGameID, nil
}

/* ====================== SWEEP ====================== */

// SweepExpired flags orders past their end time; safe to run repeatedly.
func (s *OrderService) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.Orders.ExpireBefore(ctx, now)
}

/* ====================== ADMIN ====================== */

func (s *OrderService) List(ctx context.Context, q repository.ListQuery) ([]model.OrderModel, int64, error) {
	if q.SearchBy != "gameId" {
		q.SearchBy = "email"
	}
	return s.Orders.List(ctx, q)
}
