package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

type StripeGateway struct {
	sc            *client.API
	webhookSecret string
	currency      string
	timeout       time.Duration
}

func NewStripe(secretKey, webhookSecret, currency string, timeout time.Duration) *StripeGateway {
	return &StripeGateway{
		sc:            client.New(secretKey, nil),
		webhookSecret: webhookSecret,
		currency:      currency,
		timeout:       timeout,
	}
}

func (g *StripeGateway) Name() string { return ProviderStripe }

func (g *StripeGateway) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	currency := req.Currency
	if currency == "" {
		currency = g.currency
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:     stripe.String(req.CustomerEmail),
		ClientReferenceID: stripe.String(req.OrderRef),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(req.ItemName),
				},
				UnitAmount: stripe.Int64(MinorUnits(req.Amount, currency)),
			},
			Quantity: stripe.Int64(1),
		}},
	}
	// Stripe rejects discounts together with allow_promotion_codes.
	switch {
	case req.PromotionCodeID != "":
		params.Discounts = []*stripe.CheckoutSessionDiscountParams{{PromotionCode: stripe.String(req.PromotionCodeID)}}
	case req.CouponID != "":
		params.Discounts = []*stripe.CheckoutSessionDiscountParams{{Coupon: stripe.String(req.CouponID)}}
	default:
		params.AllowPromotionCodes = stripe.Bool(true)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	s, err := g.sc.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return toSession(s), nil
}

func (g *StripeGateway) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := g.sc.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, mapStripeErr(err)
	}
	return toSession(s), nil
}

func (g *StripeGateway) FindPromotionCode(ctx context.Context, code string, activeOnly bool) (*PromotionCode, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.PromotionCodeListParams{Code: stripe.String(code)}
	if activeOnly {
		params.Active = stripe.Bool(true)
	}
	params.Limit = stripe.Int64(1)
	params.Context = ctx

	it := g.sc.PromotionCodes.List(params)
	for it.Next() {
		pc := it.PromotionCode()
		out := &PromotionCode{ID: pc.ID, Code: pc.Code, Active: pc.Active}
		if pc.Coupon != nil {
			out.CouponID = pc.Coupon.ID
		}
		return out, nil
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

func (g *StripeGateway) GetCoupon(ctx context.Context, id string) (*Coupon, error) {
	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.CouponParams{}
	params.Context = ctx
	c, err := g.sc.Coupons.Get(id, params)
	if err != nil {
		return nil, mapStripeErr(err)
	}
	return &Coupon{ID: c.ID, Valid: c.Valid}, nil
}

// ParseWebhook verifies the Stripe-Signature header and classifies
// checkout session events.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidSignature, err)
	}

	ev := &WebhookEvent{
		Provider: ProviderStripe,
		ID:       event.ID,
		Type:     string(event.Type),
		Payload:  payload,
	}
	if event.Data == nil {
		return ev, nil
	}

	var cs stripe.CheckoutSession
	switch event.Type {
	case "checkout.session.completed",
		"checkout.session.async_payment_succeeded",
		"checkout.session.async_payment_failed",
		"checkout.session.expired":
		if err := sonic.Unmarshal(event.Data.Raw, &cs); err != nil {
			return nil, err
		}
		ev.SessionID = cs.ID
	default:
		return ev, nil
	}

	switch event.Type {
	case "checkout.session.completed":
		// delayed methods complete unpaid and follow up with async_payment_*
		if cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid ||
			cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired {
			ev.Kind = EventPaid
		}
	case "checkout.session.async_payment_succeeded":
		ev.Kind = EventPaid
	case "checkout.session.async_payment_failed", "checkout.session.expired":
		ev.Kind = EventFailed
	}
	return ev, nil
}

func toSession(s *stripe.CheckoutSession) *Session {
	return &Session{
		ID:          s.ID,
		URL:         s.URL,
		Paid:        s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid || s.PaymentStatus == stripe.CheckoutSessionPaymentStatusNoPaymentRequired,
		AmountTotal: s.AmountTotal,
		Metadata:    s.Metadata,
	}
}

func mapStripeErr(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) {
		if se.HTTPStatusCode == http.StatusNotFound || se.Code == stripe.ErrorCodeResourceMissing {
			return errors.Join(ErrNotFound, err)
		}
	}
	return err
}
