// Package gateway adapts payment providers to the operations checkout needs:
// hosted payment sessions, discount catalog lookups and webhook decoding.
package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ProviderStripe   = "stripe"
	ProviderMidtrans = "midtrans"
)

var (
	// ErrNotFound is returned when the provider has no such session/coupon.
	ErrNotFound = errors.New("gateway: not found")
	// ErrDiscountUnsupported means the provider has no discount catalog.
	ErrDiscountUnsupported = errors.New("gateway: discounts not supported")
	ErrInvalidSignature    = errors.New("gateway: invalid webhook signature")
	ErrCurrencyUnsupported = errors.New("gateway: currency not supported")
)

type PromotionCode struct {
	ID       string
	Code     string
	Active   bool
	CouponID string
}

type Coupon struct {
	ID    string
	Valid bool
}

type SessionRequest struct {
	OrderRef      string // our order id, echoed back by the provider
	CustomerEmail string
	ItemName      string
	Amount        decimal.Decimal
	Currency      string

	PromotionCodeID string
	CouponID        string

	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

type Session struct {
	ID          string
	URL         string
	Paid        bool
	AmountTotal int64
	Metadata    map[string]string
}

type EventKind int

const (
	EventIgnored EventKind = iota
	EventPaid
	EventFailed
)

// WebhookEvent is a provider notification reduced to what the order
// lifecycle reacts to.
type WebhookEvent struct {
	Provider  string
	ID        string // provider event id, dedupe key
	Type      string
	SessionID string
	Kind      EventKind
	Payload   []byte
}

type Gateway interface {
	Name() string
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)

	// FindPromotionCode returns nil, nil when no code matches.
	FindPromotionCode(ctx context.Context, code string, activeOnly bool) (*PromotionCode, error)
	GetCoupon(ctx context.Context, id string) (*Coupon, error)
}

// withTimeout bounds ctx by d when d > 0.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// MinorUnits converts an amount into the provider's smallest currency unit.
func MinorUnits(amount decimal.Decimal, currency string) int64 {
	if zeroDecimalCurrency(currency) {
		return amount.Round(0).IntPart()
	}
	return amount.Shift(2).Round(0).IntPart()
}

func zeroDecimalCurrency(currency string) bool {
	switch currency {
	case "idr", "IDR", "jpy", "JPY", "krw", "KRW":
		return true
	}
	return false
}
