package gateway

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

// MidtransGateway uses Snap for hosted payment pages. The Midtrans order_id
// is our order id, so it doubles as the session id.
type MidtransGateway struct {
	snap      snap.Client
	core      coreapi.Client
	serverKey string
	timeout   time.Duration
}

// Midtrans settles in whole rupiah only.
const midtransCurrency = "IDR"

func checkMidtransCurrency(currency string) error {
	if !strings.EqualFold(strings.TrimSpace(currency), midtransCurrency) {
		return fmt.Errorf("%w: midtrans accepts %s, got %q", ErrCurrencyUnsupported, midtransCurrency, currency)
	}
	return nil
}

// NewMidtrans fails for any shop currency other than IDR.
func NewMidtrans(serverKey, currency string, production bool, timeout time.Duration) (*MidtransGateway, error) {
	if err := checkMidtransCurrency(currency); err != nil {
		return nil, err
	}
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	g := &MidtransGateway{serverKey: serverKey, timeout: timeout}
	g.snap.New(serverKey, env)
	g.core.New(serverKey, env)
	return g, nil
}

func (g *MidtransGateway) Name() string { return ProviderMidtrans }

func (g *MidtransGateway) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	if err := checkMidtransCurrency(req.Currency); err != nil {
		return nil, err
	}
	amount := MinorUnits(req.Amount, midtransCurrency)
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderRef,
			GrossAmt: amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.CustomerEmail,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:       req.Metadata["gameId"],
			Name:     truncate(req.ItemName, 50),
			Price:    amount,
			Qty:      1,
			Category: "game",
		}},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		CustomField1: req.Metadata["gameId"],
	}

	type result struct {
		resp *snap.Response
		err  error
	}
	res, err := callWithTimeout(ctx, g.timeout, func() result {
		resp, mErr := g.snap.CreateTransaction(snapReq)
		if mErr != nil {
			return result{err: mErr}
		}
		return result{resp: resp}
	})
	if err != nil {
		return nil, err
	}
	if res.err != nil {
		return nil, res.err
	}
	return &Session{
		ID:          req.OrderRef,
		URL:         res.resp.RedirectURL,
		AmountTotal: amount,
		Metadata:    req.Metadata,
	}, nil
}

func (g *MidtransGateway) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	type result struct {
		resp *coreapi.TransactionStatusResponse
		err  error
	}
	res, err := callWithTimeout(ctx, g.timeout, func() result {
		resp, mErr := g.core.CheckTransaction(sessionID)
		if mErr != nil {
			if mErr.StatusCode == 404 {
				return result{err: fmt.Errorf("%w: %v", ErrNotFound, mErr)}
			}
			return result{err: mErr}
		}
		return result{resp: resp}
	})
	if err != nil {
		return nil, err
	}
	if res.err != nil {
		return nil, res.err
	}
	return &Session{
		ID:   sessionID,
		Paid: MapMidtransStatus(res.resp.TransactionStatus, res.resp.FraudStatus) == EventPaid,
	}, nil
}

func (g *MidtransGateway) FindPromotionCode(context.Context, string, bool) (*PromotionCode, error) {
	return nil, ErrDiscountUnsupported
}

func (g *MidtransGateway) GetCoupon(context.Context, string) (*Coupon, error) {
	return nil, ErrDiscountUnsupported
}

/* ===================== WEBHOOK ===================== */

type midtransNotification struct {
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	FraudStatus       string `json:"fraud_status"`
	TransactionID     string `json:"transaction_id"`
}

// ParseWebhook checks signature_key = sha512(order_id+status_code+gross_amount+serverKey).
func (g *MidtransGateway) ParseWebhook(payload []byte) (*WebhookEvent, error) {
	var n midtransNotification
	if err := sonic.Unmarshal(payload, &n); err != nil {
		return nil, err
	}
	if !VerifyMidtransSignature(n.OrderID, n.StatusCode, n.GrossAmount, g.serverKey, n.SignatureKey) {
		return nil, ErrInvalidSignature
	}

	id := n.TransactionID
	if id == "" {
		id = n.OrderID
	}
	return &WebhookEvent{
		Provider: ProviderMidtrans,
		// one transaction goes through several statuses
		ID:        id + ":" + n.TransactionStatus,
		Type:      n.TransactionStatus,
		SessionID: n.OrderID,
		Kind:      MapMidtransStatus(n.TransactionStatus, n.FraudStatus),
		Payload:   payload,
	}, nil
}

func VerifyMidtransSignature(orderID, statusCode, grossAmount, serverKey, signature string) bool {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return strings.EqualFold(hex.EncodeToString(sum[:]), strings.TrimSpace(signature))
}

func MapMidtransStatus(txStatus, fraudStatus string) EventKind {
	switch strings.ToLower(txStatus) {
	case "capture":
		if fraudStatus == "" || strings.EqualFold(fraudStatus, "accept") {
			return EventPaid
		}
		return EventIgnored
	case "settlement":
		return EventPaid
	case "deny", "cancel", "expire", "failure":
		return EventFailed
	default:
		return EventIgnored
	}
}

// callWithTimeout bounds a blocking SDK call without context support.
func callWithTimeout[T any](ctx context.Context, d time.Duration, fn func() T) (T, error) {
	ctx, cancel := withTimeout(ctx, d)
	defer cancel()

	ch := make(chan T, 1)
	go func() { ch <- fn() }()

	select {
	case v := <-ch:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
