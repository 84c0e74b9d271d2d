package dto

import (
	"time"

	"github.com/google/uuid"

	"kiezjagd_backend/internals/features/checkout/orders/model"
	"kiezjagd_backend/internals/helpers/dbtime"
)

/* =========================================================
   REQUEST DTOs
   gameId/email/voucherCode keep the names the shop frontend
   has always sent.
========================================================= */

type CreateCheckoutRequest struct {
	GameID      string `json:"gameId"`
	Email       string `json:"email"`
	VoucherCode string `json:"voucherCode"`
}

type VerifyPaymentRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

type CheckoutResponse struct {
	URL       string    `json:"url"`
	SessionID string    `json:"session_id"`
	OrderID   uuid.UUID `json:"order_id"`
}

type ValidateLinkResponse struct {
	Message string `json:"message"`
	GameID  string `json:"gameId"`
}

type OrderResponse struct {
	OrderID            uuid.UUID  `json:"order_id"`
	OrderGameID        string     `json:"order_game_id"`
	OrderGameName      string     `json:"order_game_name"`
	OrderEmail         string     `json:"order_email"`
	OrderPrice         string     `json:"order_price"`
	OrderCurrency      string     `json:"order_currency"`
	OrderVoucherCode   *string    `json:"order_voucher_code"`
	OrderDiscountType  *string    `json:"order_discount_type"`
	OrderPaymentStatus string     `json:"order_payment_status"`
	OrderSessionID     *string    `json:"order_session_id"`
	OrderInvoiceNumber string     `json:"order_invoice_number"`
	OrderIsExpired     bool       `json:"order_is_expired"`
	OrderLinkValid     bool       `json:"order_link_valid"`
	OrderLinkPolicy    string     `json:"order_link_policy"`
	OrderStartTime     time.Time  `json:"order_start_time"`
	OrderEndTime       time.Time  `json:"order_end_time"`
	OrderPaidAt        *time.Time `json:"order_paid_at"`
	OrderCreatedAt     time.Time  `json:"order_created_at"`
}

func ToOrderResponse(m *model.OrderModel, now time.Time) OrderResponse {
	return OrderResponse{
		OrderID:            m.OrderID,
		OrderGameID:        m.OrderGameID,
		OrderGameName:      m.OrderGameName,
		OrderEmail:         m.OrderEmail,
		OrderPrice:         m.OrderPrice.StringFixed(2),
		OrderCurrency:      m.OrderCurrency,
		OrderVoucherCode:   m.OrderVoucherCode,
		OrderDiscountType:  m.OrderDiscountType,
		OrderPaymentStatus: string(m.OrderPaymentStatus),
		OrderSessionID:     m.OrderSessionID,
		OrderInvoiceNumber: m.OrderInvoiceNumber,
		OrderIsExpired:     m.OrderIsExpired,
		OrderLinkValid:     m.IsLinkValid(now),
		OrderLinkPolicy:    m.OrderLinkPolicy,
		OrderStartTime:     dbtime.Local(m.OrderStartTime),
		OrderEndTime:       dbtime.Local(m.OrderEndTime),
		OrderPaidAt:        dbtime.LocalPtr(m.OrderPaidAt),
		OrderCreatedAt:     dbtime.Local(m.OrderCreatedAt),
	}
}

func ToOrderResponses(rows []model.OrderModel, now time.Time) []OrderResponse {
	out := make([]OrderResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToOrderResponse(&rows[i], now))
	}
	return out
}
