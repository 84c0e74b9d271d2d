package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

/*
   orders
   - one row per checkout attempt; payment status and link expiry are
     independent (a paid order can hold an expired link)
   - order_session_id is the join key for provider callbacks
*/

type OrderModel struct {
	OrderID uuid.UUID `gorm:"column:order_id;type:uuid;primaryKey" json:"order_id"`

	OrderGameID   string          `gorm:"column:order_game_id;not null;index:idx_orders_game_id" json:"order_game_id"`
	OrderGameName string          `gorm:"column:order_game_name;not null" json:"order_game_name"`
	OrderEmail    string          `gorm:"column:order_email;not null;index:idx_orders_email" json:"order_email"`
	OrderPrice    decimal.Decimal `gorm:"column:order_price;type:numeric(10,2);not null" json:"order_price"`
	OrderCurrency string          `gorm:"column:order_currency;size:3;not null;default:'eur'" json:"order_currency"`

	OrderVoucherCode  *string `gorm:"column:order_voucher_code" json:"order_voucher_code"`
	OrderDiscountType *string `gorm:"column:order_discount_type" json:"order_discount_type"`
	OrderDiscountID   *string `gorm:"column:order_discount_id" json:"order_discount_id"`

	OrderPaymentStatus   PaymentStatus `gorm:"column:order_payment_status;size:16;not null;default:'pending'" json:"order_payment_status"`
	OrderPaymentProvider string        `gorm:"column:order_payment_provider;size:32" json:"order_payment_provider"`
	OrderSessionID       *string       `gorm:"column:order_session_id;uniqueIndex:uq_orders_session_id" json:"order_session_id"`
	OrderCheckoutURL     *string       `gorm:"column:order_checkout_url" json:"order_checkout_url"`
	OrderInvoiceNumber   string        `gorm:"column:order_invoice_number" json:"order_invoice_number"`

	OrderStartTime  time.Time `gorm:"column:order_start_time;not null" json:"order_start_time"`
	OrderEndTime    time.Time `gorm:"column:order_end_time;not null;index:idx_orders_expiry,priority:2" json:"order_end_time"`
	OrderIsExpired  bool      `gorm:"column:order_is_expired;not null;default:false;index:idx_orders_expiry,priority:1" json:"order_is_expired"`
	OrderLinkPolicy string    `gorm:"column:order_link_policy;size:16;not null" json:"order_link_policy"`

	OrderPaidAt   *time.Time `gorm:"column:order_paid_at" json:"order_paid_at"`
	OrderFailedAt *time.Time `gorm:"column:order_failed_at" json:"order_failed_at"`

	OrderCreatedAt time.Time `gorm:"column:order_created_at;autoCreateTime" json:"order_created_at"`
	OrderUpdatedAt time.Time `gorm:"column:order_updated_at;autoUpdateTime" json:"order_updated_at"`
}

func (OrderModel) TableName() string {
	return "orders"
}

func (o *OrderModel) BeforeCreate(tx *gorm.DB) error {
	if o.OrderID == uuid.Nil {
		o.OrderID = uuid.New()
	}
	return nil
}

func (o *OrderModel) IsPaid() bool { return o.OrderPaymentStatus == PaymentPaid }

// IsLinkValid: expired flag or now past end time invalidates; end time itself
// is still valid. Payment status is not considered.
func (o *OrderModel) IsLinkValid(now time.Time) bool {
	if o.OrderIsExpired {
		return false
	}
	return !now.After(o.OrderEndTime)
}
