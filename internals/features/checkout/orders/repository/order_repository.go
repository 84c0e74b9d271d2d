package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kiezjagd_backend/internals/features/checkout/orders/model"
	helper "kiezjagd_backend/internals/helpers"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type ListQuery struct {
	Search   string
	SearchBy string // email | gameId
	Sort     string // e.g. -createdAt
	Limit    int
	Offset   int
}

var orderSortColumns = map[string]string{
	"createdAt":     "order_created_at",
	"email":         "order_email",
	"gameId":        "order_game_id",
	"gameName":      "order_game_name",
	"price":         "order_price",
	"paymentStatus": "order_payment_status",
	"endTime":       "order_end_time",
}

/* ====================== READ ====================== */

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.OrderModel, error) {
	var o model.OrderModel
	if err := r.db.WithContext(ctx).First(&o, "order_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) FindBySessionID(ctx context.Context, sessionID string) (*model.OrderModel, error) {
	var o model.OrderModel
	if err := r.db.WithContext(ctx).First(&o, "order_session_id = ?", sessionID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context, q ListQuery) ([]model.OrderModel, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.OrderModel{})
	if s := strings.TrimSpace(q.Search); s != "" {
		col := "order_email"
		if q.SearchBy == "gameId" {
			col = "order_game_id"
		}
		tx = tx.Where(col+" ILIKE ?", "%"+escapeLike(s)+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []model.OrderModel
	err := tx.
		Order(helper.SafeOrderClause(q.Sort, orderSortColumns, "-createdAt")).
		Order("order_id DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

/* ====================== WRITE ====================== */

func (r *OrderRepository) Create(ctx context.Context, o *model.OrderModel) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// SetSession fills the session reference only while it is still empty.
func (r *OrderRepository) SetSession(ctx context.Context, id uuid.UUID, sessionID string, checkoutURL *string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("order_id = ? AND order_session_id IS NULL", id).
		Updates(map[string]any{
			"order_session_id":   sessionID,
			"order_checkout_url": checkoutURL,
		})
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) SetDiscount(ctx context.Context, id uuid.UUID, discountType, discountID string) error {
	return r.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("order_id = ?", id).
		Updates(map[string]any{
			"order_discount_type": discountType,
			"order_discount_id":   discountID,
		}).Error
}

// MarkPaid is the single conditional transition to paid; RowsAffected == 1
// means this call performed it.
func (r *OrderRepository) MarkPaid(ctx context.Context, sessionID string, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("order_session_id = ? AND order_payment_status <> ?", sessionID, model.PaymentPaid).
		Updates(map[string]any{
			"order_payment_status": model.PaymentPaid,
			"order_paid_at":        now,
		})
	return res.RowsAffected, res.Error
}

// MarkFailed moves pending → failed only.
func (r *OrderRepository) MarkFailed(ctx context.Context, id uuid.UUID, now time.Time) (int64, error) {
	return r.markFailed(ctx, "order_id = ?", id, now)
}

func (r *OrderRepository) MarkFailedBySession(ctx context.Context, sessionID string, now time.Time) (int64, error) {
	return r.markFailed(ctx, "order_session_id = ?", sessionID, now)
}

func (r *OrderRepository) markFailed(ctx context.Context, cond string, arg any, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where(cond, arg).
		Where("order_payment_status = ?", model.PaymentPending).
		Updates(map[string]any{
			"order_payment_status": model.PaymentFailed,
			"order_failed_at":      now,
		})
	return res.RowsAffected, res.Error
}

// ExpireBefore flags every order whose end time has passed.
func (r *OrderRepository) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("order_end_time < ? AND order_is_expired = ?", now, false).
		Update("order_is_expired", true)
	return res.RowsAffected, res.Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
