package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kiezjagd_backend/internals/features/checkout/payments/model"
	helper "kiezjagd_backend/internals/helpers"
)

type GatewayEventRepository struct {
	db *gorm.DB
}

func NewGatewayEventRepository(db *gorm.DB) *GatewayEventRepository {
	return &GatewayEventRepository{db: db}
}

// Record stores a received event. When the provider already delivered this
// event id the stored row is returned instead.
func (r *GatewayEventRepository) Record(ctx context.Context, ev *model.GatewayEventModel) (*model.GatewayEventModel, error) {
	err := r.db.WithContext(ctx).Create(ev).Error
	if err == nil {
		return ev, nil
	}
	if !helper.IsUniqueViolation(err) {
		return nil, err
	}
	var existing model.GatewayEventModel
	if err := r.db.WithContext(ctx).
		Where("gateway_event_provider = ? AND gateway_event_external_id = ?", ev.GatewayEventProvider, ev.GatewayEventExternalID).
		First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *GatewayEventRepository) Finish(ctx context.Context, id uuid.UUID, status model.GatewayEventStatus, errMsg string, now time.Time) error {
	fields := map[string]any{
		"gateway_event_status":       status,
		"gateway_event_processed_at": now,
	}
	if errMsg != "" {
		fields["gateway_event_error"] = errMsg
	}
	return r.db.WithContext(ctx).
		Model(&model.GatewayEventModel{}).
		Where("gateway_event_id = ?", id).
		Updates(fields).Error
}
