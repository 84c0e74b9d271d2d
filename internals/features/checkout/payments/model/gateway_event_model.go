package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GatewayEventStatus string

const (
	GatewayEventReceived  GatewayEventStatus = "received"
	GatewayEventProcessed GatewayEventStatus = "processed"
	GatewayEventIgnored   GatewayEventStatus = "ignored"
	GatewayEventFailed    GatewayEventStatus = "failed"
)

/*
  payment_gateway_events = webhook log
  - one row per provider event id; redeliveries hit the unique index
  - raw headers + payload kept for replay
*/

type GatewayEventModel struct {
	GatewayEventID uuid.UUID `gorm:"column:gateway_event_id;type:uuid;primaryKey" json:"gateway_event_id"`

	GatewayEventProvider   string  `gorm:"column:gateway_event_provider;size:32;not null;uniqueIndex:uq_gw_event_provider_extid,priority:1" json:"gateway_event_provider"`
	GatewayEventExternalID string  `gorm:"column:gateway_event_external_id;not null;uniqueIndex:uq_gw_event_provider_extid,priority:2" json:"gateway_event_external_id"`
	GatewayEventType       string  `gorm:"column:gateway_event_type" json:"gateway_event_type"`
	GatewayEventSessionID  *string `gorm:"column:gateway_event_session_id;index" json:"gateway_event_session_id"`

	GatewayEventHeaders datatypes.JSON `gorm:"column:gateway_event_headers;type:jsonb" json:"gateway_event_headers"`
	GatewayEventPayload datatypes.JSON `gorm:"column:gateway_event_payload;type:jsonb" json:"gateway_event_payload"`

	GatewayEventStatus      GatewayEventStatus `gorm:"column:gateway_event_status;size:16;not null;default:'received'" json:"gateway_event_status"`
	GatewayEventError       *string            `gorm:"column:gateway_event_error" json:"gateway_event_error"`
	GatewayEventReceivedAt  time.Time          `gorm:"column:gateway_event_received_at;not null" json:"gateway_event_received_at"`
	GatewayEventProcessedAt *time.Time         `gorm:"column:gateway_event_processed_at" json:"gateway_event_processed_at"`
}

func (GatewayEventModel) TableName() string {
	return "payment_gateway_events"
}

func (e *GatewayEventModel) BeforeCreate(tx *gorm.DB) error {
	if e.GatewayEventID == uuid.Nil {
		e.GatewayEventID = uuid.New()
	}
	return nil
}

// Settled events need no further processing on redelivery.
func (e *GatewayEventModel) Settled() bool {
	return e.GatewayEventStatus == GatewayEventProcessed || e.GatewayEventStatus == GatewayEventIgnored
}
