package controller

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	orderservice "kiezjagd_backend/internals/features/checkout/orders/service"
	"kiezjagd_backend/internals/features/checkout/payments/gateway"
	"kiezjagd_backend/internals/features/checkout/payments/model"
	helper "kiezjagd_backend/internals/helpers"
	"kiezjagd_backend/internals/helpers/apperr"
)

type EventLog interface {
	Record(ctx context.Context, ev *model.GatewayEventModel) (*model.GatewayEventModel, error)
	Finish(ctx context.Context, id uuid.UUID, status model.GatewayEventStatus, errMsg string, now time.Time) error
}

type PaymentOutcomes interface {
	ConfirmPayment(ctx context.Context, sessionID string) (*orderservice.ConfirmResult, error)
	MarkFailedBySession(ctx context.Context, sessionID string) (bool, error)
}

type StripeWebhookParser interface {
	ParseWebhook(payload []byte, signature string) (*gateway.WebhookEvent, error)
}

type MidtransWebhookParser interface {
	ParseWebhook(payload []byte) (*gateway.WebhookEvent, error)
}

type WebhookController struct {
	events   EventLog
	outcomes PaymentOutcomes
	stripe   StripeWebhookParser
	midtrans MidtransWebhookParser
	log      *zap.Logger
	now      func() time.Time
}

// NewWebhookController: stripe or midtrans may be nil when that provider is
// not configured; its endpoint then answers 404.
func NewWebhookController(events EventLog, outcomes PaymentOutcomes, stripe StripeWebhookParser, midtrans MidtransWebhookParser, log *zap.Logger) *WebhookController {
	if log == nil {
		log = zap.L()
	}
	return &WebhookController{
		events:   events,
		outcomes: outcomes,
		stripe:   stripe,
		midtrans: midtrans,
		log:      log.Named("webhook"),
		now:      time.Now,
	}
}

// =======================
// 💳 Stripe
// =======================
func (h *WebhookController) Stripe(c *fiber.Ctx) error {
	if h.stripe == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "stripe not configured")
	}
	payload := append([]byte(nil), c.Body()...)
	ev, err := h.stripe.ParseWebhook(payload, c.Get("Stripe-Signature"))
	if err != nil {
		h.log.Warn("stripe webhook rejected", zap.Error(err))
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid webhook")
	}
	return h.handle(c, ev)
}

// =======================
// 💳 Midtrans
// =======================
func (h *WebhookController) Midtrans(c *fiber.Ctx) error {
	if h.midtrans == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "midtrans not configured")
	}
	payload := append([]byte(nil), c.Body()...)
	ev, err := h.midtrans.ParseWebhook(payload)
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidSignature) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "invalid signature")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	return h.handle(c, ev)
}

// handle logs the event once and applies it. Redelivered events that were
// already settled are acknowledged without touching the order again.
func (h *WebhookController) handle(c *fiber.Ctx, ev *gateway.WebhookEvent) error {
	ctx := c.UserContext()

	row := &model.GatewayEventModel{
		GatewayEventProvider:   ev.Provider,
		GatewayEventExternalID: ev.ID,
		GatewayEventType:       ev.Type,
		GatewayEventHeaders:    headersJSON(c),
		GatewayEventPayload:    datatypes.JSON(ev.Payload),
		GatewayEventStatus:     model.GatewayEventReceived,
		GatewayEventReceivedAt: h.now(),
	}
	if ev.SessionID != "" {
		row.GatewayEventSessionID = &ev.SessionID
	}

	stored, err := h.events.Record(ctx, row)
	if err != nil {
		h.log.Error("record event", zap.String("event_id", ev.ID), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	if stored.Settled() {
		return helper.JsonOK(c, "duplicate", fiber.Map{"received": true, "duplicate": true})
	}

	status, procErr := h.apply(ctx, ev)
	errMsg := ""
	if procErr != nil {
		errMsg = procErr.Error()
	}
	if err := h.events.Finish(ctx, stored.GatewayEventID, status, errMsg, h.now()); err != nil {
		h.log.Warn("finish event", zap.String("event_id", ev.ID), zap.Error(err))
	}

	if status == model.GatewayEventFailed {
		// non-2xx makes the provider redeliver
		return helper.JsonError(c, fiber.StatusInternalServerError, "")
	}
	return helper.JsonOK(c, string(status), fiber.Map{"received": true})
}

func (h *WebhookController) apply(ctx context.Context, ev *gateway.WebhookEvent) (model.GatewayEventStatus, error) {
	switch ev.Kind {
	case gateway.EventPaid:
		res, err := h.outcomes.ConfirmPayment(ctx, ev.SessionID)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				h.log.Warn("paid event for unknown session", zap.String("session_id", ev.SessionID))
				return model.GatewayEventIgnored, err
			}
			h.log.Error("confirm payment", zap.String("session_id", ev.SessionID), zap.Error(err))
			return model.GatewayEventFailed, err
		}
		if res.NotifyErr != nil {
			h.log.Error("send game link", zap.String("session_id", ev.SessionID), zap.Error(res.NotifyErr))
		}
		h.log.Info("payment confirmed",
			zap.String("session_id", ev.SessionID),
			zap.Bool("transitioned", res.Transitioned))
		return model.GatewayEventProcessed, nil

	case gateway.EventFailed:
		changed, err := h.outcomes.MarkFailedBySession(ctx, ev.SessionID)
		if err != nil {
			h.log.Error("mark failed", zap.String("session_id", ev.SessionID), zap.Error(err))
			return model.GatewayEventFailed, err
		}
		h.log.Info("payment failed", zap.String("session_id", ev.SessionID), zap.Bool("changed", changed))
		return model.GatewayEventProcessed, nil

	default:
		return model.GatewayEventIgnored, nil
	}
}

func headersJSON(c *fiber.Ctx) datatypes.JSON {
	headers := map[string]string{}
	for k, v := range c.GetReqHeaders() {
		headers[k] = strings.Join(v, ",")
	}
	b, err := sonic.Marshal(headers)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(b)
}
