// Package notifications delivers the redeemable play link after payment.
package notifications

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type GameLinkMessage struct {
	Email         string
	SessionID     string
	GamePublicID  string
	GameName      string
	Price         decimal.Decimal
	InvoiceNumber string
	Link          string
}

type Notifier interface {
	SendGameLink(ctx context.Context, msg GameLinkMessage) error
}

// GameLink builds FRONTEND_URL/game/{sessionId}/{gameId}.
func GameLink(frontendURL, sessionID, gamePublicID string) string {
	return strings.TrimRight(frontendURL, "/") + "/game/" + sessionID + "/" + gamePublicID
}

// LogNotifier records the message instead of sending it. Mail transport
// lives outside this service.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.L()
	}
	return &LogNotifier{log: log.Named("notify")}
}

func (n *LogNotifier) SendGameLink(_ context.Context, msg GameLinkMessage) error {
	n.log.Info("game link ready",
		zap.String("email", msg.Email),
		zap.String("session_id", msg.SessionID),
		zap.String("game_id", msg.GamePublicID),
		zap.String("game_name", msg.GameName),
		zap.String("price", msg.Price.StringFixed(2)),
		zap.String("invoice", msg.InvoiceNumber),
		zap.String("link", msg.Link),
	)
	return nil
}
