package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	invoicemodel "kiezjagd_backend/internals/features/checkout/invoices/model"
	ordermodel "kiezjagd_backend/internals/features/checkout/orders/model"
	paymentmodel "kiezjagd_backend/internals/features/checkout/payments/model"
	gamemodel "kiezjagd_backend/internals/features/games/games/model"
	resultmodel "kiezjagd_backend/internals/features/play/results/model"
	teammodel "kiezjagd_backend/internals/features/play/teams/model"
)

// Migrate creates or extends the tables and their unique indexes.
func Migrate(db *gorm.DB) error {
	models := []any{
		&gamemodel.GameModel{},
		&ordermodel.OrderModel{},
		&invoicemodel.InvoiceCounterModel{},
		&paymentmodel.GatewayEventModel{},
		&teammodel.TeamModel{},
		&resultmodel.ResultModel{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	zap.L().Info("schema migrated", zap.Int("tables", len(models)))
	return nil
}
