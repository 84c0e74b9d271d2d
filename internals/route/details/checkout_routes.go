package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	orderController "kiezjagd_backend/internals/features/checkout/orders/controller"
	orderRoute "kiezjagd_backend/internals/features/checkout/orders/route"
	orderService "kiezjagd_backend/internals/features/checkout/orders/service"
	paymentController "kiezjagd_backend/internals/features/checkout/payments/controller"
	paymentRepo "kiezjagd_backend/internals/features/checkout/payments/repository"
	paymentRoute "kiezjagd_backend/internals/features/checkout/payments/route"
)

type CheckoutDeps struct {
	DB            *gorm.DB
	Orders        *orderService.OrderService
	StripeHooks   paymentController.StripeWebhookParser
	MidtransHooks paymentController.MidtransWebhookParser
	Log           *zap.Logger
}

func CheckoutRoutes(api fiber.Router, d CheckoutDeps, checkoutLimiter, guard fiber.Handler) {
	orderRoute.OrderRoutes(api, orderController.NewOrderController(d.Orders), checkoutLimiter, guard)

	hooks := paymentController.NewWebhookController(
		paymentRepo.NewGatewayEventRepository(d.DB),
		d.Orders,
		d.StripeHooks,
		d.MidtransHooks,
		d.Log,
	)
	paymentRoute.WebhookRoutes(api, hooks)
}
