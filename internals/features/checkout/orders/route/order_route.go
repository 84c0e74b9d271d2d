package route

import (
	"github.com/gofiber/fiber/v2"

	"kiezjagd_backend/internals/features/checkout/orders/controller"
)

// OrderRoutes: checkout is rate limited separately; /orders is admin only.
func OrderRoutes(api fiber.Router, ctrl *controller.OrderController, checkoutLimiter, guard fiber.Handler) {
	o := api.Group("/order")
	o.Post("/create-checkout-session", checkoutLimiter, ctrl.CreateCheckoutSession)
	o.Post("/verify-payment", ctrl.VerifyPayment)
	o.Get("/validate-link/:sessionId", ctrl.ValidateLink)
	o.Get("/orders", guard, ctrl.List)
}
