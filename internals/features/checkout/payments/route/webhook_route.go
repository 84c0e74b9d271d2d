package route

import (
	"github.com/gofiber/fiber/v2"

	"kiezjagd_backend/internals/features/checkout/payments/controller"
)

// Webhooks are public; providers authenticate via signatures.
func WebhookRoutes(api fiber.Router, ctrl *controller.WebhookController) {
	api.Post("/checkout/webhook", ctrl.Stripe)
	api.Post("/checkout/midtrans/webhook", ctrl.Midtrans)
}
