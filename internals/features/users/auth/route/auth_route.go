package route

import (
	"github.com/gofiber/fiber/v2"

	"kiezjagd_backend/internals/features/users/auth/controller"
)

func AuthRoutes(api fiber.Router, ctrl *controller.AuthController, loginLimiter, guard fiber.Handler) {
	a := api.Group("/auth")
	a.Post("/login", loginLimiter, ctrl.Login)
	a.Get("/validate", guard, ctrl.Validate)
}
