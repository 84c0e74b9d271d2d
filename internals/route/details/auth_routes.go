package details

import (
	"github.com/gofiber/fiber/v2"

	"kiezjagd_backend/internals/configs"
	authController "kiezjagd_backend/internals/features/users/auth/controller"
	authRoute "kiezjagd_backend/internals/features/users/auth/route"
	authService "kiezjagd_backend/internals/features/users/auth/service"
)

func AuthRoutes(api fiber.Router, cfg *configs.AppConfig, loginLimiter, guard fiber.Handler) {
	svc := authService.NewAuthService(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecret)
	authRoute.AuthRoutes(api, authController.NewAuthController(svc), loginLimiter, guard)
}
