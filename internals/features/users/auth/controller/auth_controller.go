package controller

import (
	"github.com/gofiber/fiber/v2"

	"kiezjagd_backend/internals/features/users/auth/dto"
	"kiezjagd_backend/internals/features/users/auth/service"
	helper "kiezjagd_backend/internals/helpers"
	"kiezjagd_backend/internals/middlewares/auth"
)

type AuthController struct {
	svc *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

// =======================
// 🔐 POST /api/auth/login
// =======================
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	res, err := ac.svc.Login(req.Username, req.Password)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Login erfolgreich", res)
}

// =======================
// ✅ GET /api/auth/validate (behind AdminOnly)
// =======================
func (ac *AuthController) Validate(c *fiber.Ctx) error {
	username, _ := c.Locals(auth.LocalUsername).(string)
	return helper.JsonOK(c, "ok", dto.ValidateResponse{
		Valid:    true,
		Username: username,
		IsAdmin:  auth.IsAdmin(c),
	})
}
