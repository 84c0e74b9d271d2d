package controller

import (
	"github.com/gofiber/fiber/v2"

	"kiezjagd_backend/internals/features/play/results/dto"
	"kiezjagd_backend/internals/features/play/results/service"
	helper "kiezjagd_backend/internals/helpers"
)

type ResultController struct {
	svc *service.ResultService
}

func NewResultController(svc *service.ResultService) *ResultController {
	return &ResultController{svc: svc}
}

// =======================
// 🏁 POST /api/results
// =======================
func (ctrl *ResultController) Submit(c *fiber.Ctx) error {
	var req dto.SubmitResultRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	res, err := ctrl.svc.Submit(c.UserContext(), &req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Ergebnis gespeichert", dto.ToResultResponse(res))
}

// =======================
// 📋 GET /api/results
// =======================
func (ctrl *ResultController) List(c *fiber.Ctx) error {
	rows, err := ctrl.svc.List(c.UserContext())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToResultResponses(rows))
}

// =======================
// 📋 GET /api/results/:gameId
// =======================
func (ctrl *ResultController) ListByGame(c *fiber.Ctx) error {
	rows, err := ctrl.svc.ListByGame(c.UserContext(), c.Params("gameId"))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToResultResponses(rows))
}
