package controller

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"kiezjagd_backend/internals/features/play/teams/dto"
	"kiezjagd_backend/internals/features/play/teams/service"
	helper "kiezjagd_backend/internals/helpers"
)

type TeamController struct {
	svc *service.TeamService
}

func NewTeamController(svc *service.TeamService) *TeamController {
	return &TeamController{svc: svc}
}

// =======================
// 👥 POST /api/teams
// =======================
func (ctrl *TeamController) Register(c *fiber.Ctx) error {
	var req dto.RegisterTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	team, err := ctrl.svc.Register(c.UserContext(), &req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Team gespeichert", dto.ToTeamResponse(team))
}

// =======================
// 🔍 GET /api/teams/:gameId/:name
// =======================
func (ctrl *TeamController) FindByName(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid team name")
	}
	team, err := ctrl.svc.FindByName(c.UserContext(), c.Params("gameId"), name)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ToTeamResponse(team))
}
