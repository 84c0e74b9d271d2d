package route

import (
	"github.com/gofiber/fiber/v2"

	"kiezjagd_backend/internals/features/play/teams/controller"
)

func TeamRoutes(api fiber.Router, ctrl *controller.TeamController) {
	t := api.Group("/teams")
	t.Post("/", ctrl.Register)
	t.Get("/:gameId/:name", ctrl.FindByName)
}
