package route

import (
	"github.com/gofiber/fiber/v2"

	"kiezjagd_backend/internals/features/play/results/controller"
)

// ResultRoutes: submitting is public, listing carries contact emails and
// sits behind the admin guard.
func ResultRoutes(api fiber.Router, ctrl *controller.ResultController, guard fiber.Handler) {
	r := api.Group("/results")
	r.Post("/", ctrl.Submit)
	r.Get("/", guard, ctrl.List)
	r.Get("/:gameId", guard, ctrl.ListByGame)
}
