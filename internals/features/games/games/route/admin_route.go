package route

import (
	"github.com/gofiber/fiber/v2"

	"kiezjagd_backend/internals/features/games/games/controller"
)

// GameAdminRoutes attaches guard (auth.AdminOnly) per route so the public
// /games routes sharing the prefix stay open.
func GameAdminRoutes(api fiber.Router, ctrl *controller.GameController, guard fiber.Handler) {
	g := api.Group("/games")
	g.Post("/", guard, ctrl.Create)
	g.Put("/:id", guard, ctrl.Update)
	g.Delete("/:id", guard, ctrl.Delete)
	g.Post("/:id/copy", guard, ctrl.Copy)

	g.Post("/:publicId/questions", guard, ctrl.AddQuestion)
	g.Put("/:publicId/questions/:questionId", guard, ctrl.UpdateQuestion)
	g.Delete("/:publicId/questions/:questionId", guard, ctrl.DeleteQuestion)

	api.Post("/questions/reorder", guard, ctrl.ReorderQuestions)
}
