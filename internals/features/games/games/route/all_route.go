package route

import (
	"github.com/gofiber/fiber/v2"

	"kiezjagd_backend/internals/features/games/games/controller"
)

// AllGameRoutes registers the player-facing catalog. viewer is
// auth.OptionalAdmin so ?admin=true works for logged-in admins.
// /random must stay ahead of /:publicId.
func AllGameRoutes(api fiber.Router, ctrl *controller.GameController, viewer fiber.Handler) {
	g := api.Group("/games")
	g.Get("/", viewer, ctrl.List)
	g.Get("/random", ctrl.Random)
	g.Get("/:publicId", viewer, ctrl.Get)
	g.Post("/:publicId/verify-location", ctrl.VerifyLocation)
}
