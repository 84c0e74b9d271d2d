package route

import (
	"github.com/gofiber/fiber/v2"

	"kiezjagd_backend/internals/features/play/rankings/controller"
)

// RankingRoutes must be mounted before the games catalog so
// /games/rankings/top8 is not read as a public id.
func RankingRoutes(api fiber.Router, ctrl *controller.RankingController) {
	api.Get("/rankings/top8", ctrl.Top8)

	g := api.Group("/games")
	g.Get("/rankings/top8", ctrl.Top8)
	g.Get("/:publicId/top8", ctrl.GameTop8)
	g.Get("/:publicId/ranking", ctrl.GameRanking)
}
