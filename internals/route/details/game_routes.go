package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gameController "kiezjagd_backend/internals/features/games/games/controller"
	gameRepo "kiezjagd_backend/internals/features/games/games/repository"
	gameRoute "kiezjagd_backend/internals/features/games/games/route"
	gameService "kiezjagd_backend/internals/features/games/games/service"
)

func GameRoutes(api fiber.Router, db *gorm.DB, guard, viewer fiber.Handler) {
	ctrl := gameController.NewGameController(gameService.NewGameService(gameRepo.NewGameRepository(db)))

	gameRoute.GameAdminRoutes(api, ctrl, guard)
	gameRoute.AllGameRoutes(api, ctrl, viewer)
}
