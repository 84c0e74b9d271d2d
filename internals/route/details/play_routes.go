package details

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	gameRepo "kiezjagd_backend/internals/features/games/games/repository"
	rankingController "kiezjagd_backend/internals/features/play/rankings/controller"
	rankingRoute "kiezjagd_backend/internals/features/play/rankings/route"
	rankingService "kiezjagd_backend/internals/features/play/rankings/service"
	resultController "kiezjagd_backend/internals/features/play/results/controller"
	resultRepo "kiezjagd_backend/internals/features/play/results/repository"
	resultRoute "kiezjagd_backend/internals/features/play/results/route"
	resultService "kiezjagd_backend/internals/features/play/results/service"
	teamController "kiezjagd_backend/internals/features/play/teams/controller"
	teamRepo "kiezjagd_backend/internals/features/play/teams/repository"
	teamRoute "kiezjagd_backend/internals/features/play/teams/route"
	teamService "kiezjagd_backend/internals/features/play/teams/service"
)

func PlayRoutes(api fiber.Router, db *gorm.DB, rdb *redis.Client, rankingTTL time.Duration, guard fiber.Handler) {
	results := resultRepo.NewResultRepository(db)
	rankings := rankingService.NewRankingService(
		results,
		gameRepo.NewGameRepository(db),
		rankingService.NewCache(rdb, rankingTTL),
	)

	rankingRoute.RankingRoutes(api, rankingController.NewRankingController(rankings))
	resultRoute.ResultRoutes(api, resultController.NewResultController(resultService.NewResultService(results, rankings)), guard)
	teamRoute.TeamRoutes(api, teamController.NewTeamController(teamService.NewTeamService(teamRepo.NewTeamRepository(db))))
}
