package controller

import (
	"github.com/gofiber/fiber/v2"

	"kiezjagd_backend/internals/features/play/rankings/dto"
	"kiezjagd_backend/internals/features/play/rankings/scoring"
	"kiezjagd_backend/internals/features/play/rankings/service"
	helper "kiezjagd_backend/internals/helpers"
)

type RankingController struct {
	svc *service.RankingService
}

func NewRankingController(svc *service.RankingService) *RankingController {
	return &RankingController{svc: svc}
}

// =======================
// 🏆 GET /api/rankings/top8?ids=a,b,c
// 🏆 GET /api/games/rankings/top8?ids=a,b,c
// =======================
func (ctrl *RankingController) Top8(c *fiber.Ctx) error {
	ids := service.SplitIDs(c.Query("ids"))
	if len(ids) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "ids query parameter is required")
	}
	top, err := ctrl.svc.TopN(c.UserContext(), ids, scoring.DefaultTopN)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.TopListResponse(top))
}

// =======================
// 🏆 GET /api/games/:publicId/top8
// =======================
func (ctrl *RankingController) GameTop8(c *fiber.Ctx) error {
	return ctrl.gameTop(c, scoring.DefaultTopN)
}

// =======================
// 🏆 GET /api/games/:publicId/ranking
// =======================
func (ctrl *RankingController) GameRanking(c *fiber.Ctx) error {
	return ctrl.gameTop(c, service.RankingSize)
}

func (ctrl *RankingController) gameTop(c *fiber.Ctx, n int) error {
	top, err := ctrl.svc.GameTop(c.UserContext(), c.Params("publicId"), n)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", top)
}
