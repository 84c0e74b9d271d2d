package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kiezjagd_backend/internals/features/games/games/dto"
	"kiezjagd_backend/internals/features/games/games/service"
	helper "kiezjagd_backend/internals/helpers"
	"kiezjagd_backend/internals/middlewares/auth"
)

type GameController struct {
	svc *service.GameService
}

func NewGameController(svc *service.GameService) *GameController {
	return &GameController{svc: svc}
}

// admin view needs both ?admin=true and a valid admin token
func wantsAdmin(c *fiber.Ctx) bool {
	return c.Query("admin") == "true" && auth.IsAdmin(c)
}

func parseGameID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// =======================
// 📄 GET /api/games
// =======================
func (ctrl *GameController) List(c *fiber.Ctx) error {
	items, err := ctrl.svc.List(c.UserContext(), wantsAdmin(c))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", items)
}

// =======================
// 🎲 GET /api/games/random?size=2
// =======================
func (ctrl *GameController) Random(c *fiber.Ctx) error {
	size, _ := strconv.Atoi(c.Query("size", "2"))
	ids, err := ctrl.svc.Random(c.UserContext(), size)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", ids)
}

// =======================
// 🔍 GET /api/games/:publicId
// =======================
func (ctrl *GameController) Get(c *fiber.Ctx) error {
	resp, err := ctrl.svc.Get(c.UserContext(), c.Params("publicId"), wantsAdmin(c))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", resp)
}

// =======================
// ➕ POST /api/games (admin)
// =======================
func (ctrl *GameController) Create(c *fiber.Ctx) error {
	var req dto.UpsertGameRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	g, err := ctrl.svc.Create(c.UserContext(), &req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Spiel erstellt", dto.ToGameResponse(g, g.GameCreatedAt))
}

// =======================
// ✏️ PUT /api/games/:id (admin)
// =======================
func (ctrl *GameController) Update(c *fiber.Ctx) error {
	id, ok := parseGameID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid game id")
	}
	var req dto.UpsertGameRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	g, err := ctrl.svc.Update(c.UserContext(), id, &req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Spiel aktualisiert", dto.ToGameResponse(g, g.GameUpdatedAt))
}

// =======================
// 🗑️ DELETE /api/games/:id (admin)
// =======================
func (ctrl *GameController) Delete(c *fiber.Ctx) error {
	id, ok := parseGameID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid game id")
	}
	if err := ctrl.svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Spiel gelöscht", fiber.Map{"game_id": id})
}

// =======================
// 📑 POST /api/games/:id/copy (admin)
// =======================
func (ctrl *GameController) Copy(c *fiber.Ctx) error {
	id, ok := parseGameID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid game id")
	}
	g, err := ctrl.svc.Copy(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Spiel kopiert", dto.ToGameResponse(g, g.GameCreatedAt))
}
