package controller

import (
	"github.com/gofiber/fiber/v2"

	"kiezjagd_backend/internals/features/games/games/dto"
	helper "kiezjagd_backend/internals/helpers"
)

// POST /api/games/:publicId/questions (admin)
func (ctrl *GameController) AddQuestion(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	q, err := ctrl.svc.AddQuestion(c.UserContext(), c.Params("publicId"), &req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Frage hinzugefügt", q)
}

// PUT /api/games/:publicId/questions/:questionId (admin)
func (ctrl *GameController) UpdateQuestion(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	q, err := ctrl.svc.UpdateQuestion(c.UserContext(), c.Params("publicId"), c.Params("questionId"), &req)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Frage aktualisiert", q)
}

// DELETE /api/games/:publicId/questions/:questionId (admin)
func (ctrl *GameController) DeleteQuestion(c *fiber.Ctx) error {
	if err := ctrl.svc.DeleteQuestion(c.UserContext(), c.Params("publicId"), c.Params("questionId")); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Frage gelöscht", nil)
}

// POST /api/questions/reorder (admin)
func (ctrl *GameController) ReorderQuestions(c *fiber.Ctx) error {
	var req dto.ReorderQuestionsRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	if err := ctrl.svc.ReorderQuestions(c.UserContext(), req.GameID, req.OrderedIDs); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Fragenreihenfolge erfolgreich aktualisiert.", nil)
}

// POST /api/games/:publicId/verify-location
func (ctrl *GameController) VerifyLocation(c *fiber.Ctx) error {
	var req dto.VerifyLocationRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	resp, err := ctrl.svc.VerifyLocation(c.UserContext(), c.Params("publicId"), req.QuestionID, *req.UserCoordinates)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, resp.Message, resp)
}
