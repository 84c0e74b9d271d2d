package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kiezjagd_backend/internals/features/checkout/orders/dto"
	"kiezjagd_backend/internals/features/checkout/orders/repository"
	"kiezjagd_backend/internals/features/checkout/orders/service"
	helper "kiezjagd_backend/internals/helpers"
)

type OrderController struct {
	svc *service.OrderService
	now func() time.Time
}

func NewOrderController(svc *service.OrderService) *OrderController {
	return &OrderController{svc: svc, now: time.Now}
}

// =======================
// 🛒 POST /api/order/create-checkout-session
// =======================
func (ctrl *OrderController) CreateCheckoutSession(c *fiber.Ctx) error {
	var req dto.CreateCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	res, err := ctrl.svc.Checkout(c.UserContext(), service.CreateOrderInput{
		GameKey:     req.GameID,
		Email:       req.Email,
		VoucherCode: req.VoucherCode,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Checkout erstellt", dto.CheckoutResponse{
		URL:       res.URL,
		SessionID: res.SessionID,
		OrderID:   res.OrderID,
	})
}

// =======================
// ✅ POST /api/order/verify-payment
// =======================
func (ctrl *OrderController) VerifyPayment(c *fiber.Ctx) error {
	var req dto.VerifyPaymentRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	res, err := ctrl.svc.VerifyPayment(c.UserContext(), req.SessionID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if res.NotifyErr != nil {
		zap.L().Error("send game link", zap.String("session_id", req.SessionID), zap.Error(res.NotifyErr))
	}

	msg := "Zahlung verifiziert, Spiel-Link versendet"
	if !res.Transitioned {
		msg = "Zahlung bereits verifiziert"
	}
	return helper.JsonOK(c, msg, dto.ToOrderResponse(res.Order, ctrl.now()))
}

// =======================
// 🔗 GET /api/order/validate-link/:sessionId
// =======================
func (ctrl *OrderController) ValidateLink(c *fiber.Ctx) error {
	gameID, err := ctrl.svc.ValidateLink(c.UserContext(), c.Params("sessionId"))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Der Link ist gültig.", dto.ValidateLinkResponse{
		Message: "Der Link ist gültig.",
		GameID:  gameID,
	})
}

// =======================
// 📄 GET /api/order/orders (admin)
// ?page=&limit=&search=&searchBy=email|gameId&sort=-createdAt
// =======================
func (ctrl *OrderController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	rows, total, err := ctrl.svc.List(c.UserContext(), repository.ListQuery{
		Search:   c.Query("search"),
		SearchBy: c.Query("searchBy", "email"),
		Sort:     c.Query("sort", "-createdAt"),
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "ok",
		dto.ToOrderResponses(rows, ctrl.now()),
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
