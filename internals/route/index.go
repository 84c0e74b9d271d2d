// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kiezjagd_backend/internals/configs"
	orderservice "kiezjagd_backend/internals/features/checkout/orders/service"
	paymentcontroller "kiezjagd_backend/internals/features/checkout/payments/controller"
	middlewares "kiezjagd_backend/internals/middlewares"
	"kiezjagd_backend/internals/middlewares/auth"
	routeDetails "kiezjagd_backend/internals/route/details"
)

var startTime time.Time

// Deps are the pieces main builds once and shares with the background jobs.
type Deps struct {
	Config *configs.AppConfig
	DB     *gorm.DB
	Redis  *redis.Client
	Log    *zap.Logger

	Orders *orderservice.OrderService

	// nil when the provider is not configured
	StripeHooks   paymentcontroller.StripeWebhookParser
	MidtransHooks paymentcontroller.MidtransWebhookParser
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()
	log := d.Log.Named("routes")

	BaseRoutes(app, d.DB, d.Redis, d.Config.Env)

	api := app.Group("/api")
	guard := auth.AdminOnly(d.Config.JWTSecret)
	viewer := auth.OptionalAdmin(d.Config.JWTSecret)

	// ===================== AUTH =====================
	log.Info("mounting auth routes")
	routeDetails.AuthRoutes(api, d.Config, middlewares.LoginRateLimiter(), guard)

	// ===================== CHECKOUT =====================
	log.Info("mounting checkout routes")
	routeDetails.CheckoutRoutes(api, routeDetails.CheckoutDeps{
		DB:            d.DB,
		Orders:        d.Orders,
		StripeHooks:   d.StripeHooks,
		MidtransHooks: d.MidtransHooks,
		Log:           d.Log,
	}, middlewares.CheckoutRateLimiter(), guard)

	// ===================== PLAY =====================
	// rankings go first: /games/rankings/top8 must not be read as /games/:publicId
	log.Info("mounting play routes")
	routeDetails.PlayRoutes(api, d.DB, d.Redis, d.Config.RankingCacheTTL, guard)

	// ===================== GAMES =====================
	log.Info("mounting game routes")
	routeDetails.GameRoutes(api, d.DB, guard, viewer)
}
