package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"go.uber.org/zap"

	"kiezjagd_backend/internals/configs"
	database "kiezjagd_backend/internals/databases"
	discount "kiezjagd_backend/internals/features/checkout/discounts/service"
	invoiceService "kiezjagd_backend/internals/features/checkout/invoices/service"
	"kiezjagd_backend/internals/features/checkout/notifications"
	orderRepo "kiezjagd_backend/internals/features/checkout/orders/repository"
	orderService "kiezjagd_backend/internals/features/checkout/orders/service"
	paymentController "kiezjagd_backend/internals/features/checkout/payments/controller"
	"kiezjagd_backend/internals/features/checkout/payments/gateway"
	gameRepo "kiezjagd_backend/internals/features/games/games/repository"
	middlewares "kiezjagd_backend/internals/middlewares"
	"kiezjagd_backend/internals/middlewares/logger"
	routes "kiezjagd_backend/internals/route"
	"kiezjagd_backend/internals/scheduler"
	"kiezjagd_backend/internals/seeds"
)

func main() {
	log := configs.InitLogger(os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV") == "production")
	defer func() { _ = log.Sync() }()

	cfg, err := configs.Load()
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}

	// 🔌 DB connect + pool + schema
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	database.TunePool(db)
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}
	if err := seeds.RunAllSeeds(context.Background(), db, cfg.SeedGamesFile); err != nil {
		log.Fatal("seed", zap.Error(err))
	}
	rdb := database.ConnectRedis(cfg)

	// 💳 payment provider
	payments := buildPayments(cfg, log)

	orders := orderService.NewOrderService(orderService.Deps{
		Orders:    orderRepo.NewOrderRepository(db),
		Games:     gameRepo.NewGameRepository(db),
		Discounts: discount.NewResolver(payments.gateway, cfg.ProviderTimeout),
		Invoices:  invoiceService.NewInvoiceService(db),
		Payments:  payments.gateway,
		Notifier:  notifications.NewLogNotifier(log),
	}, orderService.Options{
		LinkPolicy:  cfg.LinkPolicy,
		Currency:    cfg.Currency,
		FrontendURL: cfg.FrontendURL,
	})

	// ⏱ scheduler after DB is ready
	sweep, err := scheduler.StartExpirySweep(scheduler.ExpirySweepConfig{
		Schedule: cfg.ExpirySweepSchedule,
	}, orders, log)
	if err != nil {
		log.Fatal("expiry sweep", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		BodyLimit:             2 * 1024 * 1024,
	})

	app.Use(middlewares.RecoveryMiddleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timeout guard (above statement_timeout and provider timeout)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("requestid", id)
		ctx, cancel := context.WithTimeout(c.Context(), cfg.ProviderTimeout+5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})
	app.Use(logger.LoggerMiddleware())
	app.Use(middlewares.CorsMiddleware(cfg.FrontendURL))
	app.Use(middlewares.GlobalRateLimiter())

	routes.SetupRoutes(app, routes.Deps{
		Config:        cfg,
		DB:            db,
		Redis:         rdb,
		Log:           log,
		Orders:        orders,
		StripeHooks:   payments.stripeHooks,
		MidtransHooks: payments.midtransHooks,
	})

	// 🔒 Keep-Alive & connection timeouts
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Info("listening", zap.String("port", cfg.Port))
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown: stop cron, drain HTTP, close pools
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	select {
	case <-sweep.Stop().Done():
	case <-ctx.Done():
	}
	_ = app.ShutdownWithContext(ctx)

	if rdb != nil {
		_ = rdb.Close()
	}
	database.Close(db)
}

type paymentWiring struct {
	gateway       gateway.Gateway
	stripeHooks   paymentController.StripeWebhookParser
	midtransHooks paymentController.MidtransWebhookParser
}

// buildPayments picks the checkout provider. Only the selected provider's
// webhook endpoint is live; interfaces stay untyped nil for the other one.
func buildPayments(cfg *configs.AppConfig, log *zap.Logger) paymentWiring {
	switch cfg.PaymentProvider {
	case gateway.ProviderMidtrans:
		g, err := gateway.NewMidtrans(cfg.MidtransServerKey, cfg.Currency, cfg.MidtransUseProd, cfg.ProviderTimeout)
		if err != nil {
			log.Fatal("midtrans", zap.String("currency", cfg.Currency), zap.Error(err))
		}
		log.Info("payment provider", zap.String("provider", g.Name()))
		return paymentWiring{gateway: g, midtransHooks: g}
	case gateway.ProviderStripe:
	default:
		log.Warn("unknown PAYMENT_PROVIDER, falling back to stripe", zap.String("value", cfg.PaymentProvider))
	}
	g := gateway.NewStripe(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.Currency, cfg.ProviderTimeout)
	log.Info("payment provider", zap.String("provider", g.Name()))
	return paymentWiring{gateway: g, stripeHooks: g}
}
