package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func BaseRoutes(app *fiber.App, db *gorm.DB, rdb *redis.Client, env string) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Kiezjagd API läuft 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		cacheStatus := "disabled"
		if rdb != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), time.Second)
			defer cancel()
			cacheStatus = "Connected"
			if err := rdb.Ping(ctx).Err(); err != nil {
				cacheStatus = "unreachable"
			}
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"cache":          cacheStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    env,
		})
	})
}
