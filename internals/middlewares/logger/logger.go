package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"kiezjagd_backend/internals/helpers/dbtime"
)

// LoggerMiddleware writes one access line per request.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   dbtime.Zone,
		Format:     "[${time}] ${ip} - ${locals:requestid} ${method} ${path} - ${status} - ${latency}\n",
	})
}
