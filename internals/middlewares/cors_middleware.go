// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware allows the player frontend and the admin panel.
// frontendURL (FRONTEND_URL) is appended when set.
func CorsMiddleware(frontendURL string) fiber.Handler {
	origins := []string{
		"http://localhost:5173",
		"http://localhost:3000",
		"https://kiezjagd.de",
		"https://www.kiezjagd.de",
		"https://admin.kiezjagd.de",
	}
	if u := strings.TrimRight(strings.TrimSpace(frontendURL), "/"); u != "" {
		origins = append(origins, u)
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(dedupe(origins), ", "),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
		AllowCredentials: true,
	})
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
