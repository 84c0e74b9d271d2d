// internals/middlewares/auth/claim_utils.go
package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

var (
	errNoToken       = errors.New("no token provided")
	errInvalidFormat = errors.New("invalid token format")
)

/* ======== Extractors ======== */

// extractBearerToken reads Authorization, falling back to the admin_token cookie.
func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		if cookieTok := c.Cookies("admin_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", errNoToken
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errInvalidFormat
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", errNoToken
	}
	return tok, nil
}

func isAdminClaim(claims jwt.MapClaims) bool {
	switch v := claims["isAdmin"].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

func storeClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if username, ok := claims["username"].(string); ok {
		c.Locals(LocalUsername, username)
	}
	c.Locals(LocalIsAdmin, true)
}
