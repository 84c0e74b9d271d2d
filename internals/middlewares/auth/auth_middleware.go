// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	helper "kiezjagd_backend/internals/helpers"
)

const (
	LocalUsername = "admin_username"
	LocalIsAdmin  = "is_admin"
)

// AdminOnly accepts HS256 tokens signed with secret whose claims carry
// isAdmin=true. Expiry is checked with a small clock skew.
func AdminOnly(secret string) fiber.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())

	return func(c *fiber.Ctx) error {
		if secret == "" {
			zap.L().Error("JWT_SECRET is empty, refusing admin request")
			return helper.JsonError(c, fiber.StatusInternalServerError, "auth not configured")
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - "+err.Error())
		}

		claims := jwt.MapClaims{}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}); err != nil {
			zap.L().Debug("admin token rejected", zap.Error(err))
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - invalid token")
		}

		if !claims.VerifyExpiresAt(time.Now().Add(-30*time.Second).Unix(), true) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - token expired")
		}
		if !isAdminClaim(claims) {
			return helper.JsonError(c, fiber.StatusForbidden, "admin access required")
		}

		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}

// OptionalAdmin marks the request as admin when a valid admin token is
// present and otherwise lets it through untouched.
func OptionalAdmin(secret string) fiber.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())

	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Next()
		}
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return c.Next()
		}
		claims := jwt.MapClaims{}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}); err != nil {
			return c.Next()
		}
		if claims.VerifyExpiresAt(time.Now().Add(-30*time.Second).Unix(), true) && isAdminClaim(claims) {
			storeClaimsToLocals(c, claims)
		}
		return c.Next()
	}
}

// IsAdmin reports whether AdminOnly or OptionalAdmin accepted an admin token.
func IsAdmin(c *fiber.Ctx) bool {
	v, _ := c.Locals(LocalIsAdmin).(bool)
	return v
}
