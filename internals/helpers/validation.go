package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Validate runs struct tags through the shared validator instance.
func Validate(v any) error {
	return validate.Struct(v)
}

// FieldErrors flattens validator errors into the {field: [tags]} shape.
// Returns nil if err is not a validation error.
func FieldErrors(err error) map[string][]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		field := lowerFirst(fe.Field())
		out[field] = append(out[field], fe.Tag())
	}
	return out
}

// BindAndValidate parses the body into dst and validates it, writing the
// error response itself when something is wrong. ok=false means a response
// was already sent.
func BindAndValidate(c *fiber.Ctx, dst any) (ok bool, err error) {
	if err := c.BodyParser(dst); err != nil {
		return false, JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := Validate(dst); err != nil {
		if fields := FieldErrors(err); fields != nil {
			return false, JsonValidationError(c, fields)
		}
		return false, JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return true, nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
