package helper

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestSafeOrderClause(t *testing.T) {
	allowed := map[string]string{
		"createdAt": "order_created_at",
		"email":     "order_email",
	}
	assert.Equal(t, "order_created_at DESC", SafeOrderClause("", allowed, "-createdAt"))
	assert.Equal(t, "order_email ASC", SafeOrderClause("email", allowed, "-createdAt"))
	assert.Equal(t, "order_email DESC", SafeOrderClause("-email", allowed, "-createdAt"))
	assert.Equal(t, "order_created_at DESC", SafeOrderClause("-price; DROP TABLE orders", allowed, "-createdAt"))
}
