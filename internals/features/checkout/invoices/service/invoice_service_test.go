package service

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "R-20250422-0001", Format("20250422", 1))
	assert.Equal(t, "R-20250422-0042", Format("20250422", 42))
	assert.Equal(t, "R-20250422-12345", Format("20250422", 12345))
	assert.Equal(t, "invoice-20250422", CounterName("20250422"))
}
