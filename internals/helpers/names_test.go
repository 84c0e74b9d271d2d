package helper

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Die Füchse", NormalizeName("  Die \t  Füchse "))
	assert.Equal(t, "Team 1", NormalizeName("Ｔｅａｍ　１"))
	assert.Equal(t, "", NormalizeName(" \n "))
}

func TestNameKey(t *testing.T) {
	assert.Equal(t, NameKey("Die Füchse"), NameKey("die  FUCHSE"))
	assert.Equal(t, "die fuchse", NameKey("Die Füchse"))
	assert.NotEqual(t, NameKey("Füchse"), NameKey("Wölfe"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "kiez@example.de", NormalizeEmail("  Kiez@Example.DE "))
}
