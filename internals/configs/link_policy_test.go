package configs

import (
	"testing"
	"time"

	"github.com/bmizerany/assert"
)

func TestResolveLinkPolicy_Default(t *testing.T) {
	p, err := ResolveLinkPolicy("", "")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "v3", p.Version)
	assert.Equal(t, 48*time.Hour, p.Duration)
}

func TestResolveLinkPolicy_Historic(t *testing.T) {
	p, err := ResolveLinkPolicy("V1", "")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 5*time.Minute, p.Duration)

	p, err = ResolveLinkPolicy("v2", "")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 72*time.Hour, p.Duration)
}

func TestResolveLinkPolicy_Override(t *testing.T) {
	p, err := ResolveLinkPolicy("v3", "36h")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, CustomLinkPolicyVersion, p.Version)
	assert.Equal(t, 36*time.Hour, p.Duration)
}

func TestResolveLinkPolicy_Invalid(t *testing.T) {
	_, err := ResolveLinkPolicy("v9", "")
	assert.NotEqual(t, nil, err)

	_, err = ResolveLinkPolicy("", "-1h")
	assert.NotEqual(t, nil, err)
}
