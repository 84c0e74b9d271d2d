package service

import (
	"testing"
	"time"

	"github.com/bmizerany/assert"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"kiezjagd_backend/internals/helpers/apperr"
)

func newTestService(t *testing.T) *AuthService {
	hash, err := bcrypt.GenerateFromPassword([]byte("geheim123"), bcrypt.MinCost)
	assert.Equal(t, nil, err)
	return NewAuthService("kiezadmin", string(hash), "test-secret")
}

func TestLoginIssuesAdminToken(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	svc := newTestService(t).WithClock(func() time.Time { return now })

	res, err := svc.Login("kiezadmin", "geheim123")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, res.ExpiresAt.Equal(now.Add(time.Hour)))

	claims := &AdminClaims{}
	tok, err := jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.Equal(t, nil, err)
	assert.Equal(t, true, tok.Valid)
	assert.Equal(t, "HS256", tok.Method.Alg())
	assert.Equal(t, "kiezadmin", claims.Username)
	assert.Equal(t, true, claims.IsAdmin)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login("kiezadmin", "falsch")
	assert.Equal(t, true, apperr.HasCode(err, apperr.CodeInvalidCredentials))
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, err = svc.Login("someone", "geheim123")
	assert.Equal(t, true, apperr.HasCode(err, apperr.CodeInvalidCredentials))
}

func TestLoginNotConfigured(t *testing.T) {
	svc := NewAuthService("kiezadmin", "", "secret")
	_, err := svc.Login("kiezadmin", "x")
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}
