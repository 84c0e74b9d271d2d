package service

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"kiezjagd_backend/internals/helpers/apperr"
)

const DefaultTokenTTL = time.Hour

var errInvalidCredentials = apperr.Unauthorized(apperr.CodeInvalidCredentials, "Ungültige Zugangsdaten")

// AdminClaims is the payload the admin middleware looks for.
type AdminClaims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// AuthService authenticates the single back-office account configured via
// ADMIN_USERNAME / ADMIN_PASSWORD_HASH.
type AuthService struct {
	username     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewAuthService(username, passwordHash, secret string) *AuthService {
	return &AuthService{
		username:     strings.TrimSpace(username),
		passwordHash: []byte(strings.TrimSpace(passwordHash)),
		secret:       []byte(secret),
		ttl:          DefaultTokenTTL,
		now:          time.Now,
	}
}

func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Username  string    `json:"username"`
}

// Login checks the credentials and issues an HS256 token valid for one hour.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	if len(s.secret) == 0 || s.username == "" || len(s.passwordHash) == 0 {
		return nil, apperr.New(apperr.KindInternal, apperr.CodeInternal, "admin login not configured")
	}

	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(s.username)) == 1
	// bcrypt runs for unknown usernames too
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return nil, errInvalidCredentials
	}

	now := s.now()
	exp := now.Add(s.ttl)
	claims := AdminClaims{
		Username: s.username,
		IsAdmin:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, Username: s.username}, nil
}
