package services

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"onboarding/internal/middleware"
)

var ErrBadCredentials = errors.New("invalid username or password")

const adminTokenTTL = 15 * time.Minute

// AuthService issues admin tokens for the support/admin API surface.
// Credentials come from config; there is no admin user table.
type AuthService interface {
	Login(username, password string) (token string, err error)
}

type authService struct {
	secret   []byte
	username string
	password string
}

func NewAuthService(secret []byte, username, password string) AuthService {
	return &authService{secret: secret, username: username, password: password}
}

func (s *authService) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		return "", ErrBadCredentials
	}

	claims := &middleware.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(adminTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
