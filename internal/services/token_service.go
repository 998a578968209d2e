package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues the opaque bearer tokens handed out at registration
// and login. Validation happens in the auth middleware.
type TokenService struct {
	secret     string
	expiration time.Duration
}

func NewTokenService(secret string, expiration time.Duration) *TokenService {
	return &TokenService{secret: secret, expiration: expiration}
}

func (s *TokenService) Issue(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.expiration).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}
