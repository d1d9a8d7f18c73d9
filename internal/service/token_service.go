package service

import (
	"fmt"
	"time"

	"consultcoach/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates session handles. A handle binds one
// client to one session key; it is not user authentication.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service; ttl <= 0 issues non-expiring handles.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a handle for sessionID
func (s *TokenService) Issue(sessionID string) (string, error) {
	now := time.Now()
	claims := &model.SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  sessionID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses a handle and returns its claims
func (s *TokenService) Validate(tokenString string) (*model.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Authorize checks that tokenString grants access to sessionID
func (s *TokenService) Authorize(tokenString, sessionID string) error {
	claims, err := s.Validate(tokenString)
	if err != nil {
		return err
	}
	if claims.SessionID != sessionID {
		return ErrInvalidToken
	}
	return nil
}
