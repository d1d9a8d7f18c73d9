package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims bind a client-held handle to exactly one session key
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// CreateSessionResponse is returned when a session is opened
type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
}
