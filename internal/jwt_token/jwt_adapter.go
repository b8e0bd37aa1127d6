package jwttoken

import (
	"github.com/sunsetmark/palyingwithedgar-sub001/internal/platform/middleware"
)

// JWTServiceAdapter adapts JWTService to the middleware's validator interface.
type JWTServiceAdapter struct {
	service *JWTService
}

// NewJWTServiceAdapter wraps a JWTService for the auth middleware.
func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

// ValidateToken validates the token and converts claims to the middleware shape.
func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{
		FilerID:   claims.FilerID,
		SessionID: claims.SessionID,
	}, nil
}
