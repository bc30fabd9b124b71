package jwttoken

import (
	authmw "truedial/internal/platform/middleware"
)

// JWTServiceAdapter bridges the token service to the middleware's validator
// interface.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &authmw.JWTClaims{
		UserID:      claims.UserID,
		PhoneNumber: claims.PhoneNumber,
	}, nil
}
