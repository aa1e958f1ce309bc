package jwttoken

import (
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/middleware"
)

// JWTServiceAdapter lets RequireAuth validate tokens without importing this
// package.
type JWTServiceAdapter struct {
	service *JWTService
}

var _ middleware.JWTValidator = (*JWTServiceAdapter)(nil)

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(token string) (*middleware.JWTClaims, error) {
	claims, err := a.service.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
		JTI:      claims.ID,
	}, nil
}
