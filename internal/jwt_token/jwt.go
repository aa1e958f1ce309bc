package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "github.com/Ibramnsh/backend-sidokepung/pkg/domain-errors"
)

// Claims represents the JWT claims for admin access tokens
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issued describes a freshly signed token.
type Issued struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

// JWTService handles JWT creation and validation
type JWTService struct {
	signingKey []byte
	issuer     string
	now        func() time.Time
}

func NewJWTService(signingKey string, issuer string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		now:        time.Now,
	}
}

func (s *JWTService) GenerateAccessToken(userID, username, role string, expiresIn time.Duration) (*Issued, error) {
	now := s.now()
	jti := uuid.NewString()
	expiresAt := now.Add(expiresIn)
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   userID,
			ID:        jti,
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return nil, err
	}
	return &Issued{Token: signedToken, JTI: jti, ExpiresAt: expiresAt}, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	return claims, nil
}
