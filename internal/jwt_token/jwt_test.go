package jwttoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/Ibramnsh/backend-sidokepung/pkg/domain-errors"
)

var jwtService = NewJWTService("test-signing-key", "test-issuer")

const (
	userID    = "3f8a1c2e-6b7d-4e1a-9c0f-2d5e8b7a6c41"
	username  = "admin"
	role      = "admin"
	expiresIn = time.Hour
)

func Test_GenerateAccessToken(t *testing.T) {
	issued, err := jwtService.GenerateAccessToken(userID, username, role, expiresIn)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	require.NotEmpty(t, issued.JTI)

	claims, err := jwtService.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, username, claims.Username)
	assert.Equal(t, role, claims.Role)
	assert.Equal(t, issued.JTI, claims.ID)
	assert.WithinDuration(t, time.Now().Add(expiresIn), claims.ExpiresAt.Time, time.Minute)
	assert.WithinDuration(t, issued.ExpiresAt, claims.ExpiresAt.Time, time.Second)
}

func Test_GenerateAccessToken_UniqueJTI(t *testing.T) {
	a, err := jwtService.GenerateAccessToken(userID, username, role, expiresIn)
	require.NoError(t, err)
	b, err := jwtService.GenerateAccessToken(userID, username, role, expiresIn)
	require.NoError(t, err)
	assert.NotEqual(t, a.JTI, b.JTI)
}

func Test_ValidateToken_InvalidToken(t *testing.T) {
	_, err := jwtService.ValidateToken("invalid-token-string")
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}

func Test_ValidateToken_ExpiredToken(t *testing.T) {
	issued, err := jwtService.GenerateAccessToken(userID, username, role, -time.Hour)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(issued.Token)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "token has expired"))
}

func Test_ValidateToken_WrongKey(t *testing.T) {
	other := NewJWTService("another-key", "test-issuer")
	issued, err := other.GenerateAccessToken(userID, username, role, expiresIn)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(issued.Token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_ValidateToken_WrongIssuer(t *testing.T) {
	other := NewJWTService("test-signing-key", "someone-else")
	issued, err := other.GenerateAccessToken(userID, username, role, expiresIn)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(issued.Token)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}

func Test_ValidateToken_RejectsNoneAlgorithm(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_Adapter(t *testing.T) {
	issued, err := jwtService.GenerateAccessToken(userID, username, role, expiresIn)
	require.NoError(t, err)

	claims, err := NewJWTServiceAdapter(jwtService).ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, username, claims.Username)
	assert.Equal(t, issued.JTI, claims.JTI)
}
