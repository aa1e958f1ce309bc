package testutil

import (
	"context"
	"net/http"

	"github.com/Ibramnsh/backend-sidokepung/internal/platform/middleware"
	dErrors "github.com/Ibramnsh/backend-sidokepung/pkg/domain-errors"
	"github.com/Ibramnsh/backend-sidokepung/pkg/requestcontext"
)

// AdminToken is the bearer token accepted by StaticValidator.
const AdminToken = "test-admin-token"

// AdminClaims are the claims StaticValidator returns for AdminToken.
var AdminClaims = middleware.JWTClaims{
	UserID:   "0b7c3f5e-2a91-4d0e-8f6b-1c9a4e7d2b53",
	Username: "admin",
	Role:     "admin",
	JTI:      "test-jti",
}

// StaticValidator accepts only AdminToken. It satisfies middleware.JWTValidator.
type StaticValidator struct{}

func (StaticValidator) ValidateToken(token string) (*middleware.JWTClaims, error) {
	if token != AdminToken {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	c := AdminClaims
	return &c, nil
}

// WithBearer sets an Authorization header carrying AdminToken.
func WithBearer(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+AdminToken)
	return req
}

// WithAdmin adds the admin identity to the request context, as RequireAuth would.
func WithAdmin(req *http.Request) *http.Request {
	ctx := requestcontext.WithUser(req.Context(), AdminClaims.UserID, AdminClaims.Username)
	return req.WithContext(ctx)
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
