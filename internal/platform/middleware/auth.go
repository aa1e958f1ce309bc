package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/httputil"
	"github.com/Ibramnsh/backend-sidokepung/pkg/requestcontext"
)

// JWTValidator defines the interface for validating JWT tokens
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// TokenRevocationChecker defines the interface for checking if tokens are revoked
type TokenRevocationChecker interface {
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// JWTClaims represents the claims we expect from the JWT validator
type JWTClaims struct {
	UserID   string
	Username string
	Role     string
	JTI      string
}

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(ctx context.Context) string {
	return requestcontext.UserID(ctx)
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

func writeUnauthorized(w http.ResponseWriter, desc string) {
	httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorResponse{
		Error:            "unauthorized",
		ErrorDescription: desc,
	})
}

// RequireAuth rejects requests without a valid, unrevoked bearer token.
// revocationChecker may be nil.
func RequireAuth(validator JWTValidator, revocationChecker TokenRevocationChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestID(ctx)

			token, ok := BearerToken(r)
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			if revocationChecker != nil {
				if claims.JTI == "" {
					logger.WarnContext(ctx, "unauthorized access - missing token jti",
						"request_id", requestID,
					)
					writeUnauthorized(w, "Invalid or expired token")
					return
				}
				revoked, err := revocationChecker.IsTokenRevoked(ctx, claims.JTI)
				if err != nil {
					logger.ErrorContext(ctx, "failed to check token revocation",
						"error", err,
						"request_id", requestID,
					)
					httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorResponse{
						Error:            "internal_error",
						ErrorDescription: "Failed to validate token",
					})
					return
				}
				if revoked {
					logger.WarnContext(ctx, "unauthorized access - token revoked",
						"jti", claims.JTI,
						"request_id", requestID,
					)
					writeUnauthorized(w, "Token has been revoked")
					return
				}
			}

			ctx = requestcontext.WithUser(ctx, claims.UserID, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
