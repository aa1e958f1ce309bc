package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ibramnsh/backend-sidokepung/internal/auth/device"
	"github.com/Ibramnsh/backend-sidokepung/internal/auth/models"
	"github.com/Ibramnsh/backend-sidokepung/internal/auth/secrets"
	jwttoken "github.com/Ibramnsh/backend-sidokepung/internal/jwt_token"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/metrics"
	dErrors "github.com/Ibramnsh/backend-sidokepung/pkg/domain-errors"
	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/sentinel"
	"github.com/Ibramnsh/backend-sidokepung/pkg/requestcontext"
)

// DefaultTokenTTL is the lifetime of an access token.
const DefaultTokenTTL = 24 * time.Hour

// User-facing messages.
const (
	MsgCredentialsRequired = "Username and password are required."
	MsgUsernameLength      = "Username must be between 3 and 50 characters."
	MsgPasswordTooShort    = "Password must be at least 6 characters long."
	MsgUsernameTaken       = "Username already exists."
	MsgInvalidCredentials  = "Invalid username or password."
	MsgTokenExpired        = "Token has expired. Please login again."
	MsgTokenInvalid        = "Invalid token format."
	MsgTokenRevoked        = "Token has been revoked."
	MsgUserNotFound        = "Invalid token - user not found."
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks UserStore,RevocationList,TokenService

// UserStore persists admin accounts.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// RevocationList records logged-out token ids until they expire.
type RevocationList interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// TokenService signs and validates access tokens.
type TokenService interface {
	GenerateAccessToken(userID, username, role string, expiresIn time.Duration) (*jwttoken.Issued, error)
	ValidateToken(tokenString string) (*jwttoken.Claims, error)
}

// Service implements admin authentication.
type Service struct {
	users       UserStore
	revocations RevocationList
	tokens      TokenService
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tokenTTL    time.Duration
	hashCost    int
	now         func() time.Time
	newID       func() string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTokenTTL overrides DefaultTokenTTL. Non-positive values are ignored.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.tokenTTL = d
		}
	}
}

// WithHashCost sets the bcrypt cost for new passwords.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.hashCost = cost
	}
}

func New(users UserStore, revocations RevocationList, tokens TokenService, opts ...Option) *Service {
	s := &Service{
		users:       users,
		revocations: revocations,
		tokens:      tokens,
		logger:      slog.Default(),
		tokenTTL:    DefaultTokenTTL,
		hashCost:    secrets.Cost,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks the credentials and issues an access token. Unknown users and
// wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" || creds.Password == "" {
		return nil, dErrors.New(dErrors.CodeValidation, MsgCredentialsRequired)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.loginFailed(ctx, username, "unknown_user")
			return nil, dErrors.New(dErrors.CodeUnauthorized, MsgInvalidCredentials)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}

	if err := secrets.Verify(creds.Password, user.PasswordHash); err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			s.loginFailed(ctx, username, "bad_password")
			return nil, dErrors.New(dErrors.CodeUnauthorized, MsgInvalidCredentials)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
	}

	issued, err := s.tokens.GenerateAccessToken(user.ID, user.Username, user.Role, s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.logger.InfoContext(ctx, "admin logged in",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", user.ID,
		"username", user.Username,
		"client_ip", requestcontext.ClientIP(ctx),
		"device", device.ParseUserAgent(requestcontext.UserAgent(ctx)),
	)
	if s.metrics != nil {
		s.metrics.IncrementLogin("success")
	}
	return &models.LoginResult{Token: issued.Token, ExpiresAt: issued.ExpiresAt, User: user}, nil
}

// CreateAdmin registers a new admin account.
func (s *Service) CreateAdmin(ctx context.Context, creds models.Credentials) (*models.User, error) {
	username := strings.TrimSpace(creds.Username)
	if username == "" || creds.Password == "" {
		return nil, dErrors.New(dErrors.CodeValidation, MsgCredentialsRequired)
	}
	if n := len([]rune(username)); n < models.UsernameMinLen || n > models.UsernameMaxLen {
		return nil, dErrors.New(dErrors.CodeValidation, MsgUsernameLength)
	}
	if len(creds.Password) < models.PasswordMinLen {
		return nil, dErrors.New(dErrors.CodeValidation, MsgPasswordTooShort)
	}

	hash, err := secrets.HashWithCost(creds.Password, s.hashCost)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user := &models.User{
		ID:           s.newID(),
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeBadRequest, MsgUsernameTaken)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create admin")
	}

	s.logger.InfoContext(ctx, "admin account created",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", user.ID,
		"username", user.Username,
	)
	if s.metrics != nil {
		s.metrics.IncrementAdminsCreated()
	}
	return user, nil
}

// Verify validates token and resolves its owner.
func (s *Service) Verify(ctx context.Context, token string) (*models.Verification, error) {
	claims, err := s.validate(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, MsgUserNotFound)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}

	v := &models.Verification{User: user}
	if claims.IssuedAt != nil {
		v.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		v.ExpiresAt = claims.ExpiresAt.Time
	}
	return v, nil
}

// Logout revokes token until it would have expired. Revoking an already
// revoked token succeeds.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.validate(ctx, token)
	if err != nil {
		if errors.Is(err, dErrors.New(dErrors.CodeUnauthorized, MsgTokenRevoked)) {
			return nil
		}
		return err
	}
	if claims.ExpiresAt == nil {
		return dErrors.New(dErrors.CodeUnauthorized, MsgTokenInvalid)
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revocations.RevokeToken(ctx, claims.ID, ttl); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token")
	}

	s.logger.InfoContext(ctx, "admin logged out",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", claims.UserID,
		"jti", claims.ID,
	)
	return nil
}

// IsTokenRevoked reports whether jti has been logged out.
func (s *Service) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	return s.revocations.IsRevoked(ctx, jti)
}

func (s *Service) validate(ctx context.Context, token string) (*jwttoken.Claims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		if errors.Is(err, dErrors.New(dErrors.CodeUnauthorized, "token has expired")) {
			return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, MsgTokenExpired)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, MsgTokenInvalid)
	}
	if claims.ID == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, MsgTokenInvalid)
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check token revocation")
	}
	if revoked {
		return nil, dErrors.New(dErrors.CodeUnauthorized, MsgTokenRevoked)
	}
	return claims, nil
}

func (s *Service) loginFailed(ctx context.Context, username, reason string) {
	s.logger.WarnContext(ctx, "admin login failed",
		"request_id", requestcontext.RequestID(ctx),
		"username", username,
		"reason", reason,
		"client_ip", requestcontext.ClientIP(ctx),
		"device", device.ParseUserAgent(requestcontext.UserAgent(ctx)),
	)
	if s.metrics != nil {
		s.metrics.IncrementLogin("failure")
	}
}
